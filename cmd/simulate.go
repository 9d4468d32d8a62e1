package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/LilVoxy/marketing_dashboard/output"
	"github.com/LilVoxy/marketing_dashboard/partnership"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Смоделировать партнерскую программу",
	Example: `  dashboard simulate
  dashboard simulate --clients 25 --months 12 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, _ := cmd.Flags().GetInt("clients")
		months, _ := cmd.Flags().GetInt("months")

		builder, err := newBuilder()
		if err != nil {
			return err
		}
		baseline, err := builder.Partnership(nil)
		if err != nil {
			return err
		}
		sim, err := baseline.Simulate(clients, months)
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sim)
		}
		return printSimulation(newPrinter(cmd), baseline, sim)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Int("clients", partnership.DefaultClients,
		fmt.Sprintf("новых клиентов в месяц (%d..%d)", partnership.MinClients, partnership.MaxClients))
	simulateCmd.Flags().Int("months", partnership.DefaultMonths,
		fmt.Sprintf("длительность симуляции (%d..%d)", partnership.MinMonths, partnership.MaxMonths))
	simulateCmd.Flags().Bool("json", false, "вывод в JSON")
}

func printSimulation(p *output.Printer, b *partnership.Baseline, sim *partnership.Simulation) error {
	p.Header(fmt.Sprintf("Симуляция: %d клиентов/мес. на %d мес.", sim.Clients, sim.Months))

	summary := output.NewTable(p.Writer(), []string{"metric", "value"})
	summary.AddRow("Всего клиентов", strconv.Itoa(sim.TotalClients))
	summary.AddRow("Комиссия в месяц", output.Number(sim.CommissionPerMonth))
	summary.AddRow("Комиссия всего", output.Number(sim.CommissionTotal))
	summary.AddRow("Выручка в месяц", output.Number(sim.RevenuePerMonth))
	summary.AddRow("Выручка всего", output.Number(sim.RevenueTotal))
	summary.AddRow("ROI партнерского канала, %", output.Number(sim.ReferralROI))
	summary.AddRow("Экономия против рекламы", output.Number(sim.TotalSavings))
	summary.AddRow("Чистая маржа последнего месяца", output.Number(sim.NetMargin))
	if err := summary.Render(); err != nil {
		return err
	}

	p.Header("Помесячная проекция")
	projection := output.NewTable(p.Writer(), []string{"month", "new", "active", "revenue", "commission"})
	for _, m := range sim.Projection {
		projection.AddRow(strconv.Itoa(m.Month), strconv.Itoa(m.NewClients), strconv.Itoa(m.ActiveClients),
			output.Number(m.Revenue), output.Number(m.Commission))
	}
	if err := projection.Render(); err != nil {
		return err
	}

	if b.LeadCost.Healthy {
		p.Success("Комиссия укладывается в стоимость лида (%s%% от средней)", output.Number(b.LeadCost.RatioAtMidCost))
	} else {
		p.Warning("Комиссия превышает стоимость лида (%s%% от средней)", output.Number(b.LeadCost.RatioAtMidCost))
	}
	return nil
}
