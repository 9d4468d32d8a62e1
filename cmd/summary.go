package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LilVoxy/marketing_dashboard/dataset"
	"github.com/LilVoxy/marketing_dashboard/output"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Показать карточки KPI, бенчмарки и воронку",
	RunE: func(cmd *cobra.Command, args []string) error {
		months, _ := cmd.Flags().GetStringSlice("months")
		table, err := dataset.Load().Filter(months)
		if err != nil {
			return err
		}

		cards, err := dataset.Cards(table)
		if err != nil {
			return err
		}
		comparisons, err := dataset.CompareBenchmarks(table)
		if err != nil {
			return err
		}
		funnel, err := dataset.BuildFunnel(table)
		if err != nil {
			return err
		}

		p := newPrinter(cmd)

		p.Header(fmt.Sprintf("Показатели за %d мес.", table.Len()))
		cardTable := output.NewTable(p.Writer(), []string{"kpi", "mean", "change"})
		for _, c := range cards {
			change := "n/a"
			if c.ChangeDefined {
				change = output.Number(c.Change) + "%"
			}
			cardTable.AddRow(c.KPI.Name, output.Number(c.Mean), change)
		}
		if err := cardTable.Render(); err != nil {
			return err
		}

		p.Header("Бенчмарки")
		benchTable := output.NewTable(p.Writer(), []string{"kpi", "mean", "status"})
		for _, c := range comparisons {
			benchTable.AddRow(c.KPI.Name, output.Number(c.Mean), p.Badge(c.Status))
		}
		if err := benchTable.Render(); err != nil {
			return err
		}

		p.Header(fmt.Sprintf("Воронка за %s", funnel.Month))
		funnelTable := output.NewTable(p.Writer(), []string{"stage", "value", "of first"})
		for _, s := range funnel.Stages {
			funnelTable.AddRow(s.KPI.Name, output.Number(s.Value), output.Number(s.PercentInitial)+"%")
		}
		return funnelTable.Render()
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringSlice("months", nil, "месяцы, например Jul/25,Ago/25 (по умолчанию все)")
}
