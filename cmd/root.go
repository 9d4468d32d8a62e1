// Package cmd содержит команды CLI дашборда
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/LilVoxy/marketing_dashboard/config"
	"github.com/LilVoxy/marketing_dashboard/dashboard"
	"github.com/LilVoxy/marketing_dashboard/dataset"
	"github.com/LilVoxy/marketing_dashboard/output"
	"github.com/LilVoxy/marketing_dashboard/utils"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	cfg       *config.Config
	logger    *utils.Logger
	logCloser io.Closer
	version   = "dev"
)

// rootCmd корневая команда
var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Маркетинговый дашборд с прогнозом показателей",
	Long: `dashboard строит маркетинговый дашборд по помесячной таблице показателей:
карточки KPI, сравнение с бенчмарками, воронку, корреляции,
прогноз трендов и экономику партнерской программы.

Примеры:
  dashboard serve                         # HTTP API и WebSocket симулятора
  dashboard forecast --band fixed --percent 10%
  dashboard simulate --clients 20 --months 12
  dashboard summary --months Jul/25,Ago/25`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			err := logCloser.Close()
			logCloser = nil
			return err
		}
		return nil
	},
}

// Execute запускает CLI
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion задает версию сборки
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "файл конфигурации (по умолчанию .dashboard.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "подробный вывод")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "отключить цветной вывод")
}

// initConfig читает конфигурацию и настраивает логгер
func initConfig() error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	if verbose {
		cfg.Logging.Verbose = true
	}

	if cfg.Logging.Dir != "" {
		logger, logCloser, err = utils.NewFileLogger(cfg.Logging.Dir, cfg.Logging.Verbose)
		if err != nil {
			return err
		}
	} else {
		logger = utils.NewLogger(os.Stderr, cfg.Logging.Verbose)
	}

	logger.Debug("Конфигурация загружена: адрес %s, горизонт %d, полоса %s",
		cfg.Server.Addr, cfg.Forecast.Horizon, cfg.Forecast.BandPolicy)
	return nil
}

// newBuilder создает построитель дашборда по текущей конфигурации
func newBuilder() (*dashboard.Builder, error) {
	dcfg, err := cfg.DashboardConfig()
	if err != nil {
		return nil, err
	}
	return dashboard.NewBuilder(logger, dataset.Load(), dcfg), nil
}

// newPrinter создает принтер для вывода команды
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), !noColor)
}
