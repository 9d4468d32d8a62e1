package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LilVoxy/marketing_dashboard/cache"
	"github.com/LilVoxy/marketing_dashboard/routes"
	"github.com/LilVoxy/marketing_dashboard/scheduler"
	"github.com/LilVoxy/marketing_dashboard/websocket"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP API дашборда и WebSocket симулятора",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "адрес HTTP-сервера (по умолчанию из конфигурации)")
}

// runServer запускает сервер, менеджер WebSocket и планировщик до отмены контекста
func runServer(ctx context.Context) error {
	builder, err := newBuilder()
	if err != nil {
		return err
	}

	snapshots := cache.New()
	manager := websocket.NewManager(logger, builder)
	refresher := scheduler.NewRefresher(logger, builder, snapshots, cfg.Scheduler.RefreshInterval)
	refresher.SetNotifier(manager)

	server := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Logger:  logger,
			Builder: builder,
			Cache:   snapshots,
			Manager: manager,
			Refresh: refresher.RefreshIfEmpty,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		manager.Run(gctx)
		return nil
	})

	g.Go(func() error {
		return refresher.Start(gctx)
	})

	g.Go(func() error {
		logger.Info("✅ Сервер запущен на http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("❌ Ошибка запуска сервера: %v", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("⚠️ Получен сигнал завершения, закрываем соединения...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("👋 Сервер остановлен")
	return err
}
