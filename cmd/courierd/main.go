package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Freeeeeet/courier_scheduler/internal/app"
	"github.com/Freeeeeet/courier_scheduler/internal/config"
)

// runtime общие зависимости команд
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:           "courierd",
		Short:         "Планировщик выходов и резервов курьеров",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	rootCmd.AddCommand(serveCmd(rt))
	rootCmd.AddCommand(migrateCmd(rt))
	rootCmd.AddCommand(seedWorkplacesCmd(rt))
	rootCmd.AddCommand(createAdminCmd(rt))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
