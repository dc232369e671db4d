package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Freeeeeet/courier_scheduler/internal/app"
	"github.com/Freeeeeet/courier_scheduler/internal/config"
	"github.com/Freeeeeet/courier_scheduler/internal/repository"
	"github.com/Freeeeeet/courier_scheduler/internal/service"
)

func serveCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API (и Telegram-бота, если задан токен)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt.logger.Info("Starting courierd",
				zap.String("environment", rt.cfg.Environment),
				zap.String("addr", rt.cfg.HTTPAddr),
				zap.Bool("telegram", rt.cfg.TelegramToken != ""),
			)
			return app.Serve(cmd.Context(), rt.cfg, rt.logger)
		},
	}
}

func migrateCmd(rt *runtime) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции базы данных",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := app.Connect(cmd.Context(), rt.cfg.DBDSN)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator, err := app.NewMigrator(pool, rt.logger)
			if err != nil {
				return err
			}
			defer migrator.Close()

			if down {
				return migrator.Down(cmd.Context())
			}
			return migrator.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "откатить последнюю миграцию")
	return cmd
}

func seedWorkplacesCmd(rt *runtime) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed-workplaces",
		Short: "Загрузить справочник точек из YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = rt.cfg.WorkplacesFile
			}

			workplaces, err := config.LoadWorkplaces(file)
			if err != nil {
				return err
			}

			pool, err := app.Connect(cmd.Context(), rt.cfg.DBDSN)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := repository.NewWorkplaceRepository(pool).Seed(cmd.Context(), workplaces); err != nil {
				return err
			}

			rt.logger.Info("Workplaces seeded", zap.String("file", file), zap.Int("count", len(workplaces)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML со справочником точек (по умолчанию WORKPLACES_FILE)")
	return cmd
}

func createAdminCmd(rt *runtime) *cobra.Command {
	var in service.NewCourier

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Создать учётную запись куратора",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := app.Connect(cmd.Context(), rt.cfg.DBDSN)
			if err != nil {
				return err
			}
			defer pool.Close()

			profile, err := app.CourierService(pool, rt.cfg, rt.logger).CreateAdmin(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("%s: %w", service.ErrorMessage(err), err)
			}

			fmt.Printf("Куратор создан: %s (%s)\n", profile.ID, in.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "email куратора")
	cmd.Flags().StringVar(&in.Name, "name", "", "отображаемое имя")
	cmd.Flags().StringVar(&in.Password, "password", "", "пароль")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
