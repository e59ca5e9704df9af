package main

import (
	"context"
	"fmt"

	"ecotech_server/internal/config"
	"ecotech_server/internal/dao/database"
	"ecotech_server/internal/dao/repository"
	"ecotech_server/internal/infrastructure/logger"
	"ecotech_server/internal/model"
	"ecotech_server/internal/service/auth"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bootstrap loads the config, starts the logger, opens the database and migrates it.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(&cfg.LogConfig, cfg.Mode); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := database.Open(&cfg.DatabaseConfig)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, nil, err
	}
	zap.L().Info("database ready", zap.String("driver", cfg.Driver))
	return cfg, db, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := bootstrap(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "database migrated")
			return nil
		},
	}
}

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(newAdminCreateCmd(), newAdminPasswordCmd())
	return cmd
}

func newAdminCreateCmd() *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuth(cmd.Context(), func(ctx context.Context, svc adminAccounts) error {
				admin, err := svc.CreateAdmin(ctx, username, email, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "admin %q created (id %d)\n", admin.Username, admin.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "login name (3-80 characters)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (at least 6 characters)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAdminPasswordCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Replace an admin's password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAuth(cmd.Context(), func(ctx context.Context, svc adminAccounts) error {
				if err := svc.SetPassword(ctx, username, password); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "password updated for %q\n", username)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "login name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password (at least 6 characters)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

type adminAccounts interface {
	CreateAdmin(ctx context.Context, username, email, password string) (*model.Admin, error)
	SetPassword(ctx context.Context, username, password string) error
}

func withAuth(ctx context.Context, fn func(context.Context, adminAccounts) error) error {
	_, db, err := bootstrap()
	if err != nil {
		return err
	}
	return fn(ctx, auth.NewAuthService(repository.NewRepositories(db)))
}
