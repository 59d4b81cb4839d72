package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), true, func(ctx context.Context, a *app) error {
				cmd.Println("database schema is up to date")
				return nil
			})
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Re-derive every task list status from its tasks",
		Long: `Recompute the status of every task list from its current tasks.

Running it right after the service has processed all writes changes nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), false, func(ctx context.Context, a *app) error {
				result, err := a.reconciler.ReconcileAll(ctx)
				if err != nil {
					return err
				}
				cmd.Printf("task lists checked: %d, corrected: %d\n", result.TaskLists, result.Changed)
				return nil
			})
		},
	}
}

func houseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "house",
		Short: "Manage houses",
	}
	cmd.AddCommand(houseCreateCmd())
	return cmd
}

func houseCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a house with zero points",
		RunE: func(cmd *cobra.Command, args []string) error {
			name = strings.TrimSpace(name)
			if name == "" {
				return errors.New("--name is required")
			}
			return withApp(cmd.Context(), false, func(ctx context.Context, a *app) error {
				house, err := a.service.CreateHouse(ctx, name)
				if err != nil {
					return fmt.Errorf("create house: %w", err)
				}
				cmd.Printf("created house %d (%s)\n", house.ID, house.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "house name")
	return cmd
}

// withApp runs fn with a bootstrapped app and closes it afterwards.
func withApp(ctx context.Context, migrate bool, fn func(ctx context.Context, a *app) error) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	a, err := bootstrap(ctx, logger, migrate)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("failed to release resources", zap.Error(err))
		}
	}()
	return fn(ctx, a)
}
