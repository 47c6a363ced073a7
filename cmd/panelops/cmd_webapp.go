package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/usecase/webapp"
)

func newCmdWebApp() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "webapp",
		Short:              "Manage web applications",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdWebAppCreate(), newCmdWebAppList(), newCmdWebAppDelete())
	return cmd
}

func newCmdWebAppCreate() *cobra.Command {
	var account, appType, dataDir string
	cmd := &cobra.Command{
		Use:   "create <name> <directive> [args...]",
		Short: "Create a web application",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildWebAppUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out, err := u.Create(ctx, &webapp.CreateInput{
				Name:      args[0],
				AccountID: account,
				Type:      appType,
				Directive: model.Directive{Name: args[1], Args: args[2:]},
				DataDir:   dataDir,
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.WebApp)
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "Owning account")
	cmd.Flags().StringVar(&appType, "type", "", "Application type")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Filesystem home of the content")
	return cmd
}

func newCmdWebAppList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List web applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildWebAppUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out, err := u.List(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, app := range out.WebApps {
				if err := enc.Encode(app); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCmdWebAppDelete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a web application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildWebAppUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			return u.Delete(ctx, &webapp.DeleteInput{ID: args[0]})
		},
	}
}
