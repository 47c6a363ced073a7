package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	dryrunexec "github.com/panelops/panelops/adapters/exec/dryrun"
	localexec "github.com/panelops/panelops/adapters/exec/local"
	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/usecase/deploy"
)

func newCmdDeploy() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "deploy",
		Short:              "Deploy declared state to the service daemons",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdDeployRun())
	return cmd
}

func newCmdDeployRun() *cobra.Command {
	var dryRun bool
	var backends []string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one deployment pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			var executor model.Executor
			if dryRun {
				executor = dryrunexec.New(cmd.OutOrStdout())
			} else {
				executor = localexec.New()
			}
			u, err := buildDeployUseCase(cmd, executor)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()
			out, err := u.Run(ctx, &deploy.RunInput{Backends: backends})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the scripts instead of running them")
	cmd.Flags().StringSliceVar(&backends, "backend", nil, "Restrict to the named backends")
	return cmd
}
