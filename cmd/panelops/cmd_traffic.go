package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/panelops/panelops/usecase/traffic"
)

func newCmdTraffic() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "traffic",
		Short:              "Measure site traffic usage",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdTrafficMonitor())
	return cmd
}

func newCmdTrafficMonitor() *cobra.Command {
	return &cobra.Command{
		Use:   "monitor [site-id...]",
		Short: "Sum transferred bytes per site since the last poll",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildTrafficUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			out, err := u.Monitor(ctx, &traffic.MonitorInput{SiteIDs: args})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, usage := range out.Usages {
				if err := enc.Encode(usage); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
