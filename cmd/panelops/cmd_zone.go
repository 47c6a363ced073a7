package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/panelops/panelops/usecase/dns"
)

func newCmdZone() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "zone",
		Short:              "Inspect composed zones",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdZoneRender())
	return cmd
}

func newCmdZoneRender() *cobra.Command {
	return &cobra.Command{
		Use:   "render <domain>",
		Short: "Render the zone file of a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildDNSUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out, err := u.RenderZone(ctx, &dns.RenderZoneInput{Domain: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			return nil
		},
	}
}
