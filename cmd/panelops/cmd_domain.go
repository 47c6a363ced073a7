package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/panelops/panelops/usecase/dns"
)

func newCmdDomain() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "domain",
		Short:              "Manage registered domains",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(
		newCmdDomainCreate(),
		newCmdDomainList(),
		newCmdDomainDelete(),
		newCmdDomainRefreshSerial(),
	)
	return cmd
}

func newCmdDomainCreate() *cobra.Command {
	var account string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Register a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildDNSUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out, err := u.Create(ctx, &dns.CreateInput{Name: args[0], AccountID: account})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Domain)
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "Owning account (subdomains inherit the top domain's)")
	return cmd
}

func newCmdDomainList() *cobra.Command {
	var topOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildDNSUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out, err := u.List(ctx, &dns.ListInput{TopOnly: topOnly})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, d := range out.Domains {
				if err := enc.Encode(d); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&topOnly, "top", false, "Only list zone-owning top domains")
	return cmd
}

func newCmdDomainDelete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildDNSUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			_, err = u.Delete(ctx, &dns.DeleteInput{ID: args[0]})
			return err
		},
	}
}

func newCmdDomainRefreshSerial() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh-serial <name|id>",
		Short: "Advance the zone serial of a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildDNSUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out, err := u.RefreshSerial(ctx, &dns.RefreshSerialInput{Domain: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", out.Domain.Name, out.Serial)
			return nil
		},
	}
}
