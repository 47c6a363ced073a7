package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/usecase/dns"
)

func newCmdRecord() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "record",
		Short:              "Manage declared resource records",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdRecordAdd(), newCmdRecordList(), newCmdRecordDelete())
	return cmd
}

func newCmdRecordAdd() *cobra.Command {
	var ttl string
	cmd := &cobra.Command{
		Use:   "add <domain> <type> <value>",
		Short: "Declare a record on a domain",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildDNSUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out, err := u.AddRecord(ctx, &dns.AddRecordInput{
				Domain: args[0],
				Type:   model.RecordType(args[1]),
				TTL:    ttl,
				Value:  args[2],
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Record)
		},
	}
	cmd.Flags().StringVar(&ttl, "ttl", "", "Record TTL (defaults to the zone TTL)")
	return cmd
}

func newCmdRecordList() *cobra.Command {
	return &cobra.Command{
		Use:   "list <domain>",
		Short: "List the declared records of a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildDNSUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out, err := u.ListRecords(ctx, &dns.ListRecordsInput{Domain: args[0]})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, rec := range out.Records {
				if err := enc.Encode(rec); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCmdRecordDelete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a declared record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildDNSUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			_, err = u.DeleteRecord(ctx, &dns.DeleteRecordInput{ID: args[0]})
			return err
		},
	}
}
