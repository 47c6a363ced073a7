package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/panelops/panelops/domain/model"
	"github.com/panelops/panelops/usecase/site"
)

// siteSpec is the YAML shape accepted by `site create -f`.
type siteSpec struct {
	Name      string         `yaml:"name" json:"name"`
	AccountID string         `yaml:"accountID" json:"accountID"`
	Protocol  model.Protocol `yaml:"protocol,omitempty" json:"protocol,omitempty"`
	Active    *bool          `yaml:"active,omitempty" json:"active,omitempty"`
	Contents  []struct {
		Path     string `yaml:"path" json:"path"`
		WebAppID string `yaml:"webAppID" json:"webAppID"`
	} `yaml:"contents,omitempty" json:"contents,omitempty"`
	Directives []struct {
		Name  string `yaml:"name" json:"name"`
		Value string `yaml:"value" json:"value"`
	} `yaml:"directives,omitempty" json:"directives,omitempty"`
	DomainIDs []string `yaml:"domainIDs,omitempty" json:"domainIDs,omitempty"`
}

func newCmdSite() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "site",
		Short:              "Manage sites",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(
		newCmdSiteCreate(),
		newCmdSiteList(),
		newCmdSiteGet(),
		newCmdSiteDelete(),
	)
	return cmd
}

func readSiteSpec(cmd *cobra.Command, path string) (*siteSpec, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var spec siteSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

func newCmdSiteCreate() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create -f <file>",
		Short: "Create a site from a YAML spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("-f is required")
			}
			spec, err := readSiteSpec(cmd, file)
			if err != nil {
				return err
			}
			u, err := buildSiteUseCase(cmd)
			if err != nil {
				return err
			}
			in := &site.CreateInput{
				Name:      spec.Name,
				AccountID: spec.AccountID,
				Protocol:  spec.Protocol,
				Active:    spec.Active,
				DomainIDs: spec.DomainIDs,
			}
			for _, content := range spec.Contents {
				in.Contents = append(in.Contents, model.Content{
					Path:     content.Path,
					WebAppID: content.WebAppID,
				})
			}
			for _, directive := range spec.Directives {
				in.Directives = append(in.Directives, model.SiteDirective{
					Name:  directive.Name,
					Value: directive.Value,
				})
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out, err := u.Create(ctx, in)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Site)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Site spec file (- for stdin)")
	return cmd
}

func newCmdSiteList() *cobra.Command {
	var account string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildSiteUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out, err := u.List(ctx, &site.ListInput{AccountID: account})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, s := range out.Sites {
				if err := enc.Encode(s); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "Only list sites of this account")
	return cmd
}

func newCmdSiteGet() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildSiteUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			out, err := u.Get(ctx, &site.GetInput{ID: args[0]})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Site)
		},
	}
}

func newCmdSiteDelete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := buildSiteUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			_, err = u.Delete(ctx, &site.DeleteInput{ID: args[0]})
			return err
		},
	}
}
