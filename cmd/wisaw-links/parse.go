package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/joestump/wisaw-links/internal/config"
	"github.com/joestump/wisaw-links/internal/deeplink"
)

func newParseCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "parse <url>",
		Short: "Print the intent a link resolves to as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := deeplink.Parser{}
			if strict {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				p = parserFor(cfg)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p.Parse(args[0]))
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "only accept the configured scheme and hosts")
	return cmd
}
