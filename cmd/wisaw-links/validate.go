package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/joestump/wisaw-links/internal/identity"
)

var errCannotSubmit = errors.New("identity form cannot be submitted")

func newValidateCmd() *cobra.Command {
	var (
		nickName, secret, confirm string
		strength                  int
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a nickname and secret against the identity rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			errs := identity.Validate(nickName, secret, confirm, strength)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(errs); err != nil {
				return err
			}
			if !identity.CanSubmit(errs, secret) {
				return errCannotSubmit
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&nickName, "nickname", "", "nickname")
	cmd.Flags().StringVar(&secret, "secret", "", "secret")
	cmd.Flags().StringVar(&confirm, "confirm", "", "secret confirmation")
	cmd.Flags().IntVar(&strength, "strength", 0, "secret strength score (0-4)")
	return cmd
}
