package main

import (
	"fmt"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/joestump/wisaw-links/internal/config"
	"github.com/joestump/wisaw-links/internal/friendship"
)

func newShareCmd() *cobra.Command {
	var (
		qrPath string
		qrSize int
	)
	cmd := &cobra.Command{
		Use:   "share <friendship-uuid> [friend-name]",
		Short: "Print the share link for a friendship",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			var name string
			if len(args) == 2 {
				name = args[1]
			}
			link, err := friendship.NewCodec(cfg.Links.Scheme).Encode(args[0], name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)

			if qrPath == "" {
				return nil
			}
			if err := qrcode.WriteFile(link, qrcode.Medium, qrSize, qrPath); err != nil {
				return fmt.Errorf("write qr code: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&qrPath, "qr", "", "also write the link as a PNG QR code to this path")
	cmd.Flags().IntVar(&qrSize, "qr-size", 256, "QR code size in pixels")
	return cmd
}
