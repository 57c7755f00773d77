package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/strodow/plucky/internal/source"
)

func newQRCommand(ctx *commandContext) *cobra.Command {
	var (
		out  string
		size int
	)

	cmd := &cobra.Command{
		Use:   "qr <payload>",
		Short: "Generate a QR code image, e.g. a connect link for the congregation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := &source.QR{Payload: args[0]}
			img, err := q.Background(size, size)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return fmt.Errorf("encode png: %w", err)
			}
			fmt.Printf("[*] QR code written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "qr.png", "output PNG path")
	cmd.Flags().IntVar(&size, "size", 512, "image size in pixels")
	return cmd
}
