package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strodow/plucky/internal/decklink"
)

func newDevicesCommand(ctx *commandContext) *cobra.Command {
	var simulate bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List attached SDI devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			var api decklink.API
			if simulate {
				api = decklink.NewSimulator()
			} else {
				lib, err := decklink.OpenLibrary(ctx.cfg.Sdi.LibraryPath)
				if err != nil {
					return fmt.Errorf("no wrapper library, try --simulate: %w", err)
				}
				api = lib
			}

			sess := decklink.NewSession(api, ctx.log)
			if err := sess.Open(); err != nil {
				return err
			}
			defer sess.Close()

			if v, err := sess.Version(); err == nil {
				fmt.Printf("[*] API version %s\n", v)
			}
			names, err := sess.Devices()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("[!] No devices found")
				return nil
			}
			for i, name := range names {
				fmt.Printf("[*] Device %d: %s\n", i, name)
			}
			if len(names) < 2 {
				fmt.Println("[!] External keying needs two devices (fill + key)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&simulate, "simulate", false, "use the device simulator instead of hardware")
	return cmd
}
