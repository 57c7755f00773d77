package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/strodow/plucky/internal/system"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report host facts relevant to live output",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := system.Probe()
			if err != nil {
				return err
			}
			fmt.Printf("[*] Host: %s (%s, kernel %s)\n", r.Hostname, r.Platform, r.KernelVersion)
			fmt.Printf("[*] Uptime: %s\n", (time.Duration(r.UptimeSec) * time.Second).String())
			if r.CPUModel != "" {
				fmt.Printf("[*] CPU: %s, %d logical cores\n", r.CPUModel, r.CPUCores)
			}
			fmt.Printf("[*] Memory: %d MB total, %d MB available\n", r.TotalMemMB, r.AvailableMemMB)

			cfg := ctx.cfg
			fmt.Printf("[*] Output: %dx%d\n", cfg.Output.Width, cfg.Output.Height)
			fmt.Printf("[*] SDI: fill=%d key=%d at %d/%d, keyer level %d\n",
				cfg.Sdi.FillDevice, cfg.Sdi.KeyDevice,
				cfg.Sdi.FrameRateNum, cfg.Sdi.FrameRateDen, cfg.Sdi.KeyerLevel)
			if r.AvailableMemMB > 0 && r.AvailableMemMB < 512 {
				fmt.Println("[!] Less than 512 MB free, large renders may fail")
			}
			return nil
		},
	}
}
