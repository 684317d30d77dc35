package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lpc178x-hal/errcode"
	"lpc178x-hal/targets"
	"lpc178x-hal/uart"
)

func newRoutesCmd() *cobra.Command {
	var only int
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the UART pin routing table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if only >= uart.NumInstances {
				return errcode.New(errcode.InvalidParams, "routes", fmt.Sprintf("no uart%d", only))
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "UART\tROLE\tPIN\tFUNC")
			for n := uart.UART0; n < uart.NumInstances; n++ {
				if only >= 0 && int(n) != only {
					continue
				}
				for _, role := range []uart.Role{uart.RX, uart.TX} {
					for _, id := range uart.Routes(n, role) {
						fn, _ := uart.Route(id, n, role)
						fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", n, role, id, fn)
					}
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&only, "uart", -1, "only this UART instance")
	return cmd
}

func newTargetsCmd() *cobra.Command {
	var feature string
	cmd := &cobra.Command{
		Use:   "targets [CHIP|SERIES]",
		Short: "List supported chips",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			all := targets.All()
			var only []targets.Series
			if len(args) == 1 {
				s, c, err := all.FindByChip(args[0])
				if err == nil {
					printChip(out, s, c)
					return nil
				}
				series, serr := all.FindBySeries(args[0])
				if serr != nil {
					return errcode.New(errcode.UnknownChip, "targets",
						args[0]+" is neither a chip nor a series; chips: "+strings.Join(all.Chips(), ", "))
				}
				only = append(only, series)
			} else {
				only = all
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CHIP\tSERIES\tFLASH\tSRAM")
			for _, s := range only {
				if feature != "" && !s.Has(feature) {
					continue
				}
				for _, c := range s.Chips {
					fmt.Fprintf(tw, "%s\t%s\t%dK\t%dK\n", c.Name, s.Name, c.FlashKiB, c.SRAMKiB)
				}
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&feature, "feature", "", "only series with this feature (usb, ethernet, lcd, emc)")
	return cmd
}

func printChip(out io.Writer, s targets.Series, c targets.Chip) {
	fmt.Fprintf(out, "chip:     %s\n", c.Name)
	fmt.Fprintf(out, "series:   %s (%s)\n", s.Name, s.CPU)
	fmt.Fprintf(out, "flash:    %d KiB\n", c.FlashKiB)
	fmt.Fprintf(out, "sram:     %d KiB\n", c.SRAMKiB)
	fmt.Fprintf(out, "cclk:     <= %d Hz\n", s.MaxCPUHz)
	fmt.Fprintf(out, "crystal:  %d..%d Hz\n", s.CrystalMinHz, s.CrystalMaxHz)
	fmt.Fprintf(out, "uarts:    %d\n", s.UARTs)
	fmt.Fprintf(out, "timers:   %d\n", s.Timers)
	fmt.Fprintf(out, "gpio:     P0..P%d\n", s.GPIOPorts-1)
	fmt.Fprintf(out, "features: %s\n", strings.Join(s.Features, ","))
}
