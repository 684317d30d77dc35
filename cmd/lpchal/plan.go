package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lpc178x-hal/clock"
	"lpc178x-hal/errcode"
	"lpc178x-hal/targets"
	"lpc178x-hal/uart"
)

func newPLLCmd() *cobra.Command {
	opts := struct {
		crystal uint32
		cpu     uint32
		all     bool
		chip    string
	}{}
	cmd := &cobra.Command{
		Use:   "pll",
		Short: "Plan PLL0 for a core clock",
		Long:  "Derive MSEL/PSEL for a target core clock from the crystal, or list every reachable core clock with --all.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !opts.all {
				pll, err := clock.Plan(opts.cpu, opts.crystal)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "cclk=%d m=%d msel=%d psel=%d fcco=%d\n",
					pll.CPUHz, pll.Multiplier(), pll.M, pll.P, pll.FCCO)
				return nil
			}

			s, _, err := targets.All().FindByChip(opts.chip)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CCLK\tM\tPSEL\tFCCO")
			for m := uint32(1); m <= 256; m++ {
				if uint64(opts.crystal)*uint64(m) > uint64(s.MaxCPUHz) {
					break
				}
				pll, err := clock.Plan(opts.crystal*m, opts.crystal)
				if err != nil {
					continue
				}
				fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", pll.CPUHz, pll.Multiplier(), pll.P, pll.FCCO)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().Uint32Var(&opts.crystal, "crystal", 12_000_000, "main oscillator frequency (Hz)")
	cmd.Flags().Uint32Var(&opts.cpu, "cpu", 96_000_000, "target core clock (Hz)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "list every reachable core clock")
	cmd.Flags().StringVar(&opts.chip, "chip", "lpc1788", "chip whose clock limit applies to --all")
	return cmd
}

func newBaudCmd() *cobra.Command {
	var cpu uint32
	cmd := &cobra.Command{
		Use:   "baud RATE...",
		Short: "Search UART divisors for baud rates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "BAUD\tDLM\tDLL\tMULVAL\tDIVADDVAL\tACTUAL\tERROR")
			var errs []error
			for _, a := range args {
				baud, err := strconv.ParseUint(a, 10, 32)
				if err != nil {
					errs = append(errs, errcode.New(errcode.InvalidParams, "baud", "bad rate "+a))
					continue
				}
				d, err := uart.ComputeDivisors(cpu, uint32(baud))
				if err != nil {
					fmt.Fprintf(tw, "%d\t-\t-\t-\t-\t-\t%s\n", baud, errcode.Of(err))
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%.1f\t%.3f%%\n", baud, d.DLM, d.DLL, d.MulVal, d.DivAddVal,
					d.Baud(cpu), 100*d.Deviation(cpu, uint32(baud)))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().Uint32Var(&cpu, "cpu", 96_000_000, "peripheral clock (Hz)")
	return cmd
}
