// Command lpchal is the host-side companion of the HAL: it plans PLL and
// baud settings, prints the UART pin routing and chip tables, and runs an
// interactive console against the register simulator.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lpchal",
		Short:         "LPC178x HAL planning and simulation tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newPLLCmd(),
		newBaudCmd(),
		newRoutesCmd(),
		newTargetsCmd(),
		newConsoleCmd(),
	)
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("lpchal:", err)
		os.Exit(1)
	}
}
