package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "perfhud",
	Short:   "A real-time performance metrics HUD for the terminal",
	Version: version,
	Long: `perfhud samples frame timing, CPU, memory and custom metrics once per
frame, smooths and auto-scales them, and renders scrolling graphs and
proportional bars. Metrics come from built-in probes, synthetic
waveforms, JSONPath lookups into a diagnostics document, or the
in-process Prometheus registry.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		// If no subcommand is provided, print help
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func init() {
	// Add subcommands to root command
	RootCmd.AddCommand(runCmd)
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(providersCmd)
}
