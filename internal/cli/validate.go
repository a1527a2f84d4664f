package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/perfhud/internal/config"
	"github.com/wesleyorama2/perfhud/internal/output"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a HUD configuration file",
	Long: `Validate checks a configuration file against the configuration schema,
then applies defaults and runs the semantic checks (ranges, limits,
percentiles, colors, provider ids). Graph and bar keys that no configured
provider produces are reported as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noColor, _ := cmd.Flags().GetBool("no-color")
		return validateConfigFile(cmd, args[0], noColor)
	},
}

func validateConfigFile(cmd *cobra.Command, path string, noColor bool) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(out, "%s %s\n", output.ErrorIcon(noColor), path)
		return err
	}
	config.ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "%s %s\n", output.ErrorIcon(noColor), path)
		return err
	}

	curves := 0
	if cfg.Graph != nil {
		curves = len(cfg.Graph.Curves)
	}
	fmt.Fprintf(out, "%s %s: %d curves, %d bars, %d metric keys\n",
		output.SuccessIcon(noColor), path, curves, len(cfg.Bars), len(cfg.ProviderKeys()))

	for _, key := range cfg.UnknownKeys() {
		fmt.Fprintf(out, "%s no provider produces %q\n", output.WarningIcon(noColor), key)
	}
	return nil
}

func init() {
	validateCmd.Flags().Bool("no-color", false, "Disable colored output")
}
