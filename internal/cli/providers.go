package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/perfhud/internal/config"
	"github.com/wesleyorama2/perfhud/internal/hud/provider"
)

// builtinDescriptions documents the built-in metric keys.
var builtinDescriptions = map[string]string{
	provider.KeyFrameTime:    "time since the previous frame, in milliseconds",
	provider.KeyFrameTimeP99: "99th percentile frame time over a sliding window",
	provider.KeyFPS:          "instantaneous frames per second",
	provider.KeyEntityCount:  "host-reported entity count",
	provider.KeySystemCPU:    "system-wide CPU usage, percent",
	provider.KeySystemMemory: "system memory in use, percent",
	provider.KeyProcessCPU:   "CPU usage of this process, percent",
	provider.KeyProcessMem:   "resident memory of this process, MiB",
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the metric keys available to graphs and bars",
	Long: `Providers lists the built-in metric keys. With --config it lists the
keys produced by that configuration instead, marking custom providers by
kind.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		return listProviders(cmd, configPath)
	},
}

func listProviders(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	if configPath == "" {
		for _, key := range provider.BuiltinKeys() {
			fmt.Fprintf(out, "%-20s %s\n", key, builtinDescriptions[key])
		}
		return nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	kinds := make(map[string]string)
	if cfg.Providers.BuiltinEnabled() {
		for _, key := range provider.BuiltinKeys() {
			kinds[key] = "builtin"
		}
	}
	for _, s := range cfg.Providers.Simulated {
		kinds[s.ID] = "simulated (" + waveformOr(s.Waveform) + ")"
	}
	for _, j := range cfg.Providers.JSONPath {
		kinds[j.ID] = "jsonpath " + j.Path
	}
	for _, g := range cfg.Providers.Gatherer {
		kinds[g.ID] = "gatherer " + g.Family
	}

	keys := make([]string, 0, len(kinds))
	for key := range kinds {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(out, "%-20s %s\n", key, kinds[key])
	}
	return nil
}

func waveformOr(w string) string {
	if w == "" {
		return provider.WaveConstant
	}
	return w
}

func init() {
	providersCmd.Flags().StringP("config", "c", "", "HUD configuration file (YAML or JSON)")
}
