package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

var (
	configPath string
	flagCfg    = DefaultConfig()
	noVerify   bool
	cfg        *Config
	grid       *Grid
)

var rootCmd = &cobra.Command{
	Use:   "grid-planner",
	Short: "Shortest paths on obstacle grids",
	Long: `grid-planner finds shortest paths between two cells of a 2-D obstacle
grid with a best-first search (Euclidean step cost, Manhattan heuristic,
8-directional moves without corner cutting) and cross-checks every answer
with a breadth-first traversal.

Without --map the built-in 15x20 demonstration map is used.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, loaded)
		if err := loaded.Validate(); err != nil {
			return err
		}
		if err := ConfigureLogging(loaded.LogLevel, loaded.LogFormat, os.Stderr); err != nil {
			return err
		}
		cfg = loaded

		grid, err = LoadMap(cfg.MapPath)
		return err
	},
}

// applyFlagOverrides copies explicitly set flags over the loaded config
func applyFlagOverrides(cmd *cobra.Command, c *Config) {
	flags := cmd.Flags()
	if flags.Changed("map") {
		c.MapPath = flagCfg.MapPath
	}
	if flags.Changed("log-level") {
		c.LogLevel = flagCfg.LogLevel
	}
	if flags.Changed("log-format") {
		c.LogFormat = flagCfg.LogFormat
	}
	if flags.Changed("frontier-capacity") {
		c.FrontierCapacity = flagCfg.FrontierCapacity
	}
	if flags.Changed("queue-capacity") {
		c.QueueCapacity = flagCfg.QueueCapacity
	}
	if flags.Changed("reopen") {
		c.Reopen = flagCfg.Reopen
	}
	if flags.Changed("no-verify") {
		c.Verify = !noVerify
	}
	if flags.Changed("color") {
		c.Color = flagCfg.Color
	}
	if flags.Changed("addr") {
		c.ListenAddr = flagCfg.ListenAddr
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", os.Getenv(envPrefix+"CONFIG"), "path to a YAML config file")
	flags.StringVarP(&flagCfg.MapPath, "map", "m", "", "map file (.txt rows of 0/1 or .yaml document)")
	flags.StringVar(&flagCfg.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&flagCfg.LogFormat, "log-format", "text", "log format (text or json)")
	flags.IntVar(&flagCfg.FrontierCapacity, "frontier-capacity", 0, "bound on pending search candidates (0 = unbounded)")
	flags.IntVar(&flagCfg.QueueCapacity, "queue-capacity", 0, "bound on the breadth-first queue (0 = unbounded)")
	flags.BoolVar(&flagCfg.Reopen, "reopen", false, "lower the cost of queued cells when a cheaper route appears")
	flags.BoolVar(&flagCfg.Color, "color", false, "colour the rendered map")
	flags.BoolVar(&noVerify, "no-verify", false, "skip the breadth-first cross-check")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
