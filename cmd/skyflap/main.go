// skyflap is a side-scrolling flappy game for the terminal.
//
// Usage:
//
//	skyflap play             - Play in the terminal
//	skyflap sim              - Run a headless playthrough with the autopilot
//	skyflap serve            - Start SSH server for remote play
//	skyflap rewards          - Show the token reward ledger
//	skyflap list             - List playable characters
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from config, 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set reward ledger path (default: ~/.skyflap/rewards.db)
//	--config <path>     - Use a custom game config YAML
//	--difficulty <name> - Difficulty preset: easy, normal, hard
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyflap/internal/config"
	"github.com/vovakirdan/skyflap/internal/core"
	"github.com/vovakirdan/skyflap/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyflap",
	Short: "SkyFlap - flap through the pipes in your terminal",
	Long: `SkyFlap is a side-scrolling obstacle game for the terminal.
Flap through the gaps, earn a token for every pipe you pass.

Available commands:
  play     - Play in the terminal
  sim      - Headless playthrough with the autopilot
  serve    - Start SSH server for remote play
  rewards  - View the token reward ledger
  list     - Show playable characters

Examples:
  skyflap play
  skyflap play --skin blub --difficulty hard
  skyflap sim --seed 42 --ticks 5000
  skyflap serve --ssh :2222
  skyflap rewards --plain`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to reward ledger database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rewardsCmd)
}

// newLogger builds the root logger. The returned closer releases the log file.
func newLogger(quietTerminal bool) (*log.Logger, func()) {
	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			w = f
			closeFn = func() { f.Close() }
		}
	case quietTerminal:
		// The TUI owns the terminal; without a log file logs are discarded.
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "skyflap",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger, closeFn
}

// runtimeConfig collects the platform flags.
func runtimeConfig(width, height int) core.RuntimeConfig {
	rt := core.DefaultConfig()
	if width > 0 && height > 0 {
		rt.ScreenW = width
		rt.ScreenH = height
	}
	if flagFPS > 0 {
		rt.TickRate = flagFPS
	}
	rt.Seed = flagSeed
	return rt
}

// loadGameConfig loads YAML, applies the difficulty preset and the tick rate override.
func loadGameConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPreset(&cfg, preset)

	if flagFPS > 0 {
		cfg.Session.TickRate = flagFPS
	}
	return cfg
}
