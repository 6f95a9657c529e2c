package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyflap/internal/audio"
	"github.com/vovakirdan/skyflap/internal/platform/tui"
	"github.com/vovakirdan/skyflap/internal/registry"
	"github.com/vovakirdan/skyflap/internal/storage"
)

var (
	flagSkin    string
	flagAccount string
	flagMute    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start playing.

Controls:
  Space/Up/Click  - Start, flap, restart
  Left/Right      - Pick a character (title screen)
  B/Esc           - Back to the title screen
  P               - Pause
  M               - Toggle sound
  ?               - Toggle help
  Q/Ctrl+C        - Quit

Tokens are granted for every pipe passed while an account is set.

Examples:
  skyflap play
  skyflap play --skin miu
  skyflap play --account alice --mute
  skyflap play --difficulty hard --seed 7`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSkin, "skin", registry.DefaultSkinID, "Character skin ID (see 'skyflap list')")
	playCmd.Flags().StringVar(&flagAccount, "account", "", "Reward account (empty plays without rewards)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
}

func runPlay(_ *cobra.Command, _ []string) {
	if !registry.Exists(flagSkin) {
		fmt.Fprintf(os.Stderr, "Error: unknown skin %q\n", flagSkin)
		fmt.Fprintln(os.Stderr, "Run 'skyflap list' to see available characters.")
		os.Exit(1)
	}

	logger, closeLog := newLogger(true)
	defer closeLog()

	cfg := loadGameConfig()

	width, height := 0, 0
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rt := runtimeConfig(width, height)

	opts := tui.PlayOptions{
		Config:  cfg,
		Seed:    rt.Seed,
		Skin:    flagSkin,
		Account: flagAccount,
		Muted:   flagMute,
		Logger:  logger,
		Width:   rt.ScreenW,
		Height:  rt.ScreenH,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without a ledger; tokens are still counted on screen.
		logger.Warn("could not open reward ledger", "error", err)
	} else {
		defer store.Close()
		opts.Ledger = store
	}

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		logger.Warn("sound disabled", "error", err)
	} else {
		defer sound.Cleanup()
		opts.Sound = sound
	}

	if err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}

	if store != nil && flagAccount != "" {
		if total, err := store.TotalRewards(flagAccount); err == nil {
			fmt.Printf("%s has %d tokens.\n", flagAccount, total)
		}
	}
}
