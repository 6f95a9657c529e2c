package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyflap/internal/games/flappy"
	"github.com/vovakirdan/skyflap/internal/reward"
	"github.com/vovakirdan/skyflap/internal/runner"
	"github.com/vovakirdan/skyflap/internal/storage"
)

var (
	flagTicks      uint64
	flagRealtime   bool
	flagSimAccount string
	flagNoPilot    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless playthrough with the autopilot",
	Long: `Play without a terminal. The autopilot flaps until it crashes or the
tick limit is hit, then the final state is printed.

With the same --seed and config every run is identical.

Examples:
  skyflap sim --seed 42
  skyflap sim --seed 42 --ticks 10000
  skyflap sim --realtime --ticks 600
  skyflap sim --account bot --db ./rewards.db`,
	Run: runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagTicks, "ticks", 3600, "Maximum number of ticks")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Tick on the wall clock instead of as fast as possible")
	simCmd.Flags().StringVar(&flagSimAccount, "account", "", "Reward account to credit (empty = no rewards)")
	simCmd.Flags().BoolVar(&flagNoPilot, "no-autopilot", false, "Never flap (free fall)")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	cfg := loadGameConfig()
	rt := runtimeConfig(0, 0)
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	sessionOpts := []flappy.Option{
		flappy.WithSeed(rt.Seed),
		flappy.WithGeometry(flappy.GeometryFromConfig(cfg)),
		flappy.WithLogger(logger.WithPrefix("session")),
	}

	var dispatcher *reward.Dispatcher
	if flagSimAccount != "" && cfg.Rewards.Enabled {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening reward ledger: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		dispatcher = reward.NewDispatcher(reward.Options{
			Account:   flagSimAccount,
			SessionID: "sim-" + fmt.Sprint(rt.Seed),
			Amount:    cfg.Rewards.Amount,
			QueueSize: cfg.Rewards.QueueSize,
			Ledger:    store,
			Logger:    logger.WithPrefix("reward"),
		})
		dispatcher.Start(context.Background())
		sessionOpts = append(sessionOpts,
			flappy.WithRewardHook(dispatcher),
			flappy.WithAccount(true),
		)
	}

	session := flappy.NewSession(flappy.ParamsFromConfig(cfg), sessionOpts...)

	runOpts := []runner.Option{
		runner.WithMaxTicks(flagTicks),
		runner.WithLogger(logger.WithPrefix("runner")),
	}
	if !flagNoPilot {
		runOpts = append(runOpts, runner.WithAutopilot(runner.NewAutopilot()))
	}
	r := runner.New(session, runOpts...)

	logger.Info("simulating", "seed", rt.Seed, "ticks", flagTicks, "realtime", flagRealtime)

	var snap runner.Snapshot
	if flagRealtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var err error
		snap, err = r.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		snap = r.Simulate(flagTicks)
	}

	fmt.Printf("Seed:       %d\n", rt.Seed)
	fmt.Printf("State:      %s\n", snap.State)
	fmt.Printf("Ticks:      %d\n", snap.Ticks)
	fmt.Printf("Score:      %d\n", snap.Score)
	fmt.Printf("High score: %d\n", snap.HighScore)

	if dispatcher != nil {
		dispatcher.Stop()
		fmt.Printf("Tokens:     %d (%s)\n", dispatcher.Earned(), dispatcher.Stats())
	}
}
