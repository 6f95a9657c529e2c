package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyflap/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagNoRewards   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SkyFlap SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. The SSH user name is the reward
account, so tokens earned over SSH land in the server's ledger.

Settings are read from the environment first, flags override them:
  SKYFLAP_SSH_ADDR, SKYFLAP_HOST_KEY, SKYFLAP_DB,
  SKYFLAP_IDLE_TIMEOUT, SKYFLAP_REWARDS

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.skyflap/host_key

Examples:
  skyflap serve                           # Listen on :23234 with auto-generated key
  skyflap serve --ssh :2222               # Listen on port 2222
  skyflap serve --host-key ./my_host_key  # Use specific host key
  skyflap serve --db ./rewards.db         # Use specific ledger

Users can connect with:
  ssh alice@localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (e.g. 30m)")
	serveCmd.Flags().BoolVar(&flagNoRewards, "no-rewards", false, "Do not grant tokens")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	cfg, err := tui.LoadSSHServerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if flagNoRewards {
		cfg.Rewards = false
	}

	server, err := tui.NewSSHServer(cfg, loadGameConfig(), logger.WithPrefix("ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting SkyFlap SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
