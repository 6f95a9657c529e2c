package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/skyflap/internal/config"
	"github.com/vovakirdan/skyflap/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
// Every field can be set from the environment; flags override it.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string `env:"SKYFLAP_SSH_ADDR" envDefault:":23234"`

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.skyflap/host_key.
	HostKeyPath string `env:"SKYFLAP_HOST_KEY"`

	// DBPath is the path to the reward ledger.
	DBPath string `env:"SKYFLAP_DB" envDefault:"~/.skyflap/rewards.db"`

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration `env:"SKYFLAP_IDLE_TIMEOUT" envDefault:"30m"`

	// Rewards grants tokens to SSH users when true.
	Rewards bool `env:"SKYFLAP_REWARDS" envDefault:"true"`
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath,
		IdleTimeout: 30 * time.Minute,
		Rewards:     true,
	}
}

// LoadSSHServerConfig reads the server settings from the environment.
func LoadSSHServerConfig() (SSHServerConfig, error) {
	cfg := DefaultSSHServerConfig()
	if err := config.ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SSHServer wraps a Wish SSH server. Every connection gets its own game session.
type SSHServer struct {
	config  SSHServerConfig
	game    config.Config
	server  *ssh.Server
	store   *storage.Store
	players *PlayerRegistry
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, game config.Config, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "skyflap-ssh",
		})
	}

	var store *storage.Store
	if cfg.Rewards {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open reward ledger", "error", err)
			// Continue without a ledger; tokens are still counted per session.
		}
	}

	srv := &SSHServer{
		config:  cfg,
		game:    game,
		store:   store,
		players: NewPlayerRegistry(),
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".skyflap", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a play model for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	sessionID, _ := sshSession.Context().Value(sessionIDKey{}).(string)
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	opts := PlayOptions{
		Config:    s.game,
		Account:   sshSession.User(),
		SessionID: sessionID,
		Logger:    s.logger.With("user", sshSession.User()),
		Width:     pty.Window.Width,
		Height:    pty.Window.Height,
	}
	if s.store != nil {
		opts.Ledger = s.store
	}
	if !s.config.Rewards {
		opts.Account = ""
	}

	model := NewModel(opts)
	go func() {
		<-sshSession.Context().Done()
		model.Close()
	}()

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

type sessionIDKey struct{}

// loggingMiddleware registers players and logs session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := NewSessionID()
		sshSession.Context().SetValue(sessionIDKey{}, id)

		s.players.Register(Player{
			SessionID: id,
			Account:   sshSession.User(),
			Remote:    sshSession.RemoteAddr().String(),
			Started:   time.Now(),
		})
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"players", s.players.Count(),
		)

		next(sshSession)

		played, _ := s.players.Unregister(id)
		fields := []any{
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", played.Round(time.Second),
		}
		if s.store != nil {
			if tokens, err := s.store.SessionRewards(id); err == nil {
				fields = append(fields, "tokens", tokens)
			}
		}
		s.logger.Info("session ended", fields...)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		s.Shutdown()
		return err
	}

	s.logger.Info("shutting down...", "players", s.players.Count())
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Players returns the connected players.
func (s *SSHServer) Players() []Player {
	return s.players.List()
}
