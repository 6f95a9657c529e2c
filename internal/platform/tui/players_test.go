package tui

import (
	"testing"
	"time"
)

func TestPlayerRegistry(t *testing.T) {
	r := NewPlayerRegistry()
	now := time.Now()

	r.Register(Player{SessionID: "b", Account: "bob", Started: now})
	r.Register(Player{SessionID: "a", Account: "alice", Started: now.Add(-time.Minute)})

	if r.Count() != 2 {
		t.Fatalf("Count() = %d, expected 2", r.Count())
	}

	list := r.List()
	if list[0].Account != "alice" || list[1].Account != "bob" {
		t.Errorf("List() = %v, expected oldest first", list)
	}

	played, ok := r.Unregister("a")
	if !ok || played < time.Minute {
		t.Errorf("Unregister(a) = %v, %v, expected at least a minute", played, ok)
	}
	if _, ok := r.Unregister("a"); ok {
		t.Error("second Unregister should report a missing player")
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", r.Count())
	}
}

func TestLoadSSHServerConfigFromEnv(t *testing.T) {
	t.Setenv("SKYFLAP_SSH_ADDR", ":2222")
	t.Setenv("SKYFLAP_IDLE_TIMEOUT", "5m")
	t.Setenv("SKYFLAP_REWARDS", "false")

	cfg, err := LoadSSHServerConfig()
	if err != nil {
		t.Fatalf("LoadSSHServerConfig() error: %v", err)
	}
	if cfg.Address != ":2222" || cfg.IdleTimeout != 5*time.Minute || cfg.Rewards {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath should keep its default")
	}
}
