package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyflap/internal/storage"
)

type fakeLedger struct {
	accounts []storage.AccountTotal
	grants   map[string][]storage.RewardEntry
	err      error
}

func (f *fakeLedger) TopAccounts(int) ([]storage.AccountTotal, error) {
	return f.accounts, f.err
}

func (f *fakeLedger) RecentRewards(account string, _ int) ([]storage.RewardEntry, error) {
	return f.grants[account], f.err
}

func testLedger() *fakeLedger {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return &fakeLedger{
		accounts: []storage.AccountTotal{
			{Account: "alice", Total: 12, Grants: 2},
			{Account: "bob", Total: 3, Grants: 1},
		},
		grants: map[string][]storage.RewardEntry{
			"alice": {
				{ID: 2, Account: "alice", SessionID: "s2", Amount: 10, CreatedAt: now},
				{ID: 1, Account: "alice", SessionID: "s1", Amount: 2, CreatedAt: now},
			},
			"bob": {
				{ID: 3, Account: "bob", SessionID: "s3", Amount: 3, CreatedAt: now},
			},
		},
	}
}

func TestRewardsModelPreselectsAccount(t *testing.T) {
	m := NewRewardsModel(testLedger(), "bob", 100, 30)

	if m.Selected() != "bob" {
		t.Errorf("Selected() = %q, expected bob", m.Selected())
	}
	if len(m.grants) != 1 {
		t.Errorf("loaded %d grants, expected 1", len(m.grants))
	}
	if !strings.Contains(m.View(), "TOKENS EARNED - bob (3)") {
		t.Error("title should show the selected account total")
	}
}

func TestRewardsModelCyclesAccounts(t *testing.T) {
	m := NewRewardsModel(testLedger(), "", 100, 30)
	if m.Selected() != "alice" {
		t.Fatalf("Selected() = %q, expected alice", m.Selected())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RewardsModel)
	if m.Selected() != "bob" {
		t.Errorf("after tab Selected() = %q, expected bob", m.Selected())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RewardsModel)
	if m.Selected() != "alice" {
		t.Errorf("tab should wrap around, got %q", m.Selected())
	}
	if len(m.grants) != 2 {
		t.Errorf("loaded %d grants for alice, expected 2", len(m.grants))
	}
}

func TestRewardsModelEmptyAndError(t *testing.T) {
	empty := NewRewardsModel(&fakeLedger{}, "", 60, 20)
	if !strings.Contains(empty.View(), "No tokens earned yet") {
		t.Error("empty ledger should show a hint")
	}
	if empty.Selected() != "" {
		t.Errorf("Selected() = %q on empty ledger", empty.Selected())
	}

	broken := NewRewardsModel(&fakeLedger{err: errors.New("locked")}, "", 60, 20)
	if !strings.Contains(broken.View(), "locked") {
		t.Error("ledger error should be shown")
	}
}
