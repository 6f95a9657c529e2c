package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/skyflap/internal/reward"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.RecordReward(context.Background(), reward.Grant{Account: "alice", Amount: 3}); err != nil {
		t.Fatalf("RecordReward() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	total, err := store.TotalRewards("alice")
	if err != nil {
		t.Fatalf("TotalRewards() failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3 after reopen, got %d", total)
	}
}

func TestStoreRecordAndTotals(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	grants := []reward.Grant{
		{Account: "alice", SessionID: "s1", Amount: 1, At: base},
		{Account: "alice", SessionID: "s1", Amount: 1, At: base.Add(time.Second)},
		{Account: "bob", SessionID: "s2", Amount: 5, At: base.Add(2 * time.Second)},
		{Account: "alice", SessionID: "s3", Amount: 2, At: base.Add(3 * time.Second)},
	}
	for _, g := range grants {
		if _, err := store.RecordReward(ctx, g); err != nil {
			t.Fatalf("RecordReward() failed: %v", err)
		}
	}

	tests := []struct {
		account  string
		expected int64
	}{
		{"alice", 4},
		{"bob", 5},
		{"nobody", 0},
	}
	for _, tc := range tests {
		total, err := store.TotalRewards(tc.account)
		if err != nil {
			t.Fatalf("TotalRewards(%q) failed: %v", tc.account, err)
		}
		if total != tc.expected {
			t.Errorf("TotalRewards(%q) = %d, expected %d", tc.account, total, tc.expected)
		}
	}

	session, err := store.SessionRewards("s1")
	if err != nil {
		t.Fatalf("SessionRewards() failed: %v", err)
	}
	if session != 2 {
		t.Errorf("SessionRewards(s1) = %d, expected 2", session)
	}
}

func TestStoreRecentRewards(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := range 5 {
		account := "alice"
		if i%2 == 1 {
			account = "bob"
		}
		g := reward.Grant{Account: account, Amount: i + 1, At: base.Add(time.Duration(i) * time.Minute)}
		if _, err := store.RecordReward(ctx, g); err != nil {
			t.Fatalf("RecordReward() failed: %v", err)
		}
	}

	all, err := store.RecentRewards("", 3)
	if err != nil {
		t.Fatalf("RecentRewards() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(all))
	}
	if all[0].Amount != 5 || all[2].Amount != 3 {
		t.Errorf("Expected newest first, got amounts %d..%d", all[0].Amount, all[2].Amount)
	}
	if !all[0].CreatedAt.Equal(base.Add(4 * time.Minute)) {
		t.Errorf("CreatedAt = %v, expected %v", all[0].CreatedAt, base.Add(4*time.Minute))
	}

	bob, err := store.RecentRewards("bob", 10)
	if err != nil {
		t.Fatalf("RecentRewards(bob) failed: %v", err)
	}
	if len(bob) != 2 {
		t.Errorf("Expected 2 entries for bob, got %d", len(bob))
	}
	for _, e := range bob {
		if e.Account != "bob" {
			t.Errorf("RecentRewards(bob) returned entry for %q", e.Account)
		}
	}
}

func TestStoreTopAccounts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for account, amounts := range map[string][]int{
		"alice": {1, 1, 1},
		"bob":   {10},
		"carol": {2, 2},
	} {
		for _, a := range amounts {
			if _, err := store.RecordReward(ctx, reward.Grant{Account: account, Amount: a}); err != nil {
				t.Fatalf("RecordReward() failed: %v", err)
			}
		}
	}

	top, err := store.TopAccounts(2)
	if err != nil {
		t.Fatalf("TopAccounts() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("Expected 2 accounts, got %d", len(top))
	}
	if top[0].Account != "bob" || top[0].Total != 10 || top[0].Grants != 1 {
		t.Errorf("First account = %+v, expected bob with 10", top[0])
	}
	if top[1].Account != "carol" || top[1].Total != 4 {
		t.Errorf("Second account = %+v, expected carol with 4", top[1])
	}
}

func TestStoreClearRewards(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.RecordReward(ctx, reward.Grant{Account: "alice", Amount: 1})
	store.RecordReward(ctx, reward.Grant{Account: "bob", Amount: 1})

	if err := store.ClearRewards("alice"); err != nil {
		t.Fatalf("ClearRewards() failed: %v", err)
	}

	alice, _ := store.TotalRewards("alice")
	bob, _ := store.TotalRewards("bob")
	if alice != 0 || bob != 1 {
		t.Errorf("After clear: alice=%d bob=%d, expected 0 and 1", alice, bob)
	}
}

func TestStoreAsDispatcherLedger(t *testing.T) {
	store := openTestStore(t)

	d := reward.NewDispatcher(reward.Options{Account: "alice", SessionID: "s9", Ledger: store})
	d.Start(context.Background())
	for range 4 {
		d.OnObstaclePassed(true)
	}
	d.Stop()

	total, err := store.SessionRewards("s9")
	if err != nil {
		t.Fatalf("SessionRewards() failed: %v", err)
	}
	if total != 4 {
		t.Errorf("SessionRewards(s9) = %d, expected 4", total)
	}
}
