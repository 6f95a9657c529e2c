package tui

import (
	"sort"
	"sync"
	"time"
)

// Player is one connected SSH player.
type Player struct {
	SessionID string
	Account   string
	Remote    string
	Started   time.Time
}

// PlayerRegistry tracks connected players.
// Thread-safe for concurrent access.
type PlayerRegistry struct {
	mu      sync.RWMutex
	players map[string]Player
}

// NewPlayerRegistry creates an empty registry.
func NewPlayerRegistry() *PlayerRegistry {
	return &PlayerRegistry{
		players: make(map[string]Player),
	}
}

// Register adds a player.
func (r *PlayerRegistry) Register(p Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[p.SessionID] = p
}

// Unregister removes a player and returns how long they were connected.
func (r *PlayerRegistry) Unregister(sessionID string) (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[sessionID]
	if !ok {
		return 0, false
	}
	delete(r.players, sessionID)
	return time.Since(p.Started), true
}

// Count returns the number of connected players.
func (r *PlayerRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// List returns connected players, oldest first.
func (r *PlayerRegistry) List() []Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Started.Before(result[j].Started)
	})
	return result
}
