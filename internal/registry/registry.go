// Package registry provides a registry of actor skins (playable characters).
// Built-in skins register in init(); the platform looks them up by ID
// without hardcoded dependencies on the list.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/skyflap/internal/core"
)

// ErrUnknownSkin is returned by Get for IDs that were never registered.
var ErrUnknownSkin = errors.New("registry: unknown skin")

// Skin describes how the actor is drawn.
type Skin struct {
	ID    string     // Stable identifier used by flags and config (e.g., "hippo")
	Name  string     // Display name (e.g., "Sudeng")
	Glyph rune       // Cell used to draw the actor body
	Color core.Color // Body color
	Order int        // Position in the selection carousel
}

var (
	skins = make(map[string]Skin)
	mu    sync.RWMutex
)

// DefaultSkinID is selected when nothing else is requested.
const DefaultSkinID = "hippo"

func init() {
	Register(Skin{ID: "hippo", Name: "Sudeng", Glyph: '▓', Color: core.ColorMagenta, Order: 0})
	Register(Skin{ID: "pigu", Name: "Pigu", Glyph: '▒', Color: core.ColorCyan, Order: 1})
	Register(Skin{ID: "blub", Name: "Blub", Glyph: '●', Color: core.ColorBlue, Order: 2})
	Register(Skin{ID: "miu", Name: "Miu", Glyph: '◆', Color: core.ColorOrange, Order: 3})
}

// Register adds a skin to the registry.
// Panics if a skin with the same ID is already registered.
func Register(s Skin) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := skins[s.ID]; exists {
		panic(fmt.Sprintf("registry: skin %q already registered", s.ID))
	}
	skins[s.ID] = s
}

// List returns all registered skins in carousel order.
func List() []Skin {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Skin, 0, len(skins))
	for _, s := range skins {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Get returns the skin with the given ID.
func Get(id string) (Skin, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := skins[id]
	if !ok {
		return Skin{}, fmt.Errorf("%w %q", ErrUnknownSkin, id)
	}
	return s, nil
}

// Exists checks if a skin with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := skins[id]
	return ok
}

// Default returns the default skin.
func Default() Skin {
	s, err := Get(DefaultSkinID)
	if err != nil {
		return Skin{ID: DefaultSkinID, Name: "Sudeng", Glyph: '▓', Color: core.ColorMagenta}
	}
	return s
}

// Cycle returns the skin delta steps away from id in carousel order, wrapping around.
// Unknown IDs start from the first skin.
func Cycle(id string, delta int) Skin {
	list := List()
	if len(list) == 0 {
		return Default()
	}
	idx := 0
	for i, s := range list {
		if s.ID == id {
			idx = i
			break
		}
	}
	n := len(list)
	idx = ((idx+delta)%n + n) % n
	return list[idx]
}
