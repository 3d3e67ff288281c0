// Package registry lets games register themselves from init so that the
// CLI, the menus and the replay tooling can find them by ID.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/parkour/internal/core"
)

// ErrUnknownGame is returned by Create for an ID nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is what a frontend drives. Implementations hold pure simulation
// state; input mapping, timing and drawing belong to the frontend.
type Game interface {
	// ID is the stable identifier stored with recorded runs, e.g. "parkour_hold".
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new run. It is called before the first Step and again
	// on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the run by dt seconds of wall-clock time.
	Step(in core.InputFrame, dt float64) core.StepResult

	// Render projects the run onto a cleared terminal screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Describer is implemented by games that can summarize themselves in a line.
type Describer interface {
	Description() string
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
	order   []string // Registration order, which is presentation order
)

// Register adds a game. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}
	entries[id] = entry{factory: f, info: info}
	order = append(order, id)
}

// List returns every registered game in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(order))
	for _, id := range order {
		out = append(out, entries[id].info)
	}
	return out
}

// Lookup returns the metadata of one game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
