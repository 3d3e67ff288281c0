package replay

import (
	"github.com/vovakirdan/parkour/internal/games/runner"
	"github.com/vovakirdan/parkour/internal/storage"
)

// Session records consecutive runs of one game into a store. Frontends call
// Start after every Reset and Finish once the run is over.
type Session struct {
	store *storage.Store
	game  *runner.Game
	rec   *Recorder
}

// NewSession ties a game to a store. A nil store makes every call a no-op.
func NewSession(store *storage.Store, game *runner.Game) *Session {
	return &Session{store: store, game: game}
}

// Start begins recording the game's current run.
func (s *Session) Start() {
	if s.store == nil {
		return
	}
	s.rec = NewRecorder(s.game.ID(), s.game.Seed(), s.game.Config())
	s.game.SetFrameObserver(s.rec)
}

// Frames returns the number of frames recorded for the current run.
func (s *Session) Frames() int {
	if s.rec == nil {
		return 0
	}
	return s.rec.Len()
}

// Finish saves the current run and stops recording. It returns 0 when there
// was nothing to save.
func (s *Session) Finish() (int64, error) {
	rec := s.rec
	s.rec = nil
	s.game.SetFrameObserver(nil)
	if rec == nil || rec.Len() == 0 {
		return 0, nil
	}
	return Save(s.store, rec.Finish(s.game.World().Snapshot()))
}
