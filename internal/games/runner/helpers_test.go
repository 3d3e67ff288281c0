package runner

import (
	"math/rand"

	"github.com/vovakirdan/parkour/internal/config"
)

const groundY = 60.0

type recordingAppearance struct {
	ids []AnimationID
}

func (r *recordingAppearance) SetAppearance(id AnimationID) {
	r.ids = append(r.ids, id)
}

func (r *recordingAppearance) last() AnimationID {
	if len(r.ids) == 0 {
		return -1
	}
	return r.ids[len(r.ids)-1]
}

func (r *recordingAppearance) count(id AnimationID) int {
	n := 0
	for _, v := range r.ids {
		if v == id {
			n++
		}
	}
	return n
}

type recordingAudio struct {
	effects []EffectID
}

func (r *recordingAudio) PlayEffect(id EffectID) {
	r.effects = append(r.effects, id)
}

func (r *recordingAudio) count(id EffectID) int {
	n := 0
	for _, v := range r.effects {
		if v == id {
			n++
		}
	}
	return n
}

type recordingScore struct {
	distances []int
	pickups   int
}

func (r *recordingScore) ReportDistance(px int) {
	r.distances = append(r.distances, px)
}

func (r *recordingScore) ReportPickup() {
	r.pickups++
}

// fixedSource always hands out the same patterns.
type fixedSource struct {
	intro, random *Pattern
	randomCalls   int
}

func (s *fixedSource) IntroPattern() *Pattern {
	return s.intro
}

func (s *fixedSource) RandomPattern() *Pattern {
	s.randomCalls++
	return s.random
}

func testConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Speed.Acceleration = 0
	return cfg
}

func newTestActor(cfg config.RunnerConfig) (*ActorController, *recordingAppearance, *recordingAudio) {
	app := &recordingAppearance{}
	audio := &recordingAudio{}
	return NewActorController(cfg, app, audio), app, audio
}

func testCatalog(seed int64) *Catalog {
	return BuiltinCatalog(rand.New(rand.NewSource(seed)))
}
