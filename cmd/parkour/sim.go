package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/parkour/internal/audio"
	"github.com/vovakirdan/parkour/internal/core"
	"github.com/vovakirdan/parkour/internal/games/runner"
	"github.com/vovakirdan/parkour/internal/replay"
	"github.com/vovakirdan/parkour/internal/settings"
)

var (
	flagSimSeconds   float64
	flagSimDT        float64
	flagSimAutopilot bool
	flagSimTapRate   float64
	flagSimRecord    bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Simulate a run without a screen",
	Long: `Run the simulation headless at a fixed frame time and print the result.

Input comes from an autopilot that jumps at the next obstacle, or from random
taps. With --record the run is stored and can be checked with
'parkour replays verify'.

Examples:
  parkour sim
  parkour sim hold --autopilot --seconds 120
  parkour sim --seed 42 --taps 0.05 --record`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 60, "Simulated seconds before stopping")
	simCmd.Flags().Float64Var(&flagSimDT, "dt", 1.0/60, "Frame time in seconds")
	simCmd.Flags().BoolVar(&flagSimAutopilot, "autopilot", false, "Jump at obstacles instead of tapping randomly")
	simCmd.Flags().Float64Var(&flagSimTapRate, "taps", 0.02, "Chance of a random tap per frame")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Store the run as a replay")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// pilot decides one frame of input.
type pilot interface {
	Next(w *runner.World, dt float64) (press, release bool)
}

// tapper presses at random and lets go on the next frame.
type tapper struct {
	rng  *rand.Rand
	rate float64
	down bool
}

func (t *tapper) Next(_ *runner.World, _ float64) (press, release bool) {
	if t.down {
		t.down = false
		return false, true
	}
	if t.rng.Float64() < t.rate {
		t.down = true
		return true, false
	}
	return false, false
}

// autopilot jumps when a box or anvil on its path comes within reach and
// holds the button for a fixed time.
type autopilot struct {
	hold, held float64
	lead       float64 // Seconds of look-ahead
}

func (a *autopilot) Next(w *runner.World, dt float64) (press, release bool) {
	actor := w.Actor()
	if actor.Button().State == runner.ButtonPressed {
		a.held += dt
		if a.held >= a.hold {
			return false, true
		}
		return false, false
	}

	if actor.Mode() != runner.ModeRunning && actor.Mode() != runner.ModeCrouch {
		return false, false
	}

	hit := actor.Hitbox()
	reach := hit.Right() + w.Speed()*a.lead
	for _, o := range w.Field().Objects() {
		if o.Kind == runner.KindCoin || o.Bounds().Right() < hit.X {
			continue
		}
		if o.X > reach {
			break
		}
		// Only what blocks the actor's current height matters
		if o.Y < hit.Top() && o.Bounds().Top() > hit.Y {
			a.held = 0
			return true, false
		}
	}
	return false, false
}

func runSim(_ *cobra.Command, args []string) error {
	if !(flagSimDT > 0) || flagSimSeconds <= 0 {
		return fmt.Errorf("--dt and --seconds must be positive")
	}
	prefs := settings.Defaults()
	if err := applyGameFlags(prefs); err != nil {
		return err
	}

	name := prefs.Variant
	if len(args) == 1 {
		name = args[0]
	}
	game, err := resolveGame(name)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game.SetAudioSink(audio.Nop{})
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: flagFPS, Seed: seed})
	if err := game.Err(); err != nil {
		logger.Warn("config rejected, using defaults", "err", err)
	}

	var session *replay.Session
	if flagSimRecord {
		store := openStore()
		if store != nil {
			defer store.Close()
			session = replay.NewSession(store, game)
			session.Start()
		}
	}

	var p pilot = &tapper{rng: rand.New(rand.NewSource(seed)), rate: flagSimTapRate}
	if flagSimAutopilot {
		p = &autopilot{hold: 0.15, lead: 0.3}
	}

	w := game.World()
	in := core.NewInputFrame()
	frames := int(flagSimSeconds / flagSimDT)
	for i := 0; i < frames && !w.GameOver(); i++ {
		in.Clear()
		press, release := p.Next(w, flagSimDT)
		if press {
			in.Set(core.ActionJump)
		}
		if release {
			in.Set(core.ActionRelease)
		}
		game.Step(in, flagSimDT)
	}

	snap := w.Snapshot()
	outcome := "survived"
	if w.GameOver() {
		outcome = "crashed"
	}
	fmt.Printf("%s (seed %d): %s after %.1fs\n", game.ID(), seed, outcome, snap.Elapsed)
	fmt.Printf("  distance  %.0f px\n", snap.Distance)
	fmt.Printf("  coins     %d\n", snap.Coins)
	fmt.Printf("  speed     %.0f px/s\n", snap.Speed)
	fmt.Printf("  patterns  %d\n", snap.Patterns)

	if session != nil {
		id, err := session.Finish()
		if err != nil {
			return err
		}
		fmt.Printf("  replay    #%d\n", id)
	}
	return nil
}
