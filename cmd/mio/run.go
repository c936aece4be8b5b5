package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/engine"
	"github.com/vovakirdan/mio-arcade/internal/storage"
	"github.com/vovakirdan/mio-arcade/internal/trace"
)

var (
	flagRunSeed     int64
	flagRunFrames   int
	flagRunTrace    string
	flagRunTaps     []string
	flagRunEvents   bool
	flagRunInfinite bool
	flagRunRecord   bool
)

var runCmd = &cobra.Command{
	Use:   "run <save>",
	Short: "Simulate a save without a terminal",
	Long: `Runs a save headlessly at a fixed clock until it ends, then prints the
outcome. Taps are scripted with --tap frame[@x,y]; without a position the
centre of the canvas is tapped.

Examples:
  mio run jump --seed 42
  mio run jump --tap 30 --tap 90@40,100 --events
  mio run jump --seed 42 --trace jump.jsonl.zst`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Int64Var(&flagRunSeed, "seed", 0, "RNG seed (0 = random based on time)")
	runCmd.Flags().IntVar(&flagRunFrames, "frames", 10000, "Stop after this many frames")
	runCmd.Flags().StringVar(&flagRunTrace, "trace", "", "Write a frame trace to this file")
	runCmd.Flags().StringSliceVar(&flagRunTaps, "tap", nil, "Tap at frame[@x,y]")
	runCmd.Flags().BoolVar(&flagRunEvents, "events", false, "Print every event except frame updates")
	runCmd.Flags().BoolVar(&flagRunInfinite, "infinite", false, "Keep playing past the timer")
	runCmd.Flags().BoolVar(&flagRunRecord, "record", false, "Store the outcome with the results")
}

// tap is a scripted press at a frame.
type tap struct {
	frame, x, y int
}

func parseTap(s string) (tap, error) {
	t := tap{x: engine.CanvasWidth / 2, y: engine.CanvasHeight / 2}
	frame, pos, hasPos := strings.Cut(s, "@")
	n, err := strconv.Atoi(frame)
	if err != nil || n < 0 {
		return tap{}, fmt.Errorf("invalid tap frame %q", s)
	}
	t.frame = n
	if !hasPos {
		return t, nil
	}
	xs, ys, ok := strings.Cut(pos, ",")
	if !ok {
		return tap{}, fmt.Errorf("invalid tap position %q", s)
	}
	if t.x, err = strconv.Atoi(xs); err != nil {
		return tap{}, fmt.Errorf("invalid tap position %q", s)
	}
	if t.y, err = strconv.Atoi(ys); err != nil {
		return tap{}, fmt.Errorf("invalid tap position %q", s)
	}
	return t, nil
}

func runRun(_ *cobra.Command, args []string) error {
	taps := make(map[int]tap)
	for _, s := range flagRunTaps {
		t, err := parseTap(s)
		if err != nil {
			return err
		}
		taps[t.frame] = t
	}

	store, err := openStore(false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	game, err := openLibrary(store, newLogger("mio")).Resolve(args[0])
	if err != nil {
		return err
	}

	seed := flagRunSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ecfg := cfg.EngineConfig()
	ecfg.Seed = seed
	ecfg.Infinite = ecfg.Infinite || flagRunInfinite
	ecfg.Logger = newLogger("engine")
	player := engine.NewPlayer(ecfg)

	var won, ended bool
	var frames int
	player.Listen(func(ev engine.Event) {
		switch ev.Kind {
		case engine.EventWon:
			won = true
		case engine.EventEnded:
			ended = true
			frames = ev.Frame
		case engine.EventFrameUpdate:
			frames = ev.Frame
			return
		}
		if flagRunEvents {
			printEvent(ev)
		}
	})

	player.Load(game.Script)

	var w *trace.Writer
	var rec *trace.Recorder
	if flagRunTrace != "" {
		w, err = trace.Create(flagRunTrace, trace.Header{
			Game:     game.Title,
			SaveHash: game.Hash,
			Length:   game.Script.Length.String(),
			Seed:     seed,
			Started:  time.Now(),
		})
		if err != nil {
			return err
		}
		rec = trace.Record(w, player)
	}

	// One fixed delta per tick steps exactly one frame.
	rate := ecfg.FrameRate
	if rate <= 0 {
		rate = engine.DefaultConfig().FrameRate
	}
	delta := time.Second / time.Duration(rate)
	var tracker core.PointerTracker
	session := player.Session()
	for !ended && frames < flagRunFrames {
		next := tracker
		if t, ok := taps[player.Engine().Frame()]; ok {
			next.Observe(core.PointerSample{X: t.x, Y: t.y, Down: true})
			next.Observe(core.PointerSample{X: t.x, Y: t.y})
		}
		if player.Tick(session, delta, next.Frame()) {
			tracker = next
		}
	}

	if w != nil {
		if err := rec.Err(); err != nil {
			w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
	}

	outcome := "lost"
	if won {
		outcome = "won"
	}
	if !ended {
		outcome = "unfinished"
	}
	fmt.Printf("%s: %s after %d frames (seed %d)\n", game.Title, outcome, frames, seed)

	if flagRunRecord && ended && store != nil {
		if _, err := store.SaveResult(storage.Result{
			SaveHash: game.Hash,
			GameName: game.Title,
			Outcome:  outcome,
			Frames:   frames,
			Seed:     seed,
		}); err != nil {
			return err
		}
	}
	return nil
}

func printEvent(ev engine.Event) {
	detail := ""
	switch ev.Kind {
	case engine.EventSound:
		detail = fmt.Sprintf(" %s (object %d)", ev.Sound, ev.Object)
	case engine.EventScreenEffect:
		detail = " " + ev.Effect
	}
	fmt.Printf("%6d  %s%s\n", ev.Frame, ev.Kind, detail)
}
