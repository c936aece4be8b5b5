package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mio-arcade/internal/config"
	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/platform/tui"
	"github.com/vovakirdan/mio-arcade/internal/storage"
)

var (
	flagPlaySeed     int64
	flagPlayInfinite bool
	flagPlayTrace    bool
)

var playCmd = &cobra.Command{
	Use:   "play [save]",
	Short: "Play a save, or pick one from a menu",
	Long: `Plays the given save in the terminal. Without a save a menu lists the
library; after a game ends you return to the menu.

The save is a file path, a library ID or a prefix of an imported hash.

Controls:
  Mouse          - Aim and tap
  Arrows/WASD    - Move the cursor
  Space/Enter    - Tap
  R              - Replay (after the game ended)
  B/Esc          - Back to the menu
  Tab            - Results (in the menu)
  Q/Ctrl+C       - Quit

Examples:
  mio play
  mio play ./games/jump.bin
  mio play jump --seed 42 --trace`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagPlaySeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().BoolVar(&flagPlayInfinite, "infinite", false, "Keep playing past the timer")
	playCmd.Flags().BoolVar(&flagPlayTrace, "trace", false, "Record a frame trace of every play")
}

func runPlay(_ *cobra.Command, args []string) error {
	store, err := openStore(false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	lib := openLibrary(store, newLogger("mio"))

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rcfg := core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		FrameRate: cfg.EngineConfig().FrameRate,
		Seed:      flagPlaySeed,
	}
	if rcfg.FrameRate <= 0 {
		rcfg.FrameRate = core.DefaultConfig().FrameRate
	}

	opts := playOptions(store)
	if len(args) == 1 {
		game, err := lib.Resolve(args[0])
		if err != nil {
			return err
		}
		return tui.Run(game, opts, rcfg)
	}
	return menuLoop(lib, store, opts, rcfg)
}

// playOptions wires local play. Engine diagnostics are dropped since they
// would draw over the terminal.
func playOptions(store *storage.Store) tui.Options {
	ecfg := cfg.EngineConfig()
	ecfg.Infinite = ecfg.Infinite || flagPlayInfinite
	opts := tui.Options{Engine: ecfg, Store: store}
	if cfg.Trace.Enabled || flagPlayTrace {
		opts.TraceDir = config.ExpandPath(cfg.Trace.Dir)
	}
	return opts
}

func menuLoop(lib *library, store *storage.Store, opts tui.Options, rcfg core.RuntimeConfig) error {
	for {
		res, err := tui.RunMenu(lib, rcfg)
		if err != nil {
			return err
		}
		rcfg = res.Config
		if res.OpenErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", res.OpenErr)
			time.Sleep(time.Second)
			continue
		}
		if res.Quit {
			return nil
		}

		if res.WantsResults {
			goBack, err := tui.RunResults(store, rcfg.ScreenW, rcfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		if flagPlaySeed == 0 {
			rcfg.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(res.Game, opts, rcfg); err != nil {
			return err
		}
	}
}
