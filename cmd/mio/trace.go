package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mio-arcade/internal/engine"
	"github.com/vovakirdan/mio-arcade/internal/trace"
)

var (
	flagTraceObjects bool
	flagTraceFrom    int
	flagTraceTo      int
)

var traceCmd = &cobra.Command{
	Use:   "trace <file>",
	Short: "Print a recorded frame trace",
	Long: `Reads a frame trace written by 'mio run --trace' or by play with tracing
enabled. Frames with events are printed; --objects prints every frame with
its object positions.

Examples:
  mio trace jump.jsonl.zst
  mio trace jump.jsonl.zst --objects --from 100 --to 120`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().BoolVar(&flagTraceObjects, "objects", false, "Print object positions of every frame")
	traceCmd.Flags().IntVar(&flagTraceFrom, "from", 0, "First frame to print")
	traceCmd.Flags().IntVar(&flagTraceTo, "to", 0, "Last frame to print (0 = end)")
}

func runTrace(_ *cobra.Command, args []string) error {
	r, err := trace.Open(args[0])
	if err != nil {
		return err
	}
	defer r.Close()

	h := r.Header()
	fmt.Printf("%s  (%s, seed %d, %s)\n", h.Game, h.Length, h.Seed, h.Started.Format("2006-01-02 15:04:05"))
	fmt.Println()

	frames := 0
	last := engine.Snapshot{}
	for {
		fr, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		frames++
		last = fr.Snapshot
		if fr.Frame < flagTraceFrom || (flagTraceTo > 0 && fr.Frame > flagTraceTo) {
			continue
		}
		if len(fr.Events) == 0 && !flagTraceObjects {
			continue
		}

		names := make([]string, len(fr.Events))
		for i, ev := range fr.Events {
			names[i] = ev.Kind.String()
			switch ev.Kind {
			case engine.EventSound:
				names[i] += ":" + ev.Sound
			case engine.EventScreenEffect:
				names[i] += ":" + ev.Effect
			}
		}
		fmt.Printf("%6d  %-8s %s\n", fr.Frame, fr.Status, strings.Join(names, " "))
		if flagTraceObjects {
			for _, o := range fr.Objects {
				fmt.Printf("        [%d] (%6.1f, %6.1f) art %d frame %d %s %s\n",
					o.Index, o.X, o.Y, o.Art, o.FrameID, o.Switch, o.Travel)
			}
		}
	}

	fmt.Println()
	fmt.Printf("%d frames, final status %s\n", frames, last.Status)
	return nil
}
