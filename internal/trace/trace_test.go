package trace

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/mio-arcade/internal/core"
	"github.com/vovakirdan/mio-arcade/internal/engine"
	"github.com/vovakirdan/mio-arcade/internal/mio"
)

func testScript() *mio.GameScript {
	s := &mio.GameScript{Name: "TRACE", Length: mio.LengthShort}
	def := &mio.ObjectDefinition{Size: 16}
	def.Art[0] = &mio.ArtDefinition{Bank: []int{0}}
	def.Program.Start.Location = mio.StartAtPosition{Position: mio.Point{X: 40, Y: 40}}
	def.Program.Instructions[0] = &mio.Instruction{
		Triggers: [mio.TriggerCount]mio.Trigger{mio.TimeExact{When: 0}},
		Actions: [mio.ActionCount]mio.Action{
			mio.SoundEffect{Effect: 8},
			mio.GoStraight{Direction: mio.Direction{Kind: mio.DirectionSpecific, Compass: mio.South}, Speed: mio.SpeedSlow},
		},
	}
	s.Objects[0] = def
	return s
}

func TestRecordAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plays", "run"+Ext)
	w, err := Create(path, Header{Game: "TRACE", Length: "Short", Seed: 9})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	p := engine.NewPlayer(engine.Config{Seed: 9})
	id := p.Load(testScript())
	rec := Record(w, p)
	for range 10 {
		p.Tick(id, 20*time.Millisecond, core.Pointer{})
	}
	if err := rec.Err(); err != nil {
		t.Fatalf("recorder error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer r.Close()

	if h := r.Header(); h.Game != "TRACE" || h.Seed != 9 {
		t.Errorf("unexpected header %+v", h)
	}

	var frames []Frame
	for {
		fr, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next() failed: %v", err)
		}
		frames = append(frames, fr)
	}
	if len(frames) != 10 {
		t.Fatalf("expected 10 frames, got %d", len(frames))
	}
	for i, fr := range frames {
		if fr.Frame != i+1 {
			t.Errorf("frame %d: recorded frame number %d", i, fr.Frame)
		}
	}
	first := frames[0]
	if len(first.Events) != 1 || first.Events[0].Kind != engine.EventSound || first.Events[0].Sound != "correct" {
		t.Errorf("expected one sound event on the first frame, got %+v", first.Events)
	}
	if got := frames[9].Objects[0].Y; got != 50 {
		t.Errorf("expected object at y=50 after 10 frames, got %v", got)
	}
}

func TestOpenRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(filepath.Join(dir, "missing"+Ext)); err == nil {
		t.Error("expected error for missing file")
	}

	plain := filepath.Join(dir, "plain"+Ext)
	if err := os.WriteFile(plain, []byte("not zstd"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(plain); err == nil {
		t.Error("expected error for uncompressed file")
	}
}

func TestWriteAfterClose(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "x"+Ext), Header{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := w.WriteFrame(Frame{}); err == nil {
		t.Error("expected error writing to a closed trace")
	}
}
