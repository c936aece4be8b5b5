// Package trace records a play as zstd-compressed JSON lines: one header
// line, then one line per simulated frame with the object snapshot and the
// events raised on that frame.
package trace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/mio-arcade/internal/engine"
)

// Ext is the file extension of trace files.
const Ext = ".jsonl.zst"

// Header identifies the recorded play.
type Header struct {
	Game     string    `json:"game"`
	SaveHash string    `json:"save_hash,omitempty"`
	Length   string    `json:"length"`
	Seed     int64     `json:"seed"`
	Started  time.Time `json:"started"`
}

// Frame is the state at the end of one simulated frame.
type Frame struct {
	engine.Snapshot
	Events []engine.Event `json:"events,omitempty"`
}

// line is the on-disk union of Header and Frame.
type line struct {
	Header *Header `json:"header,omitempty"`
	Frame  *Frame  `json:"frame,omitempty"`
}

// Writer appends trace lines to a file.
type Writer struct {
	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// Create opens path for writing, creating parent directories, and writes h.
func Create(path string, h Header) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("trace: cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace: cannot create %s: %w", path, err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("trace: cannot create encoder: %w", err)
	}
	w := &Writer{f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}
	if err := w.write(line{Header: &h}); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// WriteFrame appends one frame.
func (w *Writer) WriteFrame(fr Frame) error {
	return w.write(line{Frame: &fr})
}

func (w *Writer) write(v line) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return errors.New("trace: writer closed")
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("trace: cannot encode line: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return fmt.Errorf("trace: cannot write: %w", err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("trace: cannot write: %w", err)
	}
	return nil
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var errs []error
	if w.w != nil {
		errs = append(errs, w.w.Flush())
		w.w = nil
	}
	if w.enc != nil {
		errs = append(errs, w.enc.Close())
		w.enc = nil
	}
	if w.f != nil {
		errs = append(errs, w.f.Close())
		w.f = nil
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("trace: cannot close: %w", err)
	}
	return nil
}

// Reader iterates over the frames of a trace file.
type Reader struct {
	f      *os.File
	dec    *zstd.Decoder
	sc     *bufio.Scanner
	header Header
}

// Open reads the header of the trace at path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: cannot open %s: %w", path, err)
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("trace: cannot create decoder: %w", err)
	}
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	r := &Reader{f: f, dec: dec, sc: sc}

	l, err := r.next()
	if err == nil && l.Header == nil {
		err = errors.New("trace: missing header")
	}
	if err != nil {
		r.Close()
		if errors.Is(err, io.EOF) {
			err = errors.New("trace: empty file")
		}
		return nil, err
	}
	r.header = *l.Header
	return r, nil
}

// Header returns the recorded play's header.
func (r *Reader) Header() Header { return r.header }

// Next returns the next frame, or io.EOF at the end of the trace.
func (r *Reader) Next() (Frame, error) {
	for {
		l, err := r.next()
		if err != nil {
			return Frame{}, err
		}
		if l.Frame != nil {
			return *l.Frame, nil
		}
	}
}

func (r *Reader) next() (line, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return line{}, fmt.Errorf("trace: cannot read: %w", err)
		}
		return line{}, io.EOF
	}
	var l line
	if err := json.Unmarshal(r.sc.Bytes(), &l); err != nil {
		return line{}, fmt.Errorf("trace: cannot decode line: %w", err)
	}
	return l, nil
}

// Close releases the file.
func (r *Reader) Close() error {
	r.dec.Close()
	return r.f.Close()
}
