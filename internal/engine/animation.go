package engine

import "github.com/vovakirdan/mio-arcade/internal/mio"

// animate counts down every playing art and advances its frame. A PlayOnce
// art that wraps around holds on its last image and reports Finished for
// exactly one frame.
func (e *Engine) animate() {
	for _, o := range e.objects {
		if o == nil {
			continue
		}
		art := e.art(o, o.Art.Index)
		if art == nil {
			continue
		}
		s := &o.Art
		next := (s.Animation + 1) % len(art.Bank)
		s.Finished = false

		if s.Style == mio.StyleHold {
			continue
		}
		s.Countdown--
		if s.Countdown > 0 {
			continue
		}

		if next == 0 && s.Style == mio.StylePlayOnce {
			s.Style = mio.StyleHold
			s.Finished = true
			continue
		}
		s.Animation = next
		s.FrameID = art.Bank[next]
		s.Countdown = framesFor(s.Speed)
	}
}
