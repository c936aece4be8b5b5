package engine

import "github.com/vovakirdan/mio-arcade/internal/mio"

// apply runs the collected actions in object and instruction order.
func (e *Engine) apply(fired []firing) {
	for _, f := range fired {
		e.applyAction(e.objects[f.object], f.action)
	}
}

func (e *Engine) applyAction(o *Object, action mio.Action) {
	switch a := action.(type) {
	case mio.TravelAction:
		e.pushTravel(o, a)
	case mio.SetSwitch:
		if a.To == mio.SwitchOff {
			o.NextSwitch = mio.SwitchTurnsOff
		} else {
			o.NextSwitch = mio.SwitchTurnsOn
		}
	case mio.Lose:
		e.lose()
	case mio.StopPlaying:
		o.Art.Style = mio.StyleHold
	case mio.ChangeArt:
		e.changeArt(o, a)
	case mio.SoundEffect:
		e.emitSound(o.Index, a)
	case mio.ScreenEffect:
		if a.Effect == mio.EffectFreeze {
			e.frozen = true
		}
		e.emit(Event{Kind: EventScreenEffect, Object: o.Index, Effect: a.Effect.String()})
	default:
		e.log.Warn("unhandled action", "object", o.Index, "action", mio.ActionName(action))
	}
}

// lose forces a loss unless the game already has an outcome.
func (e *Engine) lose() {
	if e.status != mio.ConditionNotYetWon {
		return
	}
	e.status = mio.ConditionLoss
	e.emit(Event{Kind: EventLost})
}

// changeArt restarts playback on another art bank. A bank with a single
// frame always holds.
func (e *Engine) changeArt(o *Object, a mio.ChangeArt) {
	art := e.art(o, a.Index)
	if art == nil {
		e.log.Debug("change to inactive art ignored", "object", o.Index, "art", a.Index)
		return
	}
	o.Art = ArtState{
		Index:     a.Index,
		FrameID:   art.Bank[0],
		Style:     a.Style,
		Speed:     a.Speed,
		Countdown: framesFor(a.Speed),
	}
	if len(art.Bank) == 1 {
		o.Art.Style = mio.StyleHold
	}
}
