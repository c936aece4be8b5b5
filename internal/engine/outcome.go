package engine

import "github.com/vovakirdan/mio-arcade/internal/mio"

// resolveWin advances a status set on the previous frame to its HasBeen
// form, then checks the win groups while the game is still open.
func (e *Engine) resolveWin(old mio.GameCondition) {
	switch old {
	case mio.ConditionWin:
		e.status = mio.ConditionHasBeenWon
	case mio.ConditionLoss:
		e.status = mio.ConditionHasBeenLost
	}
	if e.status != mio.ConditionNotYetWon {
		return
	}
	for _, g := range e.script.WinConditions {
		if e.satisfied(g) {
			e.status = mio.ConditionWin
			e.emit(Event{Kind: EventWon})
			return
		}
	}
}

// satisfied reports whether every requirement of a non-empty group holds.
// A requirement on an empty slot never holds.
func (e *Engine) satisfied(g mio.WinConditionGroup) bool {
	if len(g.Requirements) == 0 {
		return false
	}
	for _, r := range g.Requirements {
		o := e.Object(r.Index)
		if o == nil {
			return false
		}
		want := mio.SwitchIsOn
		if r.State == mio.SwitchOff {
			want = mio.SwitchIsOff
		}
		if !switchMatches(want, o.Switch) {
			return false
		}
	}
	return true
}

// checkTimeout loses an open game when its timer runs out.
func (e *Engine) checkTimeout() {
	end, timed := e.EndFrame()
	if !timed || e.frame != end {
		return
	}
	e.lose()
}
