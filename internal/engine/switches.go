package engine

import "github.com/vovakirdan/mio-arcade/internal/mio"

// settleSwitches moves every switch one step toward its requested state. A
// Turns state always settles first, so no transition is skipped.
func (e *Engine) settleSwitches() {
	for _, o := range e.objects {
		if o == nil {
			continue
		}
		switch o.Switch {
		case mio.SwitchTurnsOn:
			o.Switch = mio.SwitchIsOn
		case mio.SwitchTurnsOff:
			o.Switch = mio.SwitchIsOff
		case mio.SwitchIsOff:
			if o.NextSwitch == mio.SwitchTurnsOn {
				o.Switch = mio.SwitchTurnsOn
			}
		case mio.SwitchIsOn:
			if o.NextSwitch == mio.SwitchTurnsOff {
				o.Switch = mio.SwitchTurnsOff
			}
		}
	}
}
