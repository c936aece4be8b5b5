package mio

import "testing"

// rec builds a record from leading bytes; the rest of the slot is zero.
func rec(values ...byte) record {
	data := make([]byte, actionSize)
	copy(data, values)
	return record{data: data}
}

func TestDecodeTriggerTags(t *testing.T) {
	tests := []struct {
		name    string
		r       record
		want    Trigger
		wantErr bool
	}{
		{"empty slot", rec(0x00), nil, false},
		{"tap this object", rec(0x01), TapThisObject{}, false},
		{"tap this object high bits", rec(0x21), TapThisObject{}, false},
		{"tap anywhere", rec(0x11), TapAnywhere{}, false},
		{"tap anywhere high bits", rec(0x31), TapAnywhere{}, false},
		{"time exact", rec(0x02, 0x30, 0x01), TimeExact{When: 19}, false},
		{"time exact end", rec(0x02, 0x30, 0x14), TimeExact{When: TimeEnd}, false},
		{"time random", rec(0x12, 0x20, 0x50, 0x00), TimeRandom{Start: 2, End: 5}, false},
		{"time random to end", rec(0x12, 0x20, 0x00, 0x02), TimeRandom{Start: 2, End: TimeEnd}, false},
		{"contact overlap object", rec(0x13, 0x02), Contact{Kind: ContactOverlap, Index: 8}, false},
		{"contact touch object", rec(0x43), Contact{Kind: ContactTouch, Index: 1}, false},
		{"contact overlap high tag", rec(0xD3, 0x01), Contact{Kind: ContactOverlap, Index: 7}, false},
		{"contact touch location", rec(0x03, 0, 0, 0, 0, 0, 0x04), Contact{Kind: ContactTouch, Location: true}, false},
		{"switch is on", rec(0x04, 0x30, 0x01), SwitchTrigger{Index: 3, When: SwitchIsOn}, false},
		{"switch turns off", rec(0x14, 0x70, 0x02), SwitchTrigger{Index: 7, When: SwitchTurnsOff}, false},
		{"switch bad state", rec(0x04, 0x30, 0x07), SwitchTrigger{Index: 3, When: 7}, true},
		{"specific art", rec(0x05, 0x20), SpecificArt{Index: 2}, false},
		{"finishes playing", rec(0x15), FinishesPlaying{}, false},
		{"game win", rec(0x06), GameConditionTrigger{When: ConditionWin}, false},
		{"game has been won", rec(0x26), GameConditionTrigger{When: ConditionHasBeenWon}, false},
		{"game not yet lost", rec(0x56), GameConditionTrigger{When: ConditionNotYetLost}, false},
		{"game bad condition", rec(0x66), GameConditionTrigger{When: 6}, true},
		{"unknown", rec(0x08), nil, true},
		{"unknown lo five", rec(0x25), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeTrigger(tt.r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestDecodeContactLocationArea(t *testing.T) {
	data := make([]byte, triggerSize)
	data[0] = 0x93
	data[6] = 0x04
	encodeLayout(t, contactAreaMinLayout.X, 12, data[1:4])
	encodeLayout(t, contactAreaMinLayout.Y, 40, data[1:4])
	encodeLayout(t, contactAreaMaxLayout.Y, -8, data[3:7])

	got, err := decodeTrigger(record{data: data})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, ok := got.(Contact)
	if !ok || !c.Location || c.Kind != ContactOverlap {
		t.Fatalf("expected overlap location contact, got %#v", got)
	}
	if c.Area.Min != (Point{12, 40}) {
		t.Errorf("expected min (12,40), got %+v", c.Area.Min)
	}
	if c.Area.Max.Y != -8 {
		t.Errorf("expected max y -8, got %d", c.Area.Max.Y)
	}
}

func TestDecodeActionTags(t *testing.T) {
	offset := Point{-96, -64}
	tests := []struct {
		name    string
		r       record
		want    Action
		wantErr bool
	}{
		{"empty slot", rec(0x00), nil, false},
		{"go straight random", rec(0x01, 0x00, 0, 0, 0x10, 0, 0, 0x80),
			GoStraight{From: From{Kind: FromCurrent}, Direction: Direction{Kind: DirectionRandom}, Speed: SpeedNormal}, false},
		{"go straight east fastest", rec(0x01, 0x00, 0, 0, 0x00, 0, 0, 0x08, 0x01),
			GoStraight{Direction: Direction{Kind: DirectionSpecific, Compass: East}, Speed: SpeedFastest}, false},
		{"go straight from position", rec(0x01, 0x01, 0, 0, 0x10),
			GoStraight{From: From{Kind: FromPosition}, Direction: Direction{Kind: DirectionRandom}}, false},
		{"go straight from object", rec(0x01, 0x35, 0, 0, 0x10),
			GoStraight{From: From{Kind: FromObject, Index: 3, Offset: offset}, Direction: Direction{Kind: DirectionRandom}}, false},
		{"go straight to location", rec(0x01, 0x00, 0, 0, 0x20),
			GoStraight{Direction: Direction{Kind: DirectionLocation}}, false},
		{"go straight bad origin", rec(0x01, 0x02), nil, true},
		{"go straight bad heading", rec(0x01, 0x00, 0, 0, 0, 0, 0, 0x20), nil, true},
		{"stop", rec(0x11), Stop{}, false},
		{"jump to position", rec(0x21, 0x00), JumpToPosition{}, false},
		{"jump ignores unmasked bits", rec(0x21, 0x02), JumpToPosition{}, false},
		{"jump to object", rec(0x21, 0x01, 0x0C), JumpToObject{Index: 3, Offset: offset}, false},
		{"jump to area anywhere", rec(0x21, 0x10), JumpToArea{Overlap: OverlapAnywhere}, false},
		{"jump to area avoid", rec(0x21, 0x30), JumpToArea{Overlap: OverlapAvoid}, false},
		{"swap", rec(0x31, 0x07), Swap{Index: 7}, false},
		{"roam bounce avoid fast", rec(0x41, 0x0B, 0, 0, 0, 0, 0x80, 0x01),
			Roam{Kind: RoamBounce, Overlap: OverlapAvoid, Speed: SpeedFast}, false},
		{"roam wiggle", rec(0x41, 0x00), Roam{Kind: RoamWiggle}, false},
		{"target", rec(0x51, 0x02, 0, 0, 0x03), Target{Index: 2, Offset: offset, Speed: SpeedFast}, false},
		{"target fastest", rec(0x51, 0x00, 0, 0, 0x07), Target{Offset: offset, Speed: SpeedFastest}, false},
		{"switch on", rec(0x02), SetSwitch{To: SwitchOn}, false},
		{"switch off", rec(0x12), SetSwitch{To: SwitchOff}, false},
		{"lose", rec(0x03), Lose{}, false},
		{"lose any high nibble", rec(0x13), Lose{}, false},
		{"change art", rec(0x04, 0x20, 0x10, 0x30), ChangeArt{Index: 2, Style: StylePlayOnce, Speed: SpeedFast}, false},
		{"stop playing", rec(0x14), StopPlaying{}, false},
		{"sound effect", rec(0x25, 0x30), SoundEffect{Effect: 19}, false},
		{"flash", rec(0x06), ScreenEffect{Effect: EffectFlash}, false},
		{"shake", rec(0x16), ScreenEffect{Effect: EffectShake}, false},
		{"confetti", rec(0x26), ScreenEffect{Effect: EffectConfetti}, false},
		{"freeze", rec(0x36), ScreenEffect{Effect: EffectFreeze}, false},
		{"unknown screen effect", rec(0x46), nil, true},
		{"unknown", rec(0x07), nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeAction(tt.r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestSoundEffectName(t *testing.T) {
	if got := (SoundEffect{Effect: 19}).Name(); got != "kick" {
		t.Errorf("expected kick, got %q", got)
	}
	if got := (SoundEffect{Effect: 200}).Name(); got != "" {
		t.Errorf("expected empty name, got %q", got)
	}
	if len(soundNames) != 64 {
		t.Errorf("expected 64 sounds, got %d", len(soundNames))
	}
}
