package gesture

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		state FingerState
		want  Label
	}{
		{name: "all extended", state: FingerState{true, true, true, true, true}, want: LabelOpen},
		{name: "none extended", state: FingerState{}, want: LabelClosed},
		{name: "pointing", state: FingerState{false, true, false, false, false}, want: LabelPointing},
		{name: "peace", state: FingerState{false, true, true, false, false}, want: LabelPeace},
		{name: "thumbs up", state: FingerState{true, false, false, false, false}, want: LabelThumbsUp},
		{name: "rock", state: FingerState{true, true, false, false, true}, want: LabelRock},
		{name: "hang loose", state: FingerState{true, false, false, false, true}, want: LabelHangLoose},
		{name: "spock", state: FingerState{false, true, false, false, true}, want: LabelSpock},
		{name: "L shape", state: FingerState{true, true, false, false, false}, want: LabelLShape},
		{name: "three fingers", state: FingerState{true, true, true, false, false}, want: LabelUnknown},
		{name: "superset of peace", state: FingerState{false, true, true, true, false}, want: LabelUnknown},
		{name: "four fingers", state: FingerState{false, true, true, true, true}, want: LabelUnknown},
		{name: "ring only", state: FingerState{false, false, false, true, false}, want: LabelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.state); got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.state, got, tt.want)
			}
		})
	}
}

func TestClassify_Total(t *testing.T) {
	valid := map[Label]bool{
		LabelOpen: true, LabelClosed: true, LabelPointing: true, LabelPeace: true,
		LabelThumbsUp: true, LabelRock: true, LabelHangLoose: true, LabelSpock: true,
		LabelLShape: true, LabelUnknown: true,
	}
	seen := make(map[Label]int)

	for mask := 0; mask < 1<<NumFingers; mask++ {
		var state FingerState
		for i := 0; i < NumFingers; i++ {
			state[i] = mask&(1<<i) != 0
		}

		label := Classify(state)
		if !valid[label] {
			t.Errorf("Classify(%v) returned unexpected label %q", state, label)
		}
		seen[label]++
	}

	// Every named gesture matches exactly one state.
	for label := range valid {
		if label == LabelUnknown {
			continue
		}
		if seen[label] != 1 {
			t.Errorf("label %q matched %d states, want 1", label, seen[label])
		}
	}
	if seen[LabelUnknown] != 32-9 {
		t.Errorf("unknown matched %d states, want %d", seen[LabelUnknown], 32-9)
	}
}

func TestFingerState_Count(t *testing.T) {
	if n := (FingerState{true, false, true, false, true}).Count(); n != 3 {
		t.Errorf("Count() = %d, want 3", n)
	}
}

func TestSceneMessage(t *testing.T) {
	tests := []struct {
		name   string
		labels []Label
		want   string
	}{
		{name: "no hands", labels: nil, want: ""},
		{name: "one pointing", labels: []Label{LabelPointing}, want: MessagePointing},
		{name: "pointing with open", labels: []Label{LabelOpen, LabelPointing}, want: MessagePointing},
		{name: "two open", labels: []Label{LabelOpen, LabelOpen}, want: MessageBothOpen},
		{name: "one open", labels: []Label{LabelOpen}, want: ""},
		{name: "open and closed", labels: []Label{LabelOpen, LabelClosed}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SceneMessage(tt.labels); got != tt.want {
				t.Errorf("SceneMessage(%v) = %q, want %q", tt.labels, got, tt.want)
			}
		})
	}
}
