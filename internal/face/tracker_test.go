package face

import (
	"math"
	"testing"

	"github.com/ayusman/abhinaya/internal/detector"
)

func TestNewTracker_Zeroed(t *testing.T) {
	tr := NewTracker(DefaultThresholds())

	if tr.Counts() != (Counts{}) {
		t.Errorf("Counts() = %+v, want zero", tr.Counts())
	}
	if tr.EyeClosed() || tr.MouthOpen() {
		t.Error("latches should start released")
	}
}

func TestTracker_Blinks(t *testing.T) {
	tests := []struct {
		name   string
		ratios []float64
		want   int
	}{
		{name: "two closed edges", ratios: []float64{0.3, 0.2, 0.2, 0.3, 0.15}, want: 2},
		{name: "held closed counts once", ratios: []float64{0.1, 0.1, 0.1, 0.1}, want: 1},
		{name: "always open", ratios: []float64{0.3, 0.4, 0.35}, want: 0},
		{name: "threshold is open", ratios: []float64{0.25, 0.25}, want: 0},
		{name: "alternating", ratios: []float64{0.2, 0.3, 0.2, 0.3, 0.2}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(DefaultThresholds())

			var counts Counts
			for _, r := range tt.ratios {
				counts = tr.Update(r, 0)
			}

			if counts.Blinks != tt.want {
				t.Errorf("Blinks = %d, want %d", counts.Blinks, tt.want)
			}
			if counts.MouthOpens != 0 {
				t.Errorf("MouthOpens = %d, want 0", counts.MouthOpens)
			}
		})
	}
}

func TestTracker_MouthOpens(t *testing.T) {
	tests := []struct {
		name      string
		apertures []float64
		want      int
	}{
		{name: "two open edges", apertures: []float64{0.01, 0.06, 0.06, 0.01, 0.07}, want: 2},
		{name: "threshold is closed", apertures: []float64{0.05, 0.05}, want: 0},
		{name: "held open counts once", apertures: []float64{0.08, 0.09, 0.1}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(DefaultThresholds())

			var counts Counts
			for _, a := range tt.apertures {
				counts = tr.Update(0.3, a)
			}

			if counts.MouthOpens != tt.want {
				t.Errorf("MouthOpens = %d, want %d", counts.MouthOpens, tt.want)
			}
			if counts.Blinks != 0 {
				t.Errorf("Blinks = %d, want 0", counts.Blinks)
			}
		})
	}
}

func TestTracker_CountersNeverDecrease(t *testing.T) {
	tr := NewTracker(DefaultThresholds())

	ratios := []float64{0.3, 0.1, 0.3, 0.2, 0.2, 0.5, 0.0, 0.3}
	apertures := []float64{0.0, 0.1, 0.0, 0.2, 0.03, 0.06, 0.06, 0.01}

	var prev Counts
	for i := range ratios {
		got := tr.Update(ratios[i], apertures[i])
		if got.Blinks < prev.Blinks || got.MouthOpens < prev.MouthOpens {
			t.Fatalf("frame %d: counts went from %+v to %+v", i, prev, got)
		}
		prev = got
	}
}

func TestTracker_CustomThresholds(t *testing.T) {
	tr := NewTracker(Thresholds{BlinkRatio: 0.1, MouthOpen: 0.2})

	tr.Update(0.2, 0.1)
	if c := tr.Counts(); c.Blinks != 0 || c.MouthOpens != 0 {
		t.Errorf("Counts() = %+v, want zero under stricter thresholds", c)
	}

	tr.Update(0.05, 0.25)
	if c := tr.Counts(); c.Blinks != 1 || c.MouthOpens != 1 {
		t.Errorf("Counts() = %+v, want one of each", c)
	}
}

func TestTracker_Observe(t *testing.T) {
	tr := NewTracker(DefaultThresholds())

	m, counts := tr.Observe(detector.FacePose(0.1, 0.08))
	if math.Abs(m.EyeRatio()-0.1) > 1e-9 {
		t.Errorf("EyeRatio() = %f, want 0.1", m.EyeRatio())
	}
	if counts.Blinks != 1 || counts.MouthOpens != 1 {
		t.Errorf("counts = %+v, want one of each", counts)
	}
	if !tr.EyeClosed() || !tr.MouthOpen() {
		t.Error("latches should be held")
	}

	tr.Observe(detector.FacePose(0.3, 0.01))
	if tr.EyeClosed() || tr.MouthOpen() {
		t.Error("latches should be released")
	}
}
