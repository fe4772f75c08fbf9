package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams everything s produces, returning the flattened left
// channel.
func drain(s beep.Streamer) []float64 {
	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			return out
		}
	}
}

func TestOscillatorLengthAndRange(t *testing.T) {
	d := 50 * time.Millisecond
	samples := drain(newOscillator(440, d, waveSine))

	if want := sampleRate.N(d); len(samples) != want {
		t.Fatalf("streamed %d samples, want %d", len(samples), want)
	}
	for i, v := range samples {
		if math.Abs(v) > 1 {
			t.Fatalf("sample %d = %v outside [-1,1]", i, v)
		}
	}
}

func TestEnvelopeRampsToSilence(t *testing.T) {
	d := 100 * time.Millisecond
	osc := newOscillator(200, d, waveSaw)
	samples := drain(newEnvelope(osc, d, 10*time.Millisecond, 40*time.Millisecond))

	if len(samples) == 0 {
		t.Fatal("envelope produced no samples")
	}
	// The first sample sits at the foot of the attack ramp and the last
	// at the foot of the release ramp
	if math.Abs(samples[0]) > 0.01 {
		t.Errorf("first sample = %v, want near zero", samples[0])
	}
	if last := samples[len(samples)-1]; math.Abs(last) > 0.01 {
		t.Errorf("last sample = %v, want near zero", last)
	}

	var peak float64
	for _, v := range samples {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak < 0.5 {
		t.Errorf("peak amplitude = %v, want an audible cue", peak)
	}
}

func TestCuesAreFinite(t *testing.T) {
	for name, cue := range map[string]beep.Streamer{
		"mistake":  mistakeCue(),
		"complete": completeCue(),
	} {
		samples := drain(cue)
		if len(samples) == 0 {
			t.Errorf("%s cue produced no samples", name)
		}
		if max := sampleRate.N(5 * time.Second); len(samples) > max {
			t.Errorf("%s cue streamed %d samples, runaway", name, len(samples))
		}
	}
}

func TestPlayerNoopBeforeInit(t *testing.T) {
	p := NewPlayer()

	// Without an audio device these must not panic or block
	p.Mistake()
	p.Complete()
	p.Close()
}
