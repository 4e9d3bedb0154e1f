// Package audio plays short tones for game events.
package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Tone frequencies in Hz.
const (
	baseTone = 660.0
	stepTone = 40.0 // per point of score
	maxTone  = 1760.0
)

// Beeper plays a tone for every new best score.
type Beeper struct {
	duration time.Duration
}

// NewBeeper initializes the speaker. The speaker is process-wide; call
// Close when done.
func NewBeeper() (*Beeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return &Beeper{duration: 80 * time.Millisecond}, nil
}

// ToneFor returns the frequency played for a score.
func ToneFor(score int) float64 {
	f := baseTone + stepTone*float64(score)
	if f > maxTone {
		return maxTone
	}
	return f
}

// NewBest plays the tone for score without blocking.
func (b *Beeper) NewBest(score int) {
	if b == nil {
		return
	}
	sine, err := generators.SineTone(sampleRate, ToneFor(score))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(b.duration), sine))
}

// Close releases the speaker.
func (b *Beeper) Close() {
	if b == nil {
		return
	}
	speaker.Close()
}
