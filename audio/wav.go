package audio

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/youpy/go-wav"
)

// WavFrames counts the sample frames of a WAV file from its header.
type WavFrames struct {
	// SampleRate, when set, rejects files recorded at another rate.
	SampleRate int
}

// Frames returns the number of frames (samples per channel) in path.
func (w WavFrames) Frames(_ context.Context, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := wav.NewReader(f)
	format, err := r.Format()
	if err != nil {
		return 0, fmt.Errorf("reading wav format of %s: %w", path, err)
	}
	if w.SampleRate > 0 && int(format.SampleRate) != w.SampleRate {
		return 0, fmt.Errorf("%s is sampled at %d Hz, want %d", path, format.SampleRate, w.SampleRate)
	}
	d, err := r.Duration()
	if err != nil {
		return 0, fmt.Errorf("reading wav duration of %s: %w", path, err)
	}
	return int64(math.Round(d.Seconds() * float64(format.SampleRate))), nil
}
