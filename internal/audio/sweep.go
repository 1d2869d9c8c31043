package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType selects the oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// sweep is an oscillator whose frequency glides linearly over its duration
// and fades out over the last quarter.
type sweep struct {
	rate     beep.SampleRate
	from, to float64
	wave     WaveType
	total    int
	pos      int
	phase    float64
}

// NewSweep returns a finite streamer gliding from one frequency to another.
func NewSweep(rate beep.SampleRate, from, to float64, d time.Duration, wave WaveType) beep.Streamer {
	return &sweep{
		rate:  rate,
		from:  from,
		to:    to,
		wave:  wave,
		total: rate.N(d),
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress

		var v float64
		switch s.wave {
		case WaveSquare:
			if s.phase < 0.5 {
				v = 1
			} else {
				v = -1
			}
		case WaveSaw:
			v = 2 * (s.phase - 0.5)
		default:
			v = math.Sin(2 * math.Pi * s.phase)
		}
		if progress > 0.75 {
			v *= (1 - progress) * 4
		}
		v *= 0.3

		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
