package manager

import "time"

// Band is the tick configuration for a score range.
type Band struct {
	MaxScore int // inclusive upper bound, -1 for unbounded
	Interval time.Duration
	Teleport bool
}

const InitialInterval = 200 * time.Millisecond

// DefaultBands is ordered by MaxScore; the last band is unbounded.
var DefaultBands = []Band{
	{MaxScore: 20, Interval: 200 * time.Millisecond},
	{MaxScore: 30, Interval: 150 * time.Millisecond},
	{MaxScore: 50, Interval: 100 * time.Millisecond},
	{MaxScore: 99, Interval: 50 * time.Millisecond},
	{MaxScore: -1, Interval: 50 * time.Millisecond, Teleport: true},
}

type SpeedManager struct {
	bands []Band
}

func NewSpeedManager() *SpeedManager {
	return &SpeedManager{bands: DefaultBands}
}

// BandFor returns the band containing score.
func (sm *SpeedManager) BandFor(score int) Band {
	for _, b := range sm.bands {
		if b.MaxScore < 0 || score <= b.MaxScore {
			return b
		}
	}
	return sm.bands[len(sm.bands)-1]
}
