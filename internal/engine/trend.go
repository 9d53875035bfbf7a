package engine

import (
	"math"

	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
)

// Trend defaults.
const (
	DefaultTrendWindow    = 7
	DefaultTrendTolerance = 0.05
)

// ClassifyTrend compares the mean of the last window values with the mean of
// the window before it. values are in chronological order. With fewer than
// 2*window values the trend is stable.
//
// The tolerance band is tolerance·(|recent|+|prior|)/2, not the one-sided
// prior·(1+tolerance). The two differ near the edge: prior 100 and recent
// 105.1 is improving against prior·1.05 but stable here, since the band is
// 5.1275. The symmetric band makes swapping the windows or negating every
// value always invert the result.
func ClassifyTrend(values []float64, window int, tolerance float64) domain.Trend {
	if window <= 0 {
		window = DefaultTrendWindow
	}
	if len(values) < 2*window {
		return domain.TrendStable
	}
	n := len(values)
	recent := mean(values[n-window:])
	prior := mean(values[n-2*window : n-window])
	return compareMeans(recent, prior, tolerance)
}

func compareMeans(recent, prior, tolerance float64) domain.Trend {
	band := tolerance * (math.Abs(recent) + math.Abs(prior)) / 2
	delta := recent - prior
	switch {
	case delta > band:
		return domain.TrendImproving
	case delta < -band:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
