package timesync

import (
	"time"

	"github.com/dreitier/shortcal/config"
	"github.com/gorhill/cronexpr"
)

// FindPrevious returns the latest activation of expr which is not after
// moment, or the zero time if there is none within the last 200 years.
func FindPrevious(expr *cronexpr.Expression, moment time.Time) time.Time {
	if expr == nil {
		return time.Time{}
	}

	high := expr.Next(moment)
	if high.IsZero() {
		high = moment.Add(time.Second)
	}

	// widen the window until it contains an activation
	span := -2 * config.Day
	low := expr.Next(moment.Add(span))
	for low.IsZero() || !low.Before(high) {
		span *= 2
		if span < -200*config.Year {
			return time.Time{}
		}
		low = expr.Next(moment.Add(span))
	}

	// bisect between the known activation and moment
	upper := moment
	for upper.Sub(low) >= time.Minute {
		median := low.Add(upper.Sub(low) / 2)
		if next := expr.Next(median); next.Before(high) {
			low = next
		} else {
			upper = median
		}
	}

	return low
}
