package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Compare_followsChronologicalOrder(t *testing.T) {
	assertion := assert.New(t)

	ordered := []DateTime{
		New(1999, 11, 31, 23, 59, 59, 999),
		Date(2000, 0, 1),
		New(2000, 0, 1, 0, 0, 0, 1),
		New(2000, 0, 1, 0, 0, 1, 0),
		New(2000, 0, 1, 0, 1, 0, 0),
		New(2000, 0, 1, 1, 0, 0, 0),
		Date(2000, 0, 2),
		Date(2000, 1, 1),
		Date(2001, 0, 1),
	}

	for i := range ordered {
		for j := range ordered {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			assertion.Equal(want, ordered[i].Compare(ordered[j]), "%v vs %v", ordered[i], ordered[j])
			assertion.Equal(i < j, ordered[i].Before(ordered[j]))
			assertion.Equal(i > j, ordered[i].After(ordered[j]))
			assertion.Equal(i == j, ordered[i].Equal(ordered[j]))
		}
	}
}

func Test_Compare_agreesWithAbsoluteTime(t *testing.T) {
	assertion := assert.New(t)

	base := DaysSinceEpoch(2020, 1, 1) * MillisecondsPerDay
	prev := FromMillis(base)
	for step := int64(1); step < 400*MillisecondsPerDay; step = step*3 + 7 {
		next := FromMillis(base + step)
		assertion.Equal(-1, prev.Compare(next), "%d", step)
		prev = next
	}
}
