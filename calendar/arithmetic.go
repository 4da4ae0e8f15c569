package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned by AddChecked if the result would leave the
// years 0 through MaxYear.
var ErrOutOfRange = errors.New("calendar: result out of range")

func (dt *DateTime) AddMilliseconds(n int64) {
	dt.SetTime(dt.Time() + n)
}

func (dt *DateTime) AddSeconds(n int64) {
	dt.SetTime(dt.Time() + n*MillisecondsPerSecond)
}

func (dt *DateTime) AddMinutes(n int64) {
	dt.SetTime(dt.Time() + n*MillisecondsPerMinute)
}

func (dt *DateTime) AddHours(n int64) {
	dt.SetTime(dt.Time() + n*MillisecondsPerHour)
}

func (dt *DateTime) AddDays(n int64) {
	dt.SetTime(dt.Time() + n*MillisecondsPerDay)
}

// AddMonths advances dt n times by the length of the month it is in at the
// time of the step. This rolls forward by a month's worth of days, it does
// not keep the day of month: 2024-01-31 plus one month is 2024-03-02.
// Non-positive n leaves dt untouched.
func (dt *DateTime) AddMonths(n int) {
	for i := 0; i < n; i++ {
		dt.SetTime(dt.Time() + dt.MonthLength())
	}
}

// AddYears advances dt n times by 365 days, plus one day whenever the year
// before the step is a leap year. Non-positive n leaves dt untouched.
func (dt *DateTime) AddYears(n int) {
	for i := 0; i < n; i++ {
		t := dt.Time() + MillisecondsPerYear
		if IsLeapYear(dt.Year()) {
			t += MillisecondsPerDay
		}
		dt.SetTime(t)
	}
}

// MonthLength returns the length of dt's month in milliseconds.
func (dt DateTime) MonthLength() int64 {
	return int64(DaysInMonth(dt.Year(), dt.MonthOfYear())) * MillisecondsPerDay
}

// Unit names the step width of Add.
type Unit uint8

const (
	UnitMillisecond Unit = iota
	UnitSecond
	UnitMinute
	UnitHour
	UnitDay
	UnitMonth
	UnitYear
)

var unitNames = [...]string{
	UnitMillisecond: "millisecond",
	UnitSecond:      "second",
	UnitMinute:      "minute",
	UnitHour:        "hour",
	UnitDay:         "day",
	UnitMonth:       "month",
	UnitYear:        "year",
}

func (u Unit) String() string {
	if int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("Unit(%d)", uint8(u))
}

// ParseUnit accepts the singular or plural unit name, e.g. "day" or "days".
func ParseUnit(s string) (Unit, error) {
	singular := strings.TrimSuffix(strings.ToLower(s), "s")
	for i, name := range unitNames {
		if name == singular {
			return Unit(i), nil
		}
	}
	return 0, fmt.Errorf("calendar: unknown unit %q", s)
}

// Add dispatches to the Add method for u.
func (dt *DateTime) Add(u Unit, n int64) {
	switch u {
	case UnitMillisecond:
		dt.AddMilliseconds(n)
	case UnitSecond:
		dt.AddSeconds(n)
	case UnitMinute:
		dt.AddMinutes(n)
	case UnitHour:
		dt.AddHours(n)
	case UnitDay:
		dt.AddDays(n)
	case UnitMonth:
		dt.AddMonths(int(n))
	case UnitYear:
		dt.AddYears(int(n))
	}
}

// unitMilliseconds is the width of the linear units.
var unitMilliseconds = [...]int64{
	UnitMillisecond: 1,
	UnitSecond:      MillisecondsPerSecond,
	UnitMinute:      MillisecondsPerMinute,
	UnitHour:        MillisecondsPerHour,
	UnitDay:         MillisecondsPerDay,
}

// MaxSteps returns the largest |n| AddChecked accepts for u: the number of
// units spanning MaxYear+1 leap years.
func MaxSteps(u Unit) int64 {
	switch u {
	case UnitMonth:
		return 12 * (MaxYear + 1)
	case UnitYear:
		return MaxYear + 1
	}
	if int(u) < len(unitMilliseconds) {
		return (MaxYear + 1) * 366 * MillisecondsPerDay / unitMilliseconds[u]
	}
	return 0
}

// AddChecked is like Add, but leaves dt untouched and returns ErrOutOfRange
// if |n| exceeds MaxSteps(u) or the result falls outside the years 0
// through MaxYear.
func (dt *DateTime) AddChecked(u Unit, n int64) error {
	limit := MaxSteps(u)
	if limit == 0 {
		return fmt.Errorf("calendar: unknown unit %s", u)
	}
	if n > limit || n < -limit {
		return fmt.Errorf("%w: %d %ss", ErrOutOfRange, n, u)
	}

	next := *dt
	next.Add(u, n)
	if next.Year() > MaxYear ||
		(n > 0 && next.Before(*dt)) ||
		(n < 0 && next.After(*dt)) {
		return fmt.Errorf("%w: %s plus %d %ss", ErrOutOfRange, dt, n, u)
	}

	*dt = next
	return nil
}
