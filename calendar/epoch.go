package calendar

import "time"

const (
	MillisecondsPerSecond int64 = 1000
	MillisecondsPerMinute       = 60 * MillisecondsPerSecond
	MillisecondsPerHour         = 60 * MillisecondsPerMinute
	MillisecondsPerDay          = 24 * MillisecondsPerHour
	MillisecondsPerYear         = 365 * MillisecondsPerDay
)

// UnixEpochDays is DaysSinceEpoch(1970, 1, 1).
const UnixEpochDays int64 = 719163

const (
	daysPer400Years = 146097
	daysPer100Years = 36524
	daysPer4Years   = 1461
	daysPerYear     = 365
)

// indexed by the 1-based month
var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// days before the first of the zero-based month; the last entry is the
// length of the year
var (
	accumDaysInMonth     = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
	accumDaysInMonthLeap = [13]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}
)

// IsLeapYear reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days of the 1-based month, or 0 if month
// is out of range.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month]
}

// floorDiv divides rounding towards negative infinity, so that year 0 and
// times before day 0 decompose like any other.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// DaysSinceEpoch counts days such that 0001-01-01 is day 1. month is
// 1-based.
func DaysSinceEpoch(year, month, day int) int64 {
	leap := IsLeapYear(year)
	y := int64(year - 1)
	days := 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) + int64((367*month-362)/12) + int64(day)
	if month > 2 {
		if leap {
			days--
		} else {
			days -= 2
		}
	}
	return days
}

// YearFromDays is the inverse of DaysSinceEpoch for the year component.
func YearFromDays(days int64) int {
	d0 := days - 1
	n400 := floorDiv(d0, daysPer400Years)
	d1 := d0 - n400*daysPer400Years
	n100 := d1 / daysPer100Years
	d2 := d1 % daysPer100Years
	n4 := d2 / daysPer4Years
	d3 := d2 % daysPer4Years
	n1 := d3 / daysPerYear

	year := int(400*n400 + 100*n100 + 4*n4 + n1)
	// n100 == 4 or n1 == 4 is the last day of a cycle, not the first day of
	// the following year
	if !(n100 == 4 || n1 == 4) {
		year++
	}
	return year
}

func accumTable(year int) *[13]int {
	if IsLeapYear(year) {
		return &accumDaysInMonthLeap
	}
	return &accumDaysInMonth
}

// DayOfYear returns 1 for the first of January.
func (dt DateTime) DayOfYear() int {
	m := dt.Month()
	if m > 11 {
		m = 11
	}
	return dt.Day() + accumTable(dt.Year())[m]
}

// FromMillis decomposes an absolute timestamp, measured in milliseconds
// from the start of day 0 (0000-12-31), into a DateTime.
func FromMillis(ms int64) DateTime {
	var dt DateTime
	dt.SetTime(ms)
	return dt
}

// SetTime replaces every field of dt with the decomposition of ms, see
// FromMillis.
func (dt *DateTime) SetTime(ms int64) {
	day1 := floorDiv(ms, MillisecondsPerDay)
	year := YearFromDays(day1)
	dayOfYear := int(day1 - DaysSinceEpoch(year, 1, 1) + 1)

	table := accumTable(year)
	month, day := 11, dayOfYear-table[11]
	for i := 1; i < len(table); i++ {
		if table[i] >= dayOfYear {
			month, day = i-1, dayOfYear-table[i-1]
			break
		}
	}

	rem := ms - day1*MillisecondsPerDay
	hour := rem / MillisecondsPerHour
	rem %= MillisecondsPerHour
	minute := rem / MillisecondsPerMinute
	rem %= MillisecondsPerMinute
	second := rem / MillisecondsPerSecond
	rem %= MillisecondsPerSecond

	*dt = New(year, month, day, int(hour), int(minute), int(second), int(rem))
}

// Time returns the absolute timestamp of dt in milliseconds, see FromMillis.
func (dt DateTime) Time() int64 {
	t := int64(dt.Hour()) * MillisecondsPerHour
	t += int64(dt.Minute()) * MillisecondsPerMinute
	t += int64(dt.Second()) * MillisecondsPerSecond
	t += int64(dt.Millisecond())
	t += DaysSinceEpoch(dt.Year(), dt.MonthOfYear(), dt.Day()) * MillisecondsPerDay
	return t
}

// FromUnixMilli converts milliseconds since 1970-01-01T00:00:00Z.
func FromUnixMilli(ms int64) DateTime {
	return FromMillis(ms + UnixEpochDays*MillisecondsPerDay)
}

// UnixMilli returns dt as milliseconds since 1970-01-01T00:00:00Z.
func (dt DateTime) UnixMilli() int64 {
	return dt.Time() - UnixEpochDays*MillisecondsPerDay
}

// FromTime converts t, truncated to milliseconds, in UTC.
func FromTime(t time.Time) DateTime {
	return FromUnixMilli(t.UnixMilli())
}

// ToTime returns dt as a UTC time.Time.
func (dt DateTime) ToTime() time.Time {
	return time.UnixMilli(dt.UnixMilli()).UTC()
}
