// Package calendar implements a compact date-time value which packs year,
// month, day, hour, minute, second and millisecond into a single uint64,
// together with the Gregorian calendar math needed to construct, compare,
// format, parse and advance it.
//
// The value is laid out from the most to the least significant field, so
// comparing two raw values compares them chronologically:
//
//	bits 36-51  year         16 bit
//	bits 32-35  month        4 bit, zero-based (0 = January)
//	bits 27-31  day          5 bit
//	bits 22-26  hour         5 bit
//	bits 16-21  minute       6 bit
//	bits 10-15  second       6 bit
//	bits  0- 9  millisecond  10 bit
//
// Field values are masked to their width when stored. Values exceeding the
// width wrap silently; use Validate to check a value against the documented
// ranges.
package calendar

import "fmt"

// DateTime is a calendar timestamp packed into a single integer. The zero
// value is not a valid date (day 0 of month 0 of year 0).
type DateTime uint64

// Field addresses one of the seven sub-fields of a DateTime.
type Field uint8

const (
	FieldMillisecond Field = iota
	FieldSecond
	FieldMinute
	FieldHour
	FieldDay
	FieldMonth
	FieldYear
)

const (
	maskMillisecond = 0x03FF
	maskSecond      = 0x003F
	maskMinute      = 0x003F
	maskHour        = 0x001F
	maskDay         = 0x001F
	maskMonth       = 0x000F
	maskYear        = 0xFFFF

	shiftMillisecond = 0
	shiftSecond      = 10
	shiftMinute      = shiftSecond + 6
	shiftHour        = shiftMinute + 6
	shiftDay         = shiftHour + 5
	shiftMonth       = shiftDay + 5
	shiftYear        = shiftMonth + 4
)

// MaxYear is the largest year in the documented range. The year field
// itself stores 16 bits.
const MaxYear = 4095

type fieldLayout struct {
	name  string
	shift uint
	mask  uint64
	min   int
	max   int
}

var layout = [...]fieldLayout{
	FieldMillisecond: {"millisecond", shiftMillisecond, maskMillisecond, 0, 999},
	FieldSecond:      {"second", shiftSecond, maskSecond, 0, 59},
	FieldMinute:      {"minute", shiftMinute, maskMinute, 0, 59},
	FieldHour:        {"hour", shiftHour, maskHour, 0, 23},
	FieldDay:         {"day", shiftDay, maskDay, 1, 31},
	FieldMonth:       {"month", shiftMonth, maskMonth, 0, 11},
	FieldYear:        {"year", shiftYear, maskYear, 0, MaxYear},
}

func (f Field) String() string {
	if int(f) < len(layout) {
		return layout[f].name
	}
	return fmt.Sprintf("Field(%d)", uint8(f))
}

// New packs the given fields. month is zero-based. Every argument is masked
// to the width of its field before it is stored.
func New(year, month, day, hour, minute, second, millisecond int) DateTime {
	return DateTime(((uint64(year) & maskYear) << shiftYear) |
		((uint64(month) & maskMonth) << shiftMonth) |
		((uint64(day) & maskDay) << shiftDay) |
		((uint64(hour) & maskHour) << shiftHour) |
		((uint64(minute) & maskMinute) << shiftMinute) |
		((uint64(second) & maskSecond) << shiftSecond) |
		(uint64(millisecond) & maskMillisecond))
}

// Date returns midnight of the given day. month is zero-based.
func Date(year, month, day int) DateTime {
	return New(year, month, day, 0, 0, 0, 0)
}

// FromUint64 wraps a raw packed value, e.g. one read back from storage.
func FromUint64(v uint64) DateTime {
	return DateTime(v)
}

// Uint64 returns the raw packed value.
func (dt DateTime) Uint64() uint64 {
	return uint64(dt)
}

// Get decodes a single field.
func (dt DateTime) Get(f Field) int {
	l := layout[f]
	return int((uint64(dt) >> l.shift) & l.mask)
}

// With returns a copy of dt with field f replaced by the masked value.
func (dt DateTime) With(f Field, value int) DateTime {
	l := layout[f]
	v := uint64(dt) &^ (l.mask << l.shift)
	return DateTime(v | ((uint64(value) & l.mask) << l.shift))
}

func (dt DateTime) Year() int        { return dt.Get(FieldYear) }
func (dt DateTime) Month() int       { return dt.Get(FieldMonth) }
func (dt DateTime) Day() int         { return dt.Get(FieldDay) }
func (dt DateTime) Hour() int        { return dt.Get(FieldHour) }
func (dt DateTime) Minute() int      { return dt.Get(FieldMinute) }
func (dt DateTime) Second() int      { return dt.Get(FieldSecond) }
func (dt DateTime) Millisecond() int { return dt.Get(FieldMillisecond) }

// MonthOfYear returns the month as 1 (January) to 12 (December).
func (dt DateTime) MonthOfYear() int {
	return dt.Month() + 1
}

func (dt *DateTime) SetYear(v int)        { *dt = dt.With(FieldYear, v) }
func (dt *DateTime) SetMonth(v int)       { *dt = dt.With(FieldMonth, v) }
func (dt *DateTime) SetDay(v int)         { *dt = dt.With(FieldDay, v) }
func (dt *DateTime) SetHour(v int)        { *dt = dt.With(FieldHour, v) }
func (dt *DateTime) SetMinute(v int)      { *dt = dt.With(FieldMinute, v) }
func (dt *DateTime) SetSecond(v int)      { *dt = dt.With(FieldSecond, v) }
func (dt *DateTime) SetMillisecond(v int) { *dt = dt.With(FieldMillisecond, v) }

// RangeError reports a field whose stored value lies outside its documented
// range.
type RangeError struct {
	Field Field
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("calendar: %s %d out of range", e.Field, e.Value)
}

// Validate checks every field against its documented range and the day
// against the length of its month. It returns the first violation as a
// *RangeError.
func (dt DateTime) Validate() error {
	for i := len(layout) - 1; i >= 0; i-- {
		f := Field(i)
		v := dt.Get(f)
		if v < layout[f].min || v > layout[f].max {
			return &RangeError{Field: f, Value: v}
		}
	}

	if dt.Day() > DaysInMonth(dt.Year(), dt.MonthOfYear()) {
		return &RangeError{Field: FieldDay, Value: dt.Day()}
	}

	return nil
}
