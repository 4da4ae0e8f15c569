package calendar

import "strconv"

// AppendFormat appends the display form of dt, see String, to b.
func (dt DateTime) AppendFormat(b []byte) []byte {
	day := dt.Day()
	if day < 10 {
		b = append(b, '0')
	}
	b = strconv.AppendInt(b, int64(day), 10)

	b = append(b, '.')
	b = strconv.AppendInt(b, int64(dt.MonthOfYear()), 10)

	b = append(b, '.')
	b = strconv.AppendInt(b, int64(dt.Year()), 10)

	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(dt.Hour()), 10)

	minute := dt.Minute()
	if minute < 10 {
		b = append(b, ':', '0')
	} else {
		b = append(b, ':')
	}
	b = strconv.AppendInt(b, int64(minute), 10)

	return b
}

// String renders dt as "DD.M.YYYY H:MM", e.g. "05.3.2024 9:07". Seconds and
// milliseconds are omitted. The output is meant for display and logs; Parse
// reads it back, but only to minute precision.
func (dt DateTime) String() string {
	var buf [24]byte
	return string(dt.AppendFormat(buf[:0]))
}
