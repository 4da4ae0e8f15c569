package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_New_decodesEveryField(t *testing.T) {
	assertion := assert.New(t)

	sut := New(2024, 1, 29, 12, 34, 56, 789)

	assertion.Equal(2024, sut.Year())
	assertion.Equal(1, sut.Month())
	assertion.Equal(2, sut.MonthOfYear())
	assertion.Equal(29, sut.Day())
	assertion.Equal(12, sut.Hour())
	assertion.Equal(34, sut.Minute())
	assertion.Equal(56, sut.Second())
	assertion.Equal(789, sut.Millisecond())
}

func Test_New_roundTripsDocumentedRanges(t *testing.T) {
	assertion := assert.New(t)

	for year := 0; year <= MaxYear; year += 13 {
		for month := 0; month < 12; month++ {
			for day := 1; day <= 31; day += 5 {
				hour, minute, second, ms := (year+day)%24, (year*7+month)%60, (day*11)%60, (year*31+day)%1000
				sut := New(year, month, day, hour, minute, second, ms)

				if !assertion.Equal([]int{year, month, day, hour, minute, second, ms},
					[]int{sut.Year(), sut.Month(), sut.Day(), sut.Hour(), sut.Minute(), sut.Second(), sut.Millisecond()}) {
					return
				}
			}
		}
	}
}

func Test_New_keepsBitLayout(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal(uint64(1)<<36, New(1, 0, 0, 0, 0, 0, 0).Uint64())
	assertion.Equal(uint64(1)<<32, New(0, 1, 0, 0, 0, 0, 0).Uint64())
	assertion.Equal(uint64(1)<<27, New(0, 0, 1, 0, 0, 0, 0).Uint64())
	assertion.Equal(uint64(1)<<22, New(0, 0, 0, 1, 0, 0, 0).Uint64())
	assertion.Equal(uint64(1)<<16, New(0, 0, 0, 0, 1, 0, 0).Uint64())
	assertion.Equal(uint64(1)<<10, New(0, 0, 0, 0, 0, 1, 0).Uint64())
	assertion.Equal(uint64(1), New(0, 0, 0, 0, 0, 0, 1).Uint64())
}

func Test_New_wrapsValuesExceedingTheFieldWidth(t *testing.T) {
	assertion := assert.New(t)

	sut := New(65536+7, 16+3, 32+4, 32+5, 64+6, 64+7, 1024+8)

	assertion.Equal(7, sut.Year())
	assertion.Equal(3, sut.Month())
	assertion.Equal(4, sut.Day())
	assertion.Equal(5, sut.Hour())
	assertion.Equal(6, sut.Minute())
	assertion.Equal(7, sut.Second())
	assertion.Equal(8, sut.Millisecond())
}

func Test_Setters_leaveOtherFieldsUntouched(t *testing.T) {
	assertion := assert.New(t)

	sut := New(2012, 3, 15, 0, 45, 0, 0)
	sut.SetHour(23)
	sut.SetMillisecond(999)
	sut.SetYear(2013)

	assertion.Equal(New(2013, 3, 15, 23, 45, 0, 999), sut)

	sut.SetMinute(60 + 1)
	assertion.Equal(1, sut.Minute())
	assertion.Equal(23, sut.Hour())
}

func Test_With_doesNotMutateTheReceiver(t *testing.T) {
	assertion := assert.New(t)

	sut := Date(2020, 0, 1)
	changed := sut.With(FieldDay, 2)

	assertion.Equal(1, sut.Day())
	assertion.Equal(2, changed.Day())
	assertion.Equal(2, changed.Get(FieldDay))
}

func Test_Validate_reportsFirstFieldOutOfRange(t *testing.T) {
	assertion := assert.New(t)

	assertion.NoError(New(2024, 1, 29, 23, 59, 59, 999).Validate())

	var rangeErr *RangeError

	err := New(2024, 12, 1, 0, 0, 0, 0).Validate()
	if assertion.ErrorAs(err, &rangeErr) {
		assertion.Equal(FieldMonth, rangeErr.Field)
		assertion.Equal(12, rangeErr.Value)
	}

	err = New(2023, 1, 29, 0, 0, 0, 0).Validate()
	if assertion.ErrorAs(err, &rangeErr) {
		assertion.Equal(FieldDay, rangeErr.Field)
	}

	err = New(MaxYear+1, 0, 1, 0, 0, 0, 0).Validate()
	if assertion.ErrorAs(err, &rangeErr) {
		assertion.Equal(FieldYear, rangeErr.Field)
		assertion.Equal("calendar: year 4096 out of range", err.Error())
	}

	err = New(2024, 0, 1, 0, 0, 0, 1000).Validate()
	if assertion.ErrorAs(err, &rangeErr) {
		assertion.Equal(FieldMillisecond, rangeErr.Field)
	}
}

func BenchmarkNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = New(2024, 1, 29, 12, 34, 56, i)
	}
}

func BenchmarkGet(b *testing.B) {
	dt := New(2024, 1, 29, 12, 34, 56, 789)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = dt.Get(Field(i % 7))
	}
}
