package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError wraps the numeric conversion failure of a single token.
type ParseError struct {
	Text  string
	Field Field
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("calendar: parsing %s of %q: %s", e.Field, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads "DD.MM.YYYY[ HH:MM[:SS]]", e.g. "15.04.2012 00:45". Leading
// zeros are optional. The month is read 1-based and stored zero-based.
//
// ok is false, and err nil, when the date part is missing or does not
// consist of exactly three dot-separated tokens. err is a *ParseError when a
// token that has to be numeric is not.
func Parse(text string) (dt DateTime, ok bool, err error) {
	tokens := strings.Split(text, " ")

	day, month, year := -1, -1, -1
	dateParts := strings.Split(tokens[0], ".")
	if len(dateParts) == 3 {
		if day, err = parseField(text, FieldDay, dateParts[0]); err != nil {
			return 0, false, err
		}
		if month, err = parseField(text, FieldMonth, dateParts[1]); err != nil {
			return 0, false, err
		}
		if year, err = parseField(text, FieldYear, dateParts[2]); err != nil {
			return 0, false, err
		}
	}

	hour, minute, second := 0, 0, 0
	if len(tokens) > 1 {
		timeParts := strings.Split(tokens[1], ":")
		if len(timeParts) > 1 {
			if hour, err = parseField(text, FieldHour, timeParts[0]); err != nil {
				return 0, false, err
			}
			if minute, err = parseField(text, FieldMinute, timeParts[1]); err != nil {
				return 0, false, err
			}
		}
		if len(timeParts) > 2 {
			if second, err = parseField(text, FieldSecond, timeParts[2]); err != nil {
				return 0, false, err
			}
		}
	}

	if day == -1 || month == -1 || year == -1 {
		return 0, false, nil
	}

	return New(year, month-1, day, hour, minute, second, 0), true, nil
}

// MustParse is like Parse but panics if text cannot be parsed or holds no
// date.
func MustParse(text string) DateTime {
	dt, ok, err := Parse(text)
	if err != nil {
		panic(err)
	}
	if !ok {
		panic(fmt.Sprintf("calendar: %q holds no date", text))
	}
	return dt
}

func parseField(text string, f Field, token string) (int, error) {
	for len(token) > 1 && token[0] == '0' {
		token = token[1:]
	}
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, &ParseError{Text: text, Field: f, Err: err}
	}
	return v, nil
}
