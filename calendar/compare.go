package calendar

// Compare returns -1, 0 or +1 depending on whether dt is before, equal to or
// after other. It compares the packed integers, which orders them
// chronologically.
func (dt DateTime) Compare(other DateTime) int {
	switch {
	case dt < other:
		return -1
	case dt > other:
		return 1
	}
	return 0
}

func (dt DateTime) Before(other DateTime) bool {
	return dt < other
}

func (dt DateTime) After(other DateTime) bool {
	return dt > other
}

// Equal reports whether both values carry identical fields.
func (dt DateTime) Equal(other DateTime) bool {
	return dt == other
}
