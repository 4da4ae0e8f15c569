package calendar

import (
	"sync/atomic"
	"time"
)

// Clock produces "now" values corrected by an offset between the local
// system clock and a trusted reference. An offset of zero means no
// reference has been seen yet.
//
// A Clock is safe for concurrent use. The offset is expected to have a
// single writer.
type Clock struct {
	now    func() time.Time
	offset atomic.Int64
}

// NewClock returns a Clock reading the local time from now, or from
// time.Now if now is nil.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// SetOffset sets the correction in milliseconds that is added to the local
// time.
func (c *Clock) SetOffset(ms int64) {
	c.offset.Store(ms)
}

func (c *Clock) Offset() int64 {
	return c.offset.Load()
}

// IsInitialized reports whether an offset has been set.
func (c *Clock) IsInitialized() bool {
	return c.Offset() != 0
}

// LocalUnixMilli returns the uncorrected local time.
func (c *Clock) LocalUnixMilli() int64 {
	return c.now().UnixMilli()
}

// Now returns the corrected current time.
func (c *Clock) Now() DateTime {
	return FromUnixMilli(c.LocalUnixMilli() + c.Offset())
}

func (c *Clock) NowString() string {
	return c.Now().String()
}
