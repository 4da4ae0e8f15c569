package main

import (
	"net/http/httptest"
	"testing"

	"github.com/dreitier/shortcal/metrics"
	"github.com/stretchr/testify/assert"
)

func scrape() string {
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}

func Test_newClock_initialOffsetIsExported(t *testing.T) {
	assertion := assert.New(t)

	sut := newClock(1500)

	assertion.True(sut.IsInitialized())
	assertion.Equal(int64(1500), sut.Offset())

	body := scrape()
	assertion.Contains(body, "shortcal_clock_offset_milliseconds 1500")
	assertion.Contains(body, "shortcal_clock_initialized 1")
}

func Test_newClock_withoutOffset(t *testing.T) {
	sut := newClock(0)

	assert.False(t, sut.IsInitialized())
	assert.Equal(t, int64(0), sut.Offset())
}
