// Package timesync learns the offset between the local clock and a trusted
// reference and keeps the calendar.Clock corrected.
package timesync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dreitier/shortcal/calendar"
	"github.com/dreitier/shortcal/config"
	"github.com/dreitier/shortcal/metrics"
	"github.com/dreitier/shortcal/storage"
	"github.com/gorhill/cronexpr"
	log "github.com/sirupsen/logrus"
)

// ErrNoReference is returned when the reference answered without a usable
// time.
var ErrNoReference = errors.New("reference did not provide a time")

// a sync finishing slightly before its activation, e.g. after a negative
// correction, still counts
const missedGrace = time.Minute

type Syncer struct {
	clock           *calendar.Clock
	client          *http.Client
	url             string
	mode            string
	schedule        *cronexpr.Expression
	maxResponseSize int64
	store           storage.Store
	metrics         *metrics.ClockMetrics
	trigger         chan struct{}

	mutex    sync.Mutex
	lastSync calendar.DateTime
	lastErr  error
}

// Status is a snapshot of the syncer's state.
type Status struct {
	Offset      int64
	Initialized bool
	LastSync    calendar.DateTime
	LastError   error
	Missed      bool
}

// NewSyncer creates a syncer correcting clock. store may be nil, in which
// case no anchor is kept.
func NewSyncer(clock *calendar.Clock, cfg *config.TimeSyncConfiguration, store storage.Store) *Syncer {
	return &Syncer{
		clock:           clock,
		client:          &http.Client{Timeout: cfg.Timeout},
		url:             cfg.URL,
		mode:            cfg.Mode,
		schedule:        cfg.Schedule,
		maxResponseSize: int64(cfg.MaxResponseSize),
		store:           store,
		metrics:         metrics.GetClockMetrics(),
		trigger:         make(chan struct{}, 1),
	}
}

func (s *Syncer) Clock() *calendar.Clock {
	return s.clock
}

// Sync reads the reference time once and updates the clock's offset. The
// local time of the reading is taken as the midpoint of the round trip.
func (s *Syncer) Sync(ctx context.Context) (int64, error) {
	offset, err := s.fetchOffset(ctx)

	s.mutex.Lock()
	s.lastErr = err
	s.mutex.Unlock()

	if err != nil {
		s.metrics.SyncFailed()
		return 0, err
	}

	// zero is reserved for an uninitialized clock
	if offset == 0 {
		offset = 1
	}
	s.clock.SetOffset(offset)
	s.metrics.UpdateOffset(offset)

	now := s.clock.Now()
	s.mutex.Lock()
	s.lastSync = now
	s.mutex.Unlock()
	s.metrics.SyncSucceeded(now.ToTime())

	s.saveAnchor(ctx, now)

	return offset, nil
}

func (s *Syncer) fetchOffset(ctx context.Context) (int64, error) {
	if s.url == "" {
		return 0, errors.New("no reference url configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request for %s: %w", s.url, err)
	}

	sent := s.clock.LocalUnixMilli()
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to query reference %s: %w", s.url, err)
	}
	defer resp.Body.Close()
	received := s.clock.LocalUnixMilli()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("reference %s answered with status %d", s.url, resp.StatusCode)
	}

	var reference int64
	switch s.mode {
	case config.SyncModeText:
		reference, err = s.readText(resp.Body)
	default:
		reference, err = readDateHeader(resp.Header)
	}
	if err != nil {
		return 0, err
	}

	local := sent + (received-sent)/2
	log.Debugf("Reference time %d, local time %d (round trip %dms)", reference, local, received-sent)

	return reference - local, nil
}

func (s *Syncer) readText(body io.Reader) (int64, error) {
	data, err := io.ReadAll(io.LimitReader(body, s.maxResponseSize))
	if err != nil {
		return 0, fmt.Errorf("failed to read reference body: %w", err)
	}

	dt, ok, err := calendar.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("malformed reference body: %w", err)
	}
	if !ok {
		return 0, ErrNoReference
	}

	return dt.UnixMilli(), nil
}

func readDateHeader(header http.Header) (int64, error) {
	date := header.Get("Date")
	if date == "" {
		return 0, ErrNoReference
	}

	t, err := http.ParseTime(date)
	if err != nil {
		return 0, fmt.Errorf("malformed Date header %q: %w", date, err)
	}

	return t.UnixMilli(), nil
}

func (s *Syncer) saveAnchor(ctx context.Context, now calendar.DateTime) {
	if s.store == nil {
		return
	}

	if err := s.store.Save(ctx, now); err != nil {
		log.Warnf("Unable to save anchor: %s", err)
		return
	}

	s.metrics.AnchorSaved()
}

// Restore loads the anchor and, if the clock reads earlier than the last
// known good time, moves the clock forward to it.
func (s *Syncer) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	anchor, err := s.store.Load(ctx)
	if errors.Is(err, storage.ErrNoAnchor) {
		log.Info("No anchor stored yet")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load anchor: %w", err)
	}

	now := s.clock.Now()
	if !now.Before(anchor) {
		log.Debugf("Clock %s is not behind anchor %s", now, anchor)
		return nil
	}

	offset := anchor.UnixMilli() - s.clock.LocalUnixMilli()
	if offset == 0 {
		offset = 1
	}
	s.clock.SetOffset(offset)
	s.metrics.UpdateOffset(offset)

	log.Warnf("Clock %s is behind last known good time %s, correcting by %dms", now, anchor, offset)
	return nil
}

// Trigger requests an immediate sync from Run. It never blocks.
func (s *Syncer) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run syncs immediately and then on every activation of the schedule or
// Trigger, until ctx is done.
func (s *Syncer) Run(ctx context.Context) error {
	for {
		if offset, err := s.Sync(ctx); err != nil {
			log.Errorf("Time sync failed: %s", err)
		} else {
			log.Infof("Time synced, offset is %dms, now %s", offset, s.clock.Now())
		}

		now := s.clock.Now().ToTime()
		s.metrics.UpdateMissed(s.Missed(now))

		var timer *time.Timer
		var wait <-chan time.Time
		if s.schedule != nil {
			if next := s.schedule.Next(now); !next.IsZero() {
				log.Debugf("Next time sync at %s", calendar.FromTime(next))
				timer = time.NewTimer(next.Sub(now))
				wait = timer.C
			}
		}

		select {
		case <-ctx.Done():
		case <-wait:
		case <-s.trigger:
			log.Info("Time sync triggered")
		}

		if timer != nil {
			timer.Stop()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Missed reports whether the latest scheduled activation before now has not
// been followed by a successful sync.
func (s *Syncer) Missed(now time.Time) bool {
	previous := FindPrevious(s.schedule, now)
	if previous.IsZero() {
		return false
	}

	s.mutex.Lock()
	lastSync := s.lastSync
	s.mutex.Unlock()

	if lastSync == 0 {
		return true
	}

	return lastSync.ToTime().Before(previous.Add(-missedGrace))
}

func (s *Syncer) Status() Status {
	s.mutex.Lock()
	status := Status{
		LastSync:  s.lastSync,
		LastError: s.lastErr,
	}
	s.mutex.Unlock()

	status.Offset = s.clock.Offset()
	status.Initialized = s.clock.IsInitialized()
	status.Missed = s.Missed(s.clock.Now().ToTime())

	return status
}
