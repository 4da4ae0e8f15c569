package config

import (
	"time"

	"github.com/gorhill/cronexpr"
	log "github.com/sirupsen/logrus"
)

const (
	SyncModeDateHeader = "date_header"
	SyncModeText       = "text"

	DefaultSyncSchedule    = "*/15 * * * *"
	DefaultSyncTimeout     = 10 * time.Second
	DefaultMaxResponseSize = 4 * 1024
)

type TimeSyncConfiguration struct {
	URL             string
	Mode            string
	Schedule        *cronexpr.Expression
	Timeout         time.Duration
	MaxResponseSize uint64
}

// IsEnabled reports whether a reference URL has been configured.
func (c *TimeSyncConfiguration) IsEnabled() bool {
	return c != nil && c.URL != ""
}

func parseTimeSync(cfg Raw) *TimeSyncConfiguration {
	sync := &TimeSyncConfiguration{
		Mode:            SyncModeDateHeader,
		Schedule:        cronexpr.MustParse(DefaultSyncSchedule),
		Timeout:         DefaultSyncTimeout,
		MaxResponseSize: DefaultMaxResponseSize,
	}

	if cfg == nil {
		log.Debug("No time_sync section, clock correction will not be learned")
		return sync
	}

	sync.URL = cfg.String("url")

	if cfg.Has("mode") {
		switch mode := cfg.String("mode"); mode {
		case SyncModeDateHeader, SyncModeText:
			sync.Mode = mode
		default:
			log.Warnf("Unknown time_sync mode '%s', defaulting to '%s'", mode, SyncModeDateHeader)
		}
	}

	if cfg.Has("schedule") {
		expr, err := cronexpr.Parse(cfg.String("schedule"))
		if err != nil {
			log.Warnf("Cannot parse time_sync schedule, defaulting to '%s': %s", DefaultSyncSchedule, err)
		} else {
			sync.Schedule = expr
		}
	}

	if cfg.Has("timeout") {
		if timeout := cfg.Duration("timeout"); timeout > 0 {
			sync.Timeout = timeout
		} else {
			log.Warnf("Cannot parse time_sync timeout, defaulting to %s", DefaultSyncTimeout)
		}
	}

	if cfg.Has("max_response_size") {
		if size := cfg.Bytes("max_response_size"); size > 0 {
			sync.MaxResponseSize = size
		}
	}

	return sync
}
