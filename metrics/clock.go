package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	LabelNameResult = "result"

	ResultSuccess = "success"
	ResultFailure = "failure"
)

type ClockMetrics struct {
	offset      prometheus.Gauge
	initialized prometheus.Gauge
	syncs       *prometheus.CounterVec
	lastSync    prometheus.Gauge
	missed      prometheus.Gauge
	anchorSaves prometheus.Counter
}

var (
	clockMetrics *ClockMetrics
	once         sync.Once
)

func GetClockMetrics() *ClockMetrics {
	once.Do(func() {
		clockMetrics = &ClockMetrics{
			offset: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemClock,
				Name:      "offset_milliseconds",
				Help:      "Correction added to the local clock to match the reference time.",
			}),
			initialized: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemClock,
				Name:      "initialized",
				Help:      "1 if a clock correction is known, 0 otherwise.",
			}),
			syncs: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemSync,
				Name:      "total",
				Help:      "Number of attempts to read the reference time.",
			}, []string{
				LabelNameResult,
			}),
			lastSync: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemSync,
				Name:      "last_success_timestamp_seconds",
				Help:      "Corrected time of the last successful sync as unix timestamp.",
			}),
			missed: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystemSync,
				Name:      "missed",
				Help:      "1 if the last scheduled sync did not succeed, 0 otherwise.",
			}),
			anchorSaves: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystemClock,
				Name:      "anchor_saves_total",
				Help:      "Number of times the last known good time has been persisted.",
			}),
		}

		registry.MustRegister(clockMetrics.offset)
		registry.MustRegister(clockMetrics.initialized)
		registry.MustRegister(clockMetrics.syncs)
		registry.MustRegister(clockMetrics.lastSync)
		registry.MustRegister(clockMetrics.missed)
		registry.MustRegister(clockMetrics.anchorSaves)
	})

	return clockMetrics
}

func (m *ClockMetrics) UpdateOffset(offset int64) {
	m.offset.Set(float64(offset))
	if offset != 0 {
		m.initialized.Set(1)
	} else {
		m.initialized.Set(0)
	}
}

func (m *ClockMetrics) SyncSucceeded(at time.Time) {
	m.syncs.WithLabelValues(ResultSuccess).Inc()
	m.lastSync.Set(float64(at.Unix()))
	m.missed.Set(0)
}

func (m *ClockMetrics) SyncFailed() {
	m.syncs.WithLabelValues(ResultFailure).Inc()
}

func (m *ClockMetrics) UpdateMissed(missed bool) {
	if missed {
		m.missed.Set(1)
	} else {
		m.missed.Set(0)
	}
}

func (m *ClockMetrics) AnchorSaved() {
	m.anchorSaves.Inc()
}
