package device

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments device notifications.
type Metrics struct {
	notifications *prometheus.CounterVec
	duration      prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alarm_device_notifications_total",
			Help: "Alarms pushed to the device, by outcome (ok, error, dropped).",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "alarm_device_notification_duration_seconds",
			Help:    "Time taken by the device to answer a pushed alarm.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.notifications, m.duration)
	return m
}

func (m *Metrics) observe(r Result) {
	if m == nil {
		return
	}
	switch {
	case errors.Is(r.Err, ErrTooManyInFlight):
		// nothing was sent, so there is no duration to record
		m.notifications.WithLabelValues("dropped").Inc()
		return
	case r.Err != nil:
		m.notifications.WithLabelValues("error").Inc()
	default:
		m.notifications.WithLabelValues("ok").Inc()
	}
	m.duration.Observe(r.Duration.Seconds())
}
