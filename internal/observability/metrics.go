package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	usersRegisteredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_service",
		Subsystem: "accounts",
		Name:      "users_registered_total",
		Help:      "Number of user accounts created since process start.",
	})
	recordsCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_service",
		Subsystem: "records",
		Name:      "records_created_total",
		Help:      "Number of workout records created since process start.",
	})
	recordPersistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workout_service",
		Subsystem: "records",
		Name:      "last_record_persisted_timestamp_seconds",
		Help:      "Unix timestamp of the most recent workout record persisted.",
	})
)

func init() {
	prometheus.MustRegister(usersRegisteredCounter, recordsCreatedCounter, recordPersistGauge)
}

// RecordUserRegistered increments the registration counter.
func RecordUserRegistered() {
	usersRegisteredCounter.Inc()
}

// RecordWorkoutPersisted counts the record and updates the persistence
// watermark gauge.
func RecordWorkoutPersisted(ts time.Time) {
	recordsCreatedCounter.Inc()
	if ts.IsZero() {
		return
	}
	recordPersistGauge.Set(float64(ts.Unix()))
}
