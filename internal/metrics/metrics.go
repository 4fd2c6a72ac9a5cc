// Package metrics exposes Prometheus counters for the translation job
// lifecycle. Dropped messages are acknowledged without retry, so the
// counters are the only trace they leave.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reason label values
const (
	DropReasonMalformed = "malformed"
	DropReasonNotFound  = "not_found"
	DropReasonDuplicate = "duplicate"
)

var (
	// JobsSubmitted counts accepted submissions.
	JobsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "translation_jobs_submitted_total",
		Help: "Number of translation requests accepted for processing.",
	})

	// JobsCompleted counts jobs that reached the completed state.
	JobsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "translation_jobs_completed_total",
		Help: "Number of translation jobs completed successfully.",
	})

	// JobsFailed counts jobs that reached the failed state.
	JobsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "translation_jobs_failed_total",
		Help: "Number of translation jobs that ended in failure.",
	})

	// MessagesDropped counts queue messages acknowledged and discarded
	// without producing a state transition, labeled by reason.
	MessagesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "translation_messages_dropped_total",
		Help: "Number of queue messages acknowledged and dropped without processing.",
	}, []string{"reason"})
)
