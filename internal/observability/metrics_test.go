package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTransition(t *testing.T) {
	m := NewMetrics()
	m.RecordTransition("SUBMITTED", "REJECTED")
	m.RecordTransition("SUBMITTED", "REJECTED")
	m.RecordTransition("SUBMITTED", "SCHEDULE_INTERVIEW")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("SUBMITTED", "REJECTED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("SUBMITTED", "SCHEDULE_INTERVIEW")))
}

func TestRecordRequestAndNilSafety(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/applications/:id?", "GET", 200, 5*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/applications/:id?", "GET", "200")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() {
		nilMetrics.RecordRequest("/", "GET", 200, time.Millisecond)
		nilMetrics.RecordTransition("a", "b")
		nilMetrics.RecordGraderReview()
	})
}
