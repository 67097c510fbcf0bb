package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := New()

	r.RecordCycle(OutcomeSuccess, 100*time.Millisecond)
	r.RecordCycle(OutcomeSkipped, 0)
	r.RecordCycle(OutcomeSuccess, 200*time.Millisecond)
	r.SetListings(7)
	r.RecordChange("increase_from_zero")
	r.RecordSend("mail", nil)
	r.RecordSend("mail", errors.New("smtp down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.cycles.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cycles.WithLabelValues(OutcomeSkipped)))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.listings))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.changes.WithLabelValues("increase_from_zero")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sends.WithLabelValues("mail", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sends.WithLabelValues("mail", "failure")))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.RecordCycle(OutcomeFailed, time.Second)
		r.SetListings(1)
		r.RecordChange("increase")
		r.RecordSend("console", nil)
	})
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.RecordChange("decrease")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `tgtg_watcher_watch_changes_total{category="decrease"} 1`)
}
