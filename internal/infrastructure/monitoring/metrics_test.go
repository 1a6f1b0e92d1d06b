package monitoring

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycleMetrics(t *testing.T) {
	m := NewMetrics()

	m.RecordSessionStarted()
	m.RecordSessionStarted()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsStarted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsActive))

	m.RecordSessionFinished("succeeded", time.Second, 12)
	m.RecordSessionFinished("failed", 2*time.Second, 40)

	assert.Equal(t, 0.0, testutil.ToFloat64(m.SessionsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionOutcomes.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionOutcomes.WithLabelValues("failed")))
}

func TestReportAndClipboardMetrics(t *testing.T) {
	m := NewMetrics()

	m.RecordReport("delivered", 1800)
	m.RecordReport("suppressed", -1)
	m.RecordClipboardWrite("system", nil)
	m.RecordClipboardWrite("osc52", errors.New("no tty"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reports.WithLabelValues("delivered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reports.WithLabelValues("suppressed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClipboardWrites.WithLabelValues("system", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ClipboardWrites.WithLabelValues("osc52", "error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ReportOutputSize))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordSessionStarted()
		m.RecordSpawnFailure()
		m.RecordSessionFinished("failed", time.Second, 1)
		m.RecordExitHandlerPanic()
		m.RecordReport("failed", 0)
		m.RecordClipboardWrite("system", nil)
	})
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteTextfile("/nonexistent/metrics.prom"))
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.RecordSpawnFailure()

	path := filepath.Join(t.TempDir(), "liku.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "liku_spawn_failures_total 1")
	assert.Contains(t, string(data), `liku_session_outcomes_total{outcome="spawn_failed"} 1`)
}
