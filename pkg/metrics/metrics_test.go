package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.IncTokenOutcome("set")
	m.IncTokenOutcome("set")
	m.IncTokenOutcome("denied")
	m.IncReceived()
	m.IncResponse()
	m.IncSend("failed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.tokens.WithLabelValues("set")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tokens.WithLabelValues("denied")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.received))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.responses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sends.WithLabelValues("failed")))
}

func TestHandlerExposesSeries(t *testing.T) {
	m := New()
	m.IncSend("sent")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `push_demo_test_sends_total{result="sent"} 1`)
}
