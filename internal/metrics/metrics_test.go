package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/api/v1/video/:videoId", 200, 15*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/video/:videoId", 404, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/video/:videoId", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/video/:videoId", "404")))
}

func TestUploadAndCascadeCounters(t *testing.T) {
	m := New()
	m.ObserveUpload("video", true)
	m.ObserveUpload("video", false)
	m.ObserveUpload("video", false)
	m.CascadeFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.uploads.WithLabelValues("video", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cascadeFailures))
}
