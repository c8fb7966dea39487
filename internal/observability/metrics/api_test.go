package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uni-magazine/portal/internal/observability/statsd"
)

func TestEmitAPIRequest(t *testing.T) {
	var rec statsd.Recorder
	EmitAPIRequest(&rec, APIRequest{
		Operation: "users.list",
		Method:    "GET",
		Status:    502,
		Duration:  20 * time.Millisecond,
		Err:       errors.New("bad gateway"),
	})

	counts := rec.Named("api.request")
	require.Len(t, counts, 1)
	assert.Equal(t, map[string]string{
		"operation":   "users.list",
		"method":      "GET",
		"result":      "error",
		"status":      "502",
		"error_class": "errors_errorstring",
	}, counts[0].Tags)

	timings := rec.Named("api.duration")
	require.Len(t, timings, 1)
	assert.InDelta(t, 20.0, timings[0].Value, 0.001)
}

func TestEmitHelpersTolerateNilSink(t *testing.T) {
	EmitAPIRequest(nil, APIRequest{})
	EmitCacheLookup(nil, "users", true)
	EmitLogin(nil, "success")
	EmitHTTPRequest(nil, HTTPRequest{})
}

func TestEmitHTTPRequest(t *testing.T) {
	var rec statsd.Recorder
	EmitHTTPRequest(&rec, HTTPRequest{Method: "GET", Section: "events", Status: 404, Duration: time.Millisecond})

	counts := rec.Named("http.request")
	require.Len(t, counts, 1)
	assert.Equal(t, "4xx", counts[0].Tags["status_class"])
	assert.Equal(t, "events", counts[0].Tags["section"])
	require.Len(t, rec.Named("http.duration"), 1)
}

func TestEmitCacheLookupAndLogin(t *testing.T) {
	var rec statsd.Recorder
	EmitCacheLookup(&rec, "events", false)
	EmitLogin(&rec, "unverified")

	assert.Equal(t, "miss", rec.Named("query_cache.lookup")[0].Tags["result"])
	assert.Equal(t, "unverified", rec.Named("auth.login")[0].Tags["outcome"])
}
