package statsd

import (
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  portal.web  ": "portal.web",
		"..foo..":        "foo",
		".":              "",
		"":               "",
	}
	for input, want := range tests {
		assert.Equal(t, want, sanitizePrefix(input), input)
	}
}

func TestNormalizeMetricName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" api/request ":   "api_request",
		"foo..bar":        "foo.bar",
		"multi  space":    "multi__space",
		"users/{id}/role": "users_{id}_role",
	}
	for input, want := range tests {
		assert.Equal(t, want, normalizeMetricName(input), input)
	}
}

func TestFormatLine(t *testing.T) {
	t.Parallel()

	global := map[string]string{"env": "prod", " service ": " portal "}
	local := map[string]string{"result": " success ", "": "ignored", "env": "stage"}

	got := formatLine("portal", "api.request", "1", "c", global, local)
	assert.Equal(t, "portal.api.request:1|c|#env:stage,result:success,service:portal", got)

	assert.Equal(t, "x:2|g", formatLine("", "x", "2", "g", nil, nil))
	assert.Empty(t, formatLine("portal", "  ", "1", "c", nil, nil))
}

func TestClientWritesDatagrams(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	c := &Client{prefix: "portal", globalTags: map[string]string{}, conn: clientConn, logger: slog.Default()}
	require.True(t, c.Enabled())

	done := make(chan string, 1)
	go func() {
		buf := make([]byte, 256)
		n, _ := peerConn.Read(buf)
		done <- string(buf[:n])
	}()

	c.Timing("api.duration", 1500*time.Microsecond, map[string]string{"op": "login"})
	select {
	case line := <-done:
		assert.Equal(t, "portal.api.duration:1.5|ms|#op:login", line)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for datagram")
	}

	require.NoError(t, c.Close())
	assert.False(t, c.Enabled())
	require.NoError(t, c.Close())
}

func TestNilClientIsNoop(t *testing.T) {
	t.Parallel()

	var c *Client
	assert.False(t, c.Enabled())
	c.Count("x", 1, nil)
	require.NoError(t, c.Close())
}

func TestNewClientDisabledWithoutAddress(t *testing.T) {
	t.Parallel()

	c, err := NewClient(Config{Enabled: true, Address: "   "})
	require.NoError(t, err)
	assert.False(t, c.Enabled())
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Enabled: true, Address: "bad address"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "statsd dial"))
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	var r Recorder
	r.Count("a", 2, map[string]string{"k": "v"})
	r.Timing("b", time.Second, nil)
	r.Count("a", 1, nil)

	got := r.Named("a")
	require.Len(t, got, 2)
	assert.InDelta(t, 2.0, got[0].Value, 0)
	assert.Equal(t, "v", got[0].Tags["k"])
	assert.InDelta(t, 1000.0, r.Named("b")[0].Value, 0)
}
