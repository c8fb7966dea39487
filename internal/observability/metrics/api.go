// Package metrics standardises the metric names and tags the portal emits.
package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/uni-magazine/portal/internal/observability/errors"
	"github.com/uni-magazine/portal/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultHit     = "hit"
	ResultMiss    = "miss"
)

// APIRequest captures one outbound portal API call.
type APIRequest struct {
	Operation string
	Method    string
	Status    int
	Duration  time.Duration
	Err       error
}

// EmitAPIRequest emits api.request and api.duration for one call.
func EmitAPIRequest(sink statsd.Sink, in APIRequest) {
	if sink == nil {
		return
	}

	result := ResultSuccess
	if in.Err != nil {
		result = ResultError
	}
	tags := map[string]string{
		"operation": in.Operation,
		"method":    in.Method,
		"result":    result,
	}
	if in.Status > 0 {
		tags["status"] = strconv.Itoa(in.Status)
	}
	if class := obserrors.Classify(in.Err); class != "" {
		tags["error_class"] = class
	}

	sink.Count("api.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("api.duration", in.Duration, CloneTags(tags))
	}
}

// EmitCacheLookup counts query cache hits and misses per entity.
func EmitCacheLookup(sink statsd.Sink, entity string, hit bool) {
	if sink == nil {
		return
	}
	result := ResultMiss
	if hit {
		result = ResultHit
	}
	sink.Count("query_cache.lookup", 1, map[string]string{"entity": entity, "result": result})
}

// EmitLogin counts login attempts by outcome (success, unverified, rejected, error).
func EmitLogin(sink statsd.Sink, outcome string) {
	if sink == nil {
		return
	}
	sink.Count("auth.login", 1, map[string]string{"outcome": outcome})
}

// HTTPRequest captures one inbound request served by the portal.
type HTTPRequest struct {
	Method   string
	Section  string
	Status   int
	Duration time.Duration
}

// EmitHTTPRequest emits http.request and http.duration, tagged by status class.
func EmitHTTPRequest(sink statsd.Sink, in HTTPRequest) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"method":       in.Method,
		"section":      in.Section,
		"status_class": strconv.Itoa(in.Status/100) + "xx",
	}
	sink.Count("http.request", 1, tags)
	sink.Timing("http.duration", in.Duration, CloneTags(tags))
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
