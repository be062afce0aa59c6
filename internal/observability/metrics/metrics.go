// Package metrics emits the dashboard's request and backend metrics to a statsd.Sink.
package metrics

import (
	"strconv"
	"strings"
	"time"

	obserrors "github.com/target/boxoffice/internal/observability/errors"
	"github.com/target/boxoffice/internal/observability/statsd"
)

// Result tag values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// BackendCall describes one exchange with the ticketing API.
type BackendCall struct {
	Method   string
	Path     string
	Status   int
	Duration time.Duration
	// Err is a transport failure; non-2xx statuses are reported through Status.
	Err error
}

// EmitBackendCall records backend.request and backend.latency.
func EmitBackendCall(sink statsd.Sink, in BackendCall) {
	if sink == nil {
		return
	}
	tags := map[string]string{
		"method":   in.Method,
		"resource": Resource(in.Path),
		"status":   StatusClass(in.Status),
		"result":   ResultSuccess,
	}
	if in.Err != nil || in.Status >= 400 {
		tags["result"] = ResultError
	}
	if in.Err != nil {
		tags["error_class"] = obserrors.Classify(in.Err)
	}
	sink.Count("backend.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("backend.latency", in.Duration, CloneTags(tags))
	}
}

// HTTPRequest describes one request served by the dashboard.
type HTTPRequest struct {
	Method   string
	Path     string
	Status   int
	Duration time.Duration
}

// EmitHTTPRequest records http.request and http.latency.
func EmitHTTPRequest(sink statsd.Sink, in HTTPRequest) {
	if sink == nil {
		return
	}
	route := Route(in.Path)
	if in.Status == 404 {
		route = "unmatched"
	}
	tags := map[string]string{
		"method": in.Method,
		"route":  route,
		"status": StatusClass(in.Status),
	}
	sink.Count("http.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("http.latency", in.Duration, CloneTags(tags))
	}
}

// Resource names the API collection a backend path addresses, e.g. "events" or "sections".
func Resource(path string) string {
	segs := splitPath(path)
	if len(segs) > 0 && segs[0] == "api" {
		segs = segs[1:]
	}
	switch {
	case len(segs) == 0:
		return "root"
	case len(segs) >= 3 && segs[0] == "venues" && segs[2] == "sections":
		return "sections"
	default:
		return segs[0]
	}
}

// Route groups dashboard paths without identifiers: "/api/events/42" is "api_events",
// "/venues/7" is "venues".
func Route(path string) string {
	segs := splitPath(path)
	switch {
	case len(segs) == 0:
		return "root"
	case segs[0] == "api" && len(segs) > 1:
		return "api_" + segs[1]
	default:
		return segs[0]
	}
}

// StatusClass buckets an HTTP status into "2xx", "4xx" and so on; 0 becomes "none".
func StatusClass(status int) string {
	if status <= 0 {
		return "none"
	}
	return strconv.Itoa(status/100) + "xx"
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

func splitPath(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
