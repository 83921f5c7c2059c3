package observability

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RequestIDKey is the fiber Locals key holding the request id.
const RequestIDKey = "request_id"

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	started       time.Time
	requestCount  map[string]int64
	errorCount    map[string]int64
	totalDuration map[string]time.Duration
}

// RouteStats aggregates one method/route/status combination.
type RouteStats struct {
	Route     string  `json:"route"`
	Method    string  `json:"method"`
	Status    int     `json:"status"`
	Count     int64   `json:"count"`
	AvgMillis float64 `json:"avg_ms"`
}

// ErrorStats counts error codes per route.
type ErrorStats struct {
	Route  string `json:"route"`
	Method string `json:"method"`
	Code   string `json:"code"`
	Count  int64  `json:"count"`
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	UptimeSeconds int64        `json:"uptime_seconds"`
	TotalRequests int64        `json:"total_requests"`
	Requests      []RouteStats `json:"requests"`
	Errors        []ErrorStats `json:"errors"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		started:       time.Now(),
		requestCount:  make(map[string]int64),
		errorCount:    make(map[string]int64),
		totalDuration: make(map[string]time.Duration),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, strconv.Itoa(status))
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.totalDuration[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := pathKey(path, method, code)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Snapshot copies the current counters, sorted by route then method.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		UptimeSeconds: int64(time.Since(m.started).Seconds()),
		Requests:      make([]RouteStats, 0, len(m.requestCount)),
		Errors:        make([]ErrorStats, 0, len(m.errorCount)),
	}
	for key, count := range m.requestCount {
		route, method, last := splitKey(key)
		status, _ := strconv.Atoi(last)
		avg := float64(m.totalDuration[key]) / float64(count) / float64(time.Millisecond)
		snap.Requests = append(snap.Requests, RouteStats{Route: route, Method: method, Status: status, Count: count, AvgMillis: avg})
		snap.TotalRequests += count
	}
	for key, count := range m.errorCount {
		route, method, code := splitKey(key)
		snap.Errors = append(snap.Errors, ErrorStats{Route: route, Method: method, Code: code, Count: count})
	}

	sort.Slice(snap.Requests, func(i, j int) bool {
		a, b := snap.Requests[i], snap.Requests[j]
		if a.Route != b.Route {
			return a.Route < b.Route
		}
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		return a.Status < b.Status
	})
	sort.Slice(snap.Errors, func(i, j int) bool {
		a, b := snap.Errors[i], snap.Errors[j]
		if a.Route != b.Route {
			return a.Route < b.Route
		}
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		return a.Code < b.Code
	})
	return snap
}

func pathKey(path, method, suffix string) string {
	return path + "|" + method + "|" + suffix
}

func splitKey(key string) (string, string, string) {
	parts := strings.SplitN(key, "|", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}
