package scan

import (
	"sync"
	"time"
)

// Params are the immutable inputs to a single scan. They are shared
// read-only by every worker; nothing mutates them after Run starts.
//
// Concurrency is taken literally: Run spawns exactly that many workers.
// A non-positive value spawns none and yields an empty result, which is
// why callers are expected to validate first (model.ScanRequest does).
type Params struct {
	Host        string
	StartPort   int
	EndPort     int
	Concurrency int

	// Timeout bounds each individual probe. Zero or negative selects
	// DefaultTimeout.
	Timeout time.Duration
}

// Result is the aggregate outcome of one scan.
//
// OpenPorts is in discovery order, which depends on worker scheduling
// and is not numeric order. Elapsed is measured from just before the
// first worker starts until after the last worker has terminated.
type Result struct {
	OpenPorts []int
	Elapsed   time.Duration
}

// ScanEvents receives out-of-band notifications while a scan is in
// flight. Workers invoke these methods concurrently, so implementations
// must be safe for concurrent use.
type ScanEvents interface {
	// PortOpen fires as soon as a port is confirmed open, before the
	// scan finishes.
	PortOpen(port int)

	// PortError fires for a per-port probe anomaly. The scan continues
	// regardless.
	PortError(port int, err error)
}

// NopEvents discards all notifications.
type NopEvents struct{}

func (NopEvents) PortOpen(int) {}
func (NopEvents) PortError(int, error) {}

// Coordinator orchestrates the concurrent draining of a port range:
// fan out a fixed worker pool over a shared PortSource, merge open
// ports under a lock, fan back in, and report the elapsed time.
//
// The coordinator owns the two mutable shared resources of a scan —
// the source cursor and the open-port collection — each behind its own
// lock so that handing out work never contends with recording results.
type Coordinator struct {
	prober Prober
	events ScanEvents
}

// NewCoordinator builds a Coordinator. A nil prober selects the real
// DialProber; a nil events sink discards notifications.
func NewCoordinator(prober Prober, events ScanEvents) *Coordinator {
	if prober == nil {
		prober = DialProber{}
	}
	if events == nil {
		events = NopEvents{}
	}
	return &Coordinator{prober: prober, events: events}
}

// Run scans [p.StartPort, p.EndPort] on p.Host and blocks until every
// worker has terminated.
//
// Guarantees:
//   - Every port in the range is probed exactly once across all
//     workers combined, for any Concurrency >= 1.
//   - No worker goroutine outlives Run. The join happens before the
//     open-port slice is read, so the returned Result is immutable.
//   - Per-port anomalies are reported through ScanEvents and never
//     abort the scan; worst case is an empty result.
//
// StartPort > EndPort is an empty scan, not an error: zero probes,
// zero open ports, near-zero elapsed time.
func (c *Coordinator) Run(p Params) Result {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	source := NewPortSource(p.StartPort, p.EndPort)

	var (
		openMu    sync.Mutex
		openPorts []int
	)

	started := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < p.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				port, ok := source.Next()
				if !ok {
					return
				}
				outcome, err := c.prober.Probe(p.Host, port, timeout)
				switch outcome {
				case Open:
					openMu.Lock()
					openPorts = append(openPorts, port)
					openMu.Unlock()
					c.events.PortOpen(port)
				case ProbeError:
					c.events.PortError(port, err)
				}
			}
		}()
	}
	wg.Wait()

	return Result{
		OpenPorts: openPorts,
		Elapsed:   time.Since(started),
	}
}
