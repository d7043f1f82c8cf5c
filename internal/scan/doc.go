// Package scan implements the concurrent TCP port scanning engine.
//
// The engine is built from three pieces:
//   - PortSource: a mutex-guarded cursor that hands each port in an
//     inclusive range to exactly one worker, exactly once.
//   - Prober: a single bounded-timeout connection attempt against one
//     (host, port) pair. DialProber is the real implementation; tests
//     substitute fakes.
//   - Coordinator: fans a fixed number of workers out over the source,
//     collects open ports under a lock, joins all workers, and reports
//     the elapsed wall-clock time.
//
// The engine performs no argument validation and never writes to the
// console. Callers validate parameters up front (see internal/model)
// and receive per-port notifications through the ScanEvents interface.
package scan
