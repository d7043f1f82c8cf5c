package scan

import (
	"errors"
	"net"
	"strconv"
	"syscall"
	"time"
)

// DefaultTimeout bounds a single connection attempt. It is the
// worst-case latency one port can add to a worker's loop.
const DefaultTimeout = 1 * time.Second

// ProbeOutcome classifies the result of a single connection attempt.
type ProbeOutcome int

const (
	// Open means the TCP handshake completed within the timeout.
	Open ProbeOutcome = iota

	// Closed covers connection refused and timeout. Both are expected,
	// non-exceptional outcomes for the vast majority of probed ports.
	Closed

	// ProbeError covers every other network failure (unreachable
	// network, resolution failure, ...). It is reported per port and
	// never aborts a scan.
	ProbeError
)

// Prober determines whether a single (host, port) pair accepts TCP
// connections within the given timeout. Implementations must be safe
// for concurrent use; the Coordinator calls Probe from many workers
// at once.
type Prober interface {
	Probe(host string, port int, timeout time.Duration) (ProbeOutcome, error)
}

// DialProber is the production Prober. It attempts a real TCP connect
// with net.DialTimeout and closes the connection immediately on
// success; the socket is released on every exit path.
type DialProber struct{}

// Probe dials host:port and classifies the result. The returned error
// is non-nil only for the ProbeError outcome and carries the cause.
func (DialProber) Probe(host string, port int, timeout time.Duration) (ProbeOutcome, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err == nil {
		_ = conn.Close()
		return Open, nil
	}
	if isExpectedClosed(err) {
		return Closed, nil
	}
	return ProbeError, err
}

// isExpectedClosed reports whether a dial error is one of the two
// ordinary "port is not open" outcomes: a timeout or a refusal.
func isExpectedClosed(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED)
}
