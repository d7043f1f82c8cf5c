package scan

import (
	"errors"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDialProber_Open verifies that a real listening socket on loopback
// is classified as Open.
func TestDialProber_Open(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "loopback listener should start")
	defer func() { _ = listener.Close() }()

	port := listener.Addr().(*net.TCPAddr).Port

	outcome, probeErr := DialProber{}.Probe("127.0.0.1", port, time.Second)
	assert.Equal(t, Open, outcome)
	assert.NoError(t, probeErr)
}

// TestDialProber_Closed verifies that a refused connection is the
// ordinary Closed outcome, not an error. Closing the listener first
// frees the port so the subsequent dial is refused.
func TestDialProber_Closed(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	outcome, probeErr := DialProber{}.Probe("127.0.0.1", port, time.Second)
	assert.Equal(t, Closed, outcome)
	assert.NoError(t, probeErr, "refusal is an expected non-event")
}

// TestDialProber_ProbeError verifies that a resolution failure is
// surfaced as ProbeError with the cause attached. The .invalid TLD is
// reserved and guaranteed not to resolve.
func TestDialProber_ProbeError(t *testing.T) {
	outcome, probeErr := DialProber{}.Probe("portsweep.invalid", 80, time.Second)
	assert.Equal(t, ProbeError, outcome)
	assert.Error(t, probeErr, "a resolution failure must carry its cause")
}

// timeoutErr is a synthetic net.Error with Timeout() == true, standing
// in for a dial that exceeded its deadline.
type timeoutErr struct{}

func (timeoutErr) Error() string { return "dial tcp: i/o timeout" }
func (timeoutErr) Timeout() bool { return true }
func (timeoutErr) Temporary() bool { return true }

// TestIsExpectedClosed covers the classification boundary directly with
// synthetic errors, independent of real network conditions.
func TestIsExpectedClosed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "timeout",
			err:  timeoutErr{},
			want: true,
		},
		{
			name: "wrapped timeout",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: timeoutErr{}},
			want: true,
		},
		{
			name: "connection refused",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			want: true,
		},
		{
			name: "network unreachable",
			err:  &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ENETUNREACH)},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("no such host"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isExpectedClosed(tt.err))
		})
	}
}
