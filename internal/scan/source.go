package scan

import "sync"

// PortSource hands out each port in an inclusive integer range exactly
// once. It is the single shared work queue for a scan: every worker
// pulls its next port from the same source, and the mutex guarantees
// that no two workers ever observe the same cursor value.
//
// The range bounds are taken literally. A source built with start > end
// is empty and reports exhaustion on the first call; bounds outside
// 1-65535 are iterated as-is, so callers wanting standard TCP port
// semantics must validate before construction.
type PortSource struct {
	mu   sync.Mutex
	next int
	end  int
}

// NewPortSource creates a source over the inclusive range [start, end].
func NewPortSource(start, end int) *PortSource {
	return &PortSource{next: start, end: end}
}

// Next returns the next port in the range and advances the cursor.
// The second return value is false once the range is exhausted; after
// that every subsequent call keeps returning false.
func (s *PortSource) Next() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next > s.end {
		return 0, false
	}
	port := s.next
	s.next++
	return port, true
}
