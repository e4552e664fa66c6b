package testutil

import (
	"fmt"
	"sync"
)

// IDSequence hands out deterministic object ids: "obj1", "obj2", ...
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type IDSequence struct {
	mu     sync.Mutex
	prefix string
	seq    int64
}

// NewIDSequence creates a sequence whose ids start with prefix.
// If prefix is empty, "obj" is used.
func NewIDSequence(prefix string) *IDSequence {
	if prefix == "" {
		prefix = "obj"
	}
	return &IDSequence{prefix: prefix}
}

// Next returns the next id. The first call returns "<prefix>1".
func (s *IDSequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("%s%d", s.prefix, s.seq)
}

// Reset restarts the sequence so the next id is "<prefix>1" again.
func (s *IDSequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = 0
}
