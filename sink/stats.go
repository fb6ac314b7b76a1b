package sink

import (
	"sync/atomic"
)

// Stats tracks sink counters. All methods are safe for concurrent use.
type Stats struct {
	// WrittenTotal counts entries recorded in the file
	WrittenTotal uint64
	// OverflowedTotal counts appends refused because the size limit was reached
	OverflowedTotal uint64
	// DroppedTotal counts entries dropped without an overflow signal
	// (cross-process lock wait timeouts)
	DroppedTotal uint64
	// ErrorsTotal counts appends that failed with an I/O or formatter error
	ErrorsTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

// IncrementWritten atomically increments the written counter
func (s *Stats) IncrementWritten() {
	atomic.AddUint64(&s.WrittenTotal, 1)
}

// IncrementOverflowed atomically increments the overflowed counter
func (s *Stats) IncrementOverflowed() {
	atomic.AddUint64(&s.OverflowedTotal, 1)
}

// IncrementDropped atomically increments the dropped counter
func (s *Stats) IncrementDropped() {
	atomic.AddUint64(&s.DroppedTotal, 1)
}

// IncrementErrors atomically increments the error counter
func (s *Stats) IncrementErrors() {
	atomic.AddUint64(&s.ErrorsTotal, 1)
}

// GetWritten returns the written count
func (s *Stats) GetWritten() uint64 {
	return atomic.LoadUint64(&s.WrittenTotal)
}

// GetOverflowed returns the overflowed count
func (s *Stats) GetOverflowed() uint64 {
	return atomic.LoadUint64(&s.OverflowedTotal)
}

// GetDropped returns the dropped count
func (s *Stats) GetDropped() uint64 {
	return atomic.LoadUint64(&s.DroppedTotal)
}

// GetErrors returns the error count
func (s *Stats) GetErrors() uint64 {
	return atomic.LoadUint64(&s.ErrorsTotal)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.WrittenTotal, 0)
	atomic.StoreUint64(&s.OverflowedTotal, 0)
	atomic.StoreUint64(&s.DroppedTotal, 0)
	atomic.StoreUint64(&s.ErrorsTotal, 0)
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	WrittenTotal    uint64
	OverflowedTotal uint64
	DroppedTotal    uint64
	ErrorsTotal     uint64
}

// GetSnapshot returns a snapshot of the current counters
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		WrittenTotal:    s.GetWritten(),
		OverflowedTotal: s.GetOverflowed(),
		DroppedTotal:    s.GetDropped(),
		ErrorsTotal:     s.GetErrors(),
	}
}
