package sink

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/logsink/core"
)

// MultiSink fans a single entry out to several sinks.
//
// Append reports false as soon as any child has overflowed, so the
// rotation layer retires the whole group together; children that still
// have room keep accepting until then. Errors from children are
// combined and returned together rather than short-circuiting, so one
// failing destination never starves the others.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink that duplicates every entry to all children
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Append records the entry in every child. It returns true only when
// every child accepted the entry.
func (m *MultiSink) Append(entry *core.Entry) (bool, error) {
	written := true
	var err error
	for _, s := range m.sinks {
		ok, aerr := s.Append(entry)
		written = written && ok
		err = multierr.Append(err, aerr)
	}
	return written, err
}

// Write records the entry in every child, ignoring overflow results
func (m *MultiSink) Write(entry *core.Entry) error {
	_, err := m.Append(entry)
	return err
}

// Sync flushes every child
func (m *MultiSink) Sync() error {
	var err error
	for _, s := range m.sinks {
		err = multierr.Append(err, s.Sync())
	}
	return err
}

// Close closes every child
func (m *MultiSink) Close() error {
	var err error
	for _, s := range m.sinks {
		err = multierr.Append(err, s.Close())
	}
	return err
}
