package sink

import (
	"github.com/philipp01105/logsink/core"
)

// Sink is the capability set every log sink implements.
type Sink interface {
	// Append records one entry. It returns true when the entry was
	// written (after any pending file header), and false, with nothing
	// written, when the size limit had already been reached. A nil
	// entry is an error.
	Append(entry *core.Entry) (bool, error)

	// Write records one entry, ignoring the overflow result.
	Write(entry *core.Entry) error

	// Sync flushes buffered bytes and forces them to durable storage.
	Sync() error

	// Close flushes pending bytes, then releases the file and any
	// synchronization handles. Calling Close again returns nil.
	Close() error
}

// StatsProvider is implemented by sinks that expose runtime counters.
type StatsProvider interface {
	Stats() Snapshot
}
