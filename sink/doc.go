// Package sink defines the contract shared by all log sinks and a
// fan-out implementation that feeds several sinks at once.
//
// A Sink durably records formatter-rendered entries. Append is the
// primary operation: it reports false, without writing, once the sink's
// configured size limit has been reached, which tells the owning
// rotation layer to retire this sink and construct the next one. Write
// is the fire-and-forget convenience that ignores the overflow signal.
// Sync forces buffered bytes to durable storage; Close flushes and
// releases every handle the sink owns and is idempotent.
//
// Implementations must be safe for concurrent use from multiple
// goroutines; every operation runs as one critical section, so entries
// appended by concurrent callers land whole and in lock-grant order.
//
// All sinks in this module track written, overflowed, dropped, and error
// counts via the Stats type, exposed through the StatsProvider interface
// for runtime monitoring.
package sink
