// Package core defines the shared types consumed by the logsink packages.
//
// It provides the Level type for severity tagging, the Entry type that
// represents a single log event handed to a sink, and the Field type for
// structured key-value pairs. Sinks treat an Entry as opaque and
// immutable; only a formatter ever turns one into bytes.
//
// Entry objects are pooled via sync.Pool so that producing an event does
// not allocate on the hot path. Callers obtain an Entry with GetEntry and
// return it with PutEntry once the sink has consumed it; PutEntry resets
// the entry but keeps the Fields backing array, so a recycled entry
// appends fields without growing a fresh slice.
//
// Field encodes values into fixed-size numeric slots (Int64, Float64)
// wherever possible so that common types like int, bool, and time.Time
// never escape to the heap, and renders them through AppendValue in the
// style of the strconv Append functions. The Any slot exists as a
// fallback for arbitrary types but causes an allocation.
package core
