// Package filesink provides the append-only file sinks: three
// interchangeable variants of sink.Sink that durably record
// formatter-rendered entries into one destination file.
//
// The variant is selected once, at construction, by ShareMode:
//
//   - ExclusiveSink (ShareNone) assumes single-process ownership and
//     tracks the file size with an in-memory counter, so the overflow
//     check costs no system call.
//   - AtomicSink (ShareAtomic) lets unrelated processes append to one
//     path by buffering each record fully in memory and issuing exactly
//     one append-mode write per record.
//   - MutexSink (ShareMutex) serializes unrelated processes with a
//     named cross-process lock derived from the canonical path, for
//     environments where append-mode atomicity cannot be assumed.
//
// All variants share the same size-limit policy: the limit is compared
// against the size observed before the current entry, and an accepted
// entry is always written whole, so the file can exceed the limit by at
// most one entry (or one header batch). Once the observed size reaches
// the limit, Append returns false and writes nothing; the owning
// rotation layer is expected to retire the sink and open a new segment.
//
// When a header provider is configured and the file was absent or empty
// at construction, the header entries are written exactly once, before
// the first ordinary entry, and are never counted against the limit.
//
// The file is a plain byte stream of rendered records with no framing,
// length prefixes, or checksums; record boundaries are whatever the
// formatter emits. There are no internal retries: I/O errors propagate
// to the caller, and retry policy belongs to the owning pipeline.
package filesink
