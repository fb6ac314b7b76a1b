package core

import (
	"sync"
	"time"
)

// Level represents the severity of a log entry
type Level int8

const (
	// DebugLevel for detailed debugging information
	DebugLevel Level = iota
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// FatalLevel for fatal messages
	FatalLevel
	// PanicLevel for panic messages
	PanicLevel
)

var levelNames = [...]string{
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO",
	WarnLevel:  "WARN",
	ErrorLevel: "ERROR",
	FatalLevel: "FATAL",
	PanicLevel: "PANIC",
}

// String returns the string representation of the level
func (l Level) String() string {
	if int(l) < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// Entry represents a single log event with all its metadata.
// Sinks never mutate an Entry; it is rendered to bytes by a formatter
// and may be shared between several sinks at once.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  []Field
	Caller  CallerInfo
}

var entryPool = sync.Pool{
	New: func() interface{} { return new(Entry) },
}

// GetEntry retrieves a clean Entry from the pool with Time set to now
func GetEntry() *Entry {
	e := entryPool.Get().(*Entry)
	e.Time = time.Now()
	return e
}

// PutEntry returns an Entry to the pool. The entry is fully reset here,
// keeping only the Fields backing array for reuse.
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	*e = Entry{Fields: e.Fields[:0]}
	entryPool.Put(e)
}
