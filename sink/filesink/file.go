package filesink

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"github.com/philipp01105/logsink/core"
	"github.com/philipp01105/logsink/formatter"
	"github.com/philipp01105/logsink/sink"
)

// ShareMode selects how a file sink coordinates with writers in other
// processes. It is fixed at construction; all modes satisfy sink.Sink.
type ShareMode int

const (
	// ShareNone assumes this process is the only writer. Fastest;
	// pointing two processes at one path yields interleaved output.
	ShareNone ShareMode = iota
	// ShareAtomic relies on the platform guarantee that a single write
	// on an append-mode handle is indivisible across processes.
	ShareAtomic
	// ShareMutex serializes writers from different processes with a
	// named cross-process lock derived from the path.
	ShareMutex
)

// String returns the string representation of the mode
func (m ShareMode) String() string {
	switch m {
	case ShareNone:
		return "ShareNone"
	case ShareAtomic:
		return "ShareAtomic"
	case ShareMutex:
		return "ShareMutex"
	default:
		return "Unknown"
	}
}

// New constructs the file sink variant selected by mode.
func New(filename string, f formatter.Formatter, mode ShareMode, opts ...Option) (sink.Sink, error) {
	switch mode {
	case ShareNone:
		return NewExclusive(filename, f, opts...)
	case ShareAtomic:
		return NewAtomic(filename, f, opts...)
	case ShareMutex:
		return NewMutex(filename, f, opts...)
	default:
		return nil, fmt.Errorf("filesink: unknown share mode %d", mode)
	}
}

// fileBase contains the state and helpers shared by all file sink
// variants. Every field is either fixed at construction or mutated only
// under mu.
type fileBase struct {
	filename        string
	file            *os.File
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	encoder         *encoding.Encoder
	limit           int64
	header          HeaderFunc
	pendingHeader   bool
	headerInvoked   bool
	headerEntries   []*core.Entry
	headerBytes     []byte
	scratch         bytes.Buffer
	mu              sync.Mutex
	closed          bool
	stats           *sink.Stats
	diag            *zap.Logger
}

// initFileBase validates the construction arguments, creates missing
// parent directories, opens the file with the given flags, and arms the
// pending-header flag when a provider was supplied and the file was
// absent or empty. It returns the file's size at construction.
func initFileBase(b *fileBase, filename string, f formatter.Formatter, flag int, o *options) (int64, error) {
	if filename == "" {
		return 0, ErrEmptyFilename
	}
	if f == nil {
		return 0, ErrNilFormatter
	}
	if o.limit < 0 {
		return 0, ErrNegativeSizeLimit
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return 0, err
	}

	file, err := os.OpenFile(filename, flag, 0o644)
	if err != nil {
		return 0, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return 0, err
	}
	size := info.Size()

	b.filename = filename
	b.file = file
	b.formatter = f
	b.limit = o.limit
	b.header = o.header
	b.pendingHeader = o.header != nil && size == 0
	b.stats = sink.NewStats()
	b.diag = o.diag
	b.scratch.Grow(256)

	// Cache WriterFormatter to render straight into the scratch buffer
	b.writerFormatter, _ = f.(formatter.WriterFormatter)

	if o.encoding != nil {
		b.encoder = o.encoding.NewEncoder()
	}

	return size, nil
}

// render appends the formatted entry to the scratch buffer. The caller
// holds mu and is responsible for draining scratch afterwards, success
// or not.
func (b *fileBase) render(entry *core.Entry) error {
	if b.writerFormatter != nil {
		return b.writerFormatter.FormatTo(entry, &b.scratch)
	}
	data, err := b.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = b.scratch.Write(data)
	return err
}

// headerBatch returns the rendered header entries as one encoded byte
// batch. The provider is invoked at most once per sink; its entries are
// kept so a failed render can be retried on the next append without
// invoking it again, and the rendered bytes are cached so a failed
// write retries the identical batch. The caller holds mu and clears
// pendingHeader only after the batch has been written in full.
func (b *fileBase) headerBatch() ([]byte, error) {
	if b.headerBytes != nil {
		return b.headerBytes, nil
	}
	if !b.headerInvoked {
		b.headerEntries = b.header()
		b.headerInvoked = true
	}

	defer b.scratch.Reset()
	for _, he := range b.headerEntries {
		if err := b.render(he); err != nil {
			return nil, err
		}
	}
	data, err := b.encoded()
	if err != nil {
		return nil, err
	}
	b.headerBytes = append([]byte(nil), data...)
	b.headerEntries = nil
	return b.headerBytes, nil
}

// headerDone marks the header as written and drops the cached batch.
func (b *fileBase) headerDone() {
	b.pendingHeader = false
	b.headerBytes = nil
}

// encoded returns the scratch contents, transformed when an output
// encoding is configured. The returned slice is only valid until the
// next render.
func (b *fileBase) encoded() ([]byte, error) {
	if b.encoder == nil {
		return b.scratch.Bytes(), nil
	}
	return b.encoder.Bytes(b.scratch.Bytes())
}

// Stats returns a snapshot of the sink's counters
func (b *fileBase) Stats() sink.Snapshot {
	return b.stats.GetSnapshot()
}
