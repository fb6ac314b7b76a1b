package filesink

import (
	"bufio"
	"os"

	"go.uber.org/multierr"

	"github.com/philipp01105/logsink/core"
	"github.com/philipp01105/logsink/formatter"
)

// ExclusiveSink owns its destination file for the whole process: no
// other process may write to the same path while it is open. That
// assumption lets it track the file size with an in-memory counter
// seeded from one stat at construction, so the overflow check never
// issues a system call.
//
// By default every append flushes the text layer, so entries are
// visible to readers immediately; WithBufferedWrites defers the flush
// to Sync or Close.
type ExclusiveSink struct {
	fileBase
	count    *countingWriter
	bufw     *bufio.Writer
	buffered bool
}

// NewExclusive creates the single-process file sink.
func NewExclusive(filename string, f formatter.Formatter, opts ...Option) (*ExclusiveSink, error) {
	o := applyOptions(opts)

	s := &ExclusiveSink{buffered: o.buffered}
	size, err := initFileBase(&s.fileBase, filename, f, os.O_CREATE|os.O_WRONLY|os.O_APPEND, o)
	if err != nil {
		return nil, err
	}

	s.bufw = bufio.NewWriterSize(s.file, 4096)
	s.count = &countingWriter{w: s.bufw, total: size}
	return s, nil
}

// Append records one entry. The pending header, if any, is written
// first and is never checked against the size limit; the entry itself
// is refused once the counted size has reached the limit.
func (s *ExclusiveSink) Append(entry *core.Entry) (bool, error) {
	if entry == nil {
		return false, ErrNilEntry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}

	if s.pendingHeader {
		if err := s.writeHeader(); err != nil {
			s.stats.IncrementErrors()
			return false, err
		}
	}

	if s.count.count() >= s.limit {
		s.stats.IncrementOverflowed()
		return false, nil
	}

	if err := s.writeRecord(entry); err != nil {
		s.stats.IncrementErrors()
		return false, err
	}
	if !s.buffered {
		if err := s.bufw.Flush(); err != nil {
			s.stats.IncrementErrors()
			return false, err
		}
	}

	s.stats.IncrementWritten()
	return true, nil
}

// Write records one entry, ignoring the overflow result
func (s *ExclusiveSink) Write(entry *core.Entry) error {
	_, err := s.Append(entry)
	return err
}

// Sync flushes the text layer and forces the file to durable storage
func (s *ExclusiveSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if err := s.bufw.Flush(); err != nil {
		return err
	}
	return s.file.Sync()
}

// Close flushes buffered entries and closes the file. Repeated calls
// return nil.
func (s *ExclusiveSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	err := s.bufw.Flush()
	err = multierr.Append(err, s.file.Sync())
	return multierr.Append(err, s.file.Close())
}

// writeHeader writes the header batch through the counting layer, so
// the size observed by subsequent overflow checks includes it. The
// pending flag is cleared only once the batch landed; a render or write
// failure leaves it armed for the next append. The caller holds mu.
func (s *ExclusiveSink) writeHeader() error {
	data, err := s.headerBatch()
	if err != nil {
		return err
	}
	if _, err := s.count.Write(data); err != nil {
		return err
	}
	s.headerDone()
	return nil
}

// writeRecord renders one entry and hands the encoded bytes to the
// counting writer. The scratch buffer is drained whether or not the
// write succeeds.
func (s *ExclusiveSink) writeRecord(entry *core.Entry) error {
	defer s.scratch.Reset()

	if err := s.render(entry); err != nil {
		return err
	}
	data, err := s.encoded()
	if err != nil {
		return err
	}
	_, err = s.count.Write(data)
	return err
}
