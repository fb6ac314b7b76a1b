package filesink

import (
	"io"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/logsink/core"
	"github.com/philipp01105/logsink/formatter"
)

// MutexSink serializes writers from different processes with a named
// cross-process lock, for platforms and filesystems where append-mode
// write atomicity cannot be relied upon. The lock identity is derived
// from the canonicalized destination path, so every process opening the
// same file computes the same lock.
//
// The lock wait is bounded. On timeout the entry is dropped and Append
// still reports true: the caller is not signalled to rotate, and a lost
// line is preferred over blocking the caller indefinitely. A lock left
// acquired by a crashed holder is granted normally, with a diagnostic
// note; the protected operation is a single seek, length check, and
// write, which cannot leave the file torn even when interrupted.
type MutexSink struct {
	fileBase
	lock    *namedLock
	timeout time.Duration
}

// NewMutex creates the lock-coordinated multi-process file sink.
func NewMutex(filename string, f formatter.Formatter, opts ...Option) (*MutexSink, error) {
	o := applyOptions(opts)

	s := &MutexSink{timeout: o.lockTimeout}
	// No O_APPEND: the write offset is positioned with an explicit
	// seek under the lock, because other processes move the end of
	// the file between appends.
	if _, err := initFileBase(&s.fileBase, filename, f, os.O_CREATE|os.O_WRONLY, o); err != nil {
		return nil, err
	}

	lock, err := newNamedLock(filename)
	if err != nil {
		s.file.Close()
		return nil, err
	}
	s.lock = lock
	return s, nil
}

// Append records one entry under the cross-process lock. On lock
// timeout, it reports (true, nil) without writing: the entry is dropped
// rather than signalling overflow or blocking forever.
func (s *MutexSink) Append(entry *core.Entry) (ok bool, err error) {
	if entry == nil {
		return false, ErrNilEntry
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}

	acquired, abandoned, err := s.lock.acquire(s.timeout)
	if err != nil {
		s.stats.IncrementErrors()
		return false, err
	}
	if !acquired {
		s.stats.IncrementDropped()
		s.diag.Warn("cross-process lock wait timed out, dropping entry",
			zap.String("file", s.filename),
			zap.Duration("timeout", s.timeout))
		return true, nil
	}
	defer func() {
		err = multierr.Append(err, s.lock.release())
	}()

	if abandoned {
		s.diag.Warn("cross-process lock was abandoned by a previous holder",
			zap.String("file", s.filename))
	}

	// Another process may have appended since this handle's cursor was
	// last positioned
	end, err := s.file.Seek(0, io.SeekEnd)
	if err != nil {
		s.stats.IncrementErrors()
		return false, err
	}

	if s.pendingHeader {
		n, herr := s.writeHeader()
		if herr != nil {
			s.stats.IncrementErrors()
			return false, herr
		}
		end += n
	}

	if end >= s.limit {
		s.stats.IncrementOverflowed()
		return false, nil
	}

	if werr := s.writeRecord(entry); werr != nil {
		s.stats.IncrementErrors()
		return false, werr
	}
	if serr := s.file.Sync(); serr != nil {
		s.stats.IncrementErrors()
		return false, serr
	}

	s.stats.IncrementWritten()
	return true, nil
}

// Write records one entry, ignoring the overflow result
func (s *MutexSink) Write(entry *core.Entry) error {
	_, err := s.Append(entry)
	return err
}

// Sync forces everything written so far to durable storage
func (s *MutexSink) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	return s.file.Sync()
}

// Close closes the file and releases the cross-process lock handle.
// Repeated calls return nil.
func (s *MutexSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	err := s.file.Sync()
	err = multierr.Append(err, s.file.Close())
	return multierr.Append(err, s.lock.close())
}

// writeHeader writes the header batch at the current offset, returning
// the number of bytes it added so the caller can adjust the observed
// length. The pending flag is cleared only once the batch landed; a
// render or write failure leaves it armed for the next append. The
// caller holds mu and the cross-process lock.
func (s *MutexSink) writeHeader() (int64, error) {
	data, err := s.headerBatch()
	if err != nil {
		return 0, err
	}
	n, err := s.file.Write(data)
	if err != nil {
		return int64(n), err
	}
	s.headerDone()
	return int64(n), nil
}

// writeRecord renders one entry and writes it at the current offset.
// The scratch buffer is drained whether or not the write succeeds.
func (s *MutexSink) writeRecord(entry *core.Entry) error {
	defer s.scratch.Reset()

	if err := s.render(entry); err != nil {
		return err
	}
	data, err := s.encoded()
	if err != nil {
		return err
	}
	_, err = s.file.Write(data)
	return err
}
