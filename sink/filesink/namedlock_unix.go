//go:build !windows

package filesink

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/sys/unix"
)

// lockPollInterval is how often a blocked acquire retries the advisory
// lock while waiting for its deadline.
const lockPollInterval = 5 * time.Millisecond

// namedLock is an advisory flock on a well-known file under the
// system temporary directory, named after the hashed canonical path of
// the destination. flock is released by the kernel when the holding
// process exits, so a crashed holder never wedges the lock; the PID
// marker the holder leaves behind is how the next acquirer detects the
// abandonment.
type namedLock struct {
	path string
	f    *os.File
}

// newNamedLock opens (creating if needed) the lock file for target.
func newNamedLock(target string) (*namedLock, error) {
	path := filepath.Join(os.TempDir(), lockName(target)+".lck")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	return &namedLock{path: path, f: f}, nil
}

// acquire takes the lock, polling until the timeout. It reports whether
// the lock was acquired and whether the previous holder abandoned it.
func (l *namedLock) acquire(timeout time.Duration) (acquired, abandoned bool, err error) {
	deadline := time.Now().Add(timeout)
	for {
		err := unix.Flock(int(l.f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			break
		}
		if err != unix.EWOULDBLOCK && err != unix.EAGAIN && err != unix.EINTR {
			return false, false, &os.PathError{Op: "flock", Path: l.path, Err: err}
		}
		if !time.Now().Before(deadline) {
			return false, false, nil
		}
		time.Sleep(lockPollInterval)
	}

	// A leftover marker means the previous holder exited without
	// releasing; the kernel dropped its flock on exit.
	var marker [20]byte
	if n, _ := l.f.ReadAt(marker[:], 0); n > 0 {
		abandoned = true
	}
	if err := l.f.Truncate(0); err != nil {
		l.unlock()
		return false, false, err
	}
	if _, err := l.f.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0); err != nil {
		l.unlock()
		return false, false, err
	}
	return true, abandoned, nil
}

// release clears the marker and drops the lock.
func (l *namedLock) release() error {
	if err := l.f.Truncate(0); err != nil {
		l.unlock()
		return err
	}
	return l.unlock()
}

func (l *namedLock) unlock() error {
	if err := unix.Flock(int(l.f.Fd()), unix.LOCK_UN); err != nil {
		return &os.PathError{Op: "flock", Path: l.path, Err: err}
	}
	return nil
}

// close releases the lock file handle. The lock file itself is left in
// place for other processes.
func (l *namedLock) close() error {
	return l.f.Close()
}
