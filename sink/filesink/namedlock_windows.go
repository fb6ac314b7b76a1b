//go:build windows

package filesink

import (
	"time"

	"golang.org/x/sys/windows"
)

// namedLock is a Windows named mutex in the Global namespace, so
// writers in different sessions and services agree on the identity. A
// mutex abandoned by a crashed holder is granted to the next waiter
// with WAIT_ABANDONED, which maps directly onto the abandoned flag.
type namedLock struct {
	handle windows.Handle
}

// newNamedLock opens (creating if needed) the named mutex for target.
func newNamedLock(target string) (*namedLock, error) {
	name, err := windows.UTF16PtrFromString(`Global\` + lockName(target))
	if err != nil {
		return nil, err
	}
	h, err := windows.CreateMutex(nil, false, name)
	if err != nil && err != windows.ERROR_ALREADY_EXISTS {
		return nil, err
	}
	return &namedLock{handle: h}, nil
}

// acquire waits for the mutex up to the timeout. It reports whether the
// mutex was acquired and whether the previous holder abandoned it.
func (l *namedLock) acquire(timeout time.Duration) (acquired, abandoned bool, err error) {
	event, err := windows.WaitForSingleObject(l.handle, uint32(timeout/time.Millisecond))
	switch event {
	case windows.WAIT_OBJECT_0:
		return true, false, nil
	case windows.WAIT_ABANDONED:
		return true, true, nil
	case windows.WAIT_TIMEOUT:
		return false, false, nil
	}
	return false, false, err
}

// release drops the mutex.
func (l *namedLock) release() error {
	return windows.ReleaseMutex(l.handle)
}

// close releases the mutex handle.
func (l *namedLock) close() error {
	return windows.CloseHandle(l.handle)
}
