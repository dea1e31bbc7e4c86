package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrRefreshLocked reports that another process holds the refresh lock.
var ErrRefreshLocked = errors.New("another refresh is already running")

// RefreshLock serializes refreshes across processes sharing a data directory.
type RefreshLock struct {
	lock *flock.Flock
}

// AcquireRefreshLock takes the lock file at path without blocking.
func AcquireRefreshLock(path string) (*RefreshLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire refresh lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file %s)", ErrRefreshLocked, path)
	}
	return &RefreshLock{lock: lock}, nil
}

// Path returns the lock file location.
func (l *RefreshLock) Path() string {
	return l.lock.Path()
}

// Release drops the lock. Releasing twice is harmless.
func (l *RefreshLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
