package schedule

import "sync"

// The process-wide default manager. All callers that use Default share one
// instance; tests use ResetDefault to start from an empty schedule.
var (
	defaultMu      sync.Mutex
	defaultManager *Manager
)

// Default returns the shared, lazily created schedule manager.
func Default() *Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultManager == nil {
		defaultManager = NewManager()
	}
	return defaultManager
}

// ResetDefault replaces the shared manager with a fresh empty one and
// returns it. Listeners attached to the previous instance are discarded
// with it.
func ResetDefault() *Manager {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultManager = NewManager()
	return defaultManager
}
