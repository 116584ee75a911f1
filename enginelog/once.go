package enginelog

import "sync"

// Once rate-limits a set of named warnings to fire at most once per reason
// key for the lifetime of the Once value. The zero value is ready to use.
type Once struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// Warn logs format/args through logger.Warnf the first time it is called
// with a given key; subsequent calls with the same key are no-ops. Safe for
// concurrent use.
func (o *Once) Warn(logger Logger, key string, format string, args ...any) {
	o.mu.Lock()
	if o.seen == nil {
		o.seen = make(map[string]struct{})
	}
	if _, fired := o.seen[key]; fired {
		o.mu.Unlock()
		return
	}
	o.seen[key] = struct{}{}
	o.mu.Unlock()

	if logger == nil {
		logger = NewNopLogger()
	}
	logger.Warnf(format, args...)
}

// Reset clears all recorded keys, allowing warnings to fire again.
func (o *Once) Reset() {
	o.mu.Lock()
	o.seen = nil
	o.mu.Unlock()
}
