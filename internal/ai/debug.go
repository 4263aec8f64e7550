package ai

import "sync/atomic"

// debugLogging guards per-monster debug logs emitted every tick.
var debugLogging atomic.Bool

// EnableDebugLogging is called once from main after the log level is known.
func EnableDebugLogging(enabled bool) {
	debugLogging.Store(enabled)
}

// IsDebugEnabled reports whether per-monster debug logs are on.
func IsDebugEnabled() bool {
	return debugLogging.Load()
}
