package ai

import "sync/atomic"

// debugLoggingEnabled gates per-tick debug logs of the behavior loop.
// Checking an atomic is cheaper than building slog attributes for every agent on every tick.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging switches behavior debug logs on or off.
// Called once from main after the log level is known.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether behavior debug logging is on.
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("retarget", "agent", id, "target", target)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
