package legtracker

import "errors"

// Sentinel errors returned internally by pipeline stages and matched with
// errors.Is. None of these escape Update as a hard failure except in the
// forms documented on the stage that returns them.
var (
	// errSkipScan means a filter/cluster stage found too few surviving
	// points to match against; the scan degrades to predict-and-miss.
	errSkipScan = errors.New("legtracker: insufficient points for matching, skipping scan")

	// errTransformUnavailable means the transform provider could not
	// resolve the tracking frame for this scan; same degrade path as
	// errSkipScan.
	errTransformUnavailable = errors.New("legtracker: transform unavailable for scan")

	// errInvariantViolation aborts the pairing pass only; tracks are
	// left untouched and the scan still returns normally.
	errInvariantViolation = errors.New("legtracker: pairing invariant violated")

	// errIntegratorReset signals the nominal single-person "departed"
	// path; never logged as a warning/error, only informational.
	errIntegratorReset = errors.New("legtracker: integrator reset")
)

// ConfigError wraps a fatal misconfiguration detected by NewTracker.
// The library never panics or exits on this; callers (typically a CLI
// bootstrap) decide how to surface it.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "legtracker: invalid config field " + e.Field + ": " + e.Reason
}
