package sim

import "fmt"

// ParameterError reports an invalid configuration value. It is always
// detected before any random draw happens.
type ParameterError struct {
	Param  string
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("sim: invalid parameter %s: %s", e.Param, e.Reason)
}

// DegenerateRealizationError reports that every attempted realization of the
// region chain failed to produce a required region kind within the retry
// budget. It usually means the parameters make binding sites too rare for
// the reference length, e.g. a background region length larger than the
// reference itself.
type DegenerateRealizationError struct {
	Attempts int
	Reason   string
}

func (e *DegenerateRealizationError) Error() string {
	return fmt.Sprintf("sim: degenerate realization after %d attempt(s): %s", e.Attempts, e.Reason)
}

func parameterErrorf(param, format string, args ...interface{}) error {
	return &ParameterError{Param: param, Reason: fmt.Sprintf(format, args...)}
}
