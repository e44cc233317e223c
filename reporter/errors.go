package reporter

import "errors"

// ErrStopped is delivered to flush callbacks once the reporter has stopped.
var ErrStopped = errors.New("reporter: stopped")
