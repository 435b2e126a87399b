package services

import (
	"errors"
	"fmt"

	"employee-stats/models"
)

// ErrRunInFlight is returned when a session already has a run in progress.
var ErrRunInFlight = errors.New("a stats run is already in progress for this session")

// EmptyInputError means no text was supplied. Nothing was processed.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "no data supplied: paste tab-separated rows with a header line"
}

// MalformedRowError describes a data line whose cell count differs from the header.
// It is a warning in lenient mode and fails the run in strict mode.
type MalformedRowError struct {
	models.RowWarning
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d has %d cells, header has %d", e.Line, e.Got, e.Want)
}

// LookupFailedError means the record store could not answer the bulk lookup.
type LookupFailedError struct {
	Keys  int
	Cause error
}

func (e *LookupFailedError) Error() string {
	return fmt.Sprintf("employee lookup for %d keys failed: %v", e.Keys, e.Cause)
}

func (e *LookupFailedError) Unwrap() error {
	return e.Cause
}
