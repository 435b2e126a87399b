package storage

import (
	"context"
	"errors"

	"employee-stats/models"
)

// ErrResultNotFound is returned when a session has no committed result.
var ErrResultNotFound = errors.New("no stats result for session")

// RecordStore is the read side of the employee table.
type RecordStore interface {
	// FetchByUIDs returns every record whose uid is in uids, in no particular order.
	FetchByUIDs(ctx context.Context, uids []string) ([]models.EmployeeRecord, error)
	Close() error
}

// ResultStore keeps the latest stats result per session and guards against
// overlapping runs for the same session.
type ResultStore interface {
	// Save replaces the session's result in full.
	Save(ctx context.Context, result *models.SessionResult) error
	Load(ctx context.Context, sessionID string) (*models.SessionResult, error)
	// TryLock marks a run as in flight, owned by token. It returns false if
	// one already is.
	TryLock(ctx context.Context, sessionID, token string) (bool, error)
	// Unlock releases the lock only while token still owns it.
	Unlock(ctx context.Context, sessionID, token string) error
	Close() error
}

// ResultExporter writes a session result to an external format.
type ResultExporter interface {
	Export(result *models.SessionResult) error
	Close() error
}
