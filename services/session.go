package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"employee-stats/models"
	"employee-stats/storage"
	"employee-stats/utils"
)

// SessionService owns the latest result per session. A run replaces the
// stored result only when it succeeds; a failed run leaves it untouched.
type SessionService struct {
	processor *StatsProcessor
	results   storage.ResultStore
	logger    *utils.Logger
	now       func() time.Time
}

// NewSessionService creates a SessionService storing results in results.
func NewSessionService(processor *StatsProcessor, results storage.ResultStore, logger *utils.Logger) *SessionService {
	return &SessionService{
		processor: processor,
		results:   results,
		logger:    logger,
		now:       time.Now,
	}
}

// Run processes text for sessionID. It returns ErrRunInFlight if the session
// already has a run in progress.
func (s *SessionService) Run(ctx context.Context, sessionID, text string) (*models.SessionResult, error) {
	runID := uuid.New()
	locked, err := s.results.TryLock(ctx, sessionID, runID.String())
	if err != nil {
		runsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("session: lock %q: %w", sessionID, err)
	}
	if !locked {
		runsTotal.WithLabelValues("in_flight").Inc()
		return nil, ErrRunInFlight
	}
	defer func() {
		if err := s.results.Unlock(context.WithoutCancel(ctx), sessionID, runID.String()); err != nil {
			s.logger.Warn("[session] unlock %s: %v", sessionID, err)
		}
	}()

	result, err := s.processor.Process(ctx, text)
	if err != nil {
		runsTotal.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}

	sr := &models.SessionResult{
		RunID:       runID,
		SessionID:   sessionID,
		ProcessedAt: s.now().UTC(),
		Result:      result,
	}
	if err := s.results.Save(ctx, sr); err != nil {
		runsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("session: save %q: %w", sessionID, err)
	}

	runsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("[session] %s committed run %s", sessionID, sr.RunID)
	return sr, nil
}

// Latest returns the committed result for sessionID or storage.ErrResultNotFound.
func (s *SessionService) Latest(ctx context.Context, sessionID string) (*models.SessionResult, error) {
	return s.results.Load(ctx, sessionID)
}

func outcome(err error) string {
	var (
		empty     *EmptyInputError
		malformed *MalformedRowError
		lookup    *LookupFailedError
	)
	switch {
	case errors.As(err, &empty):
		return "empty_input"
	case errors.As(err, &malformed):
		return "malformed_row"
	case errors.As(err, &lookup):
		return "lookup_failed"
	default:
		return "error"
	}
}
