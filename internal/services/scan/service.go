package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/qrally/qrally/internal/dependencies/clock"
	"github.com/qrally/qrally/internal/model"
	"github.com/qrally/qrally/internal/storage"
)

// EventSink receives transient scan status events. Events are emitted
// before and after each remote call so connected clients can watch a
// slow backend move through "checking" and "updating".
type EventSink interface {
	Publish(event model.ScanEvent)
}

// Service runs the scan-to-score workflow
//
// Per user the workflow moves idle -> processing -> (succeeded|failed) ->
// idle; a second decode arriving while a user's workflow is processing is
// dropped, never queued.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
	sink    EventSink

	mu         sync.Mutex
	processing map[model.UserID]bool
}

// New creates a new scan Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage:    storage,
		clock:      clock,
		logger:     logger,
		processing: make(map[model.UserID]bool),
	}
}

// SetEventSink attaches a sink for scan status events
func (s *Service) SetEventSink(sink EventSink) {
	s.sink = sink
}

// State reports whether a scan is currently processing for the user
func (s *Service) State(userID model.UserID) model.ScanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing[userID] {
		return model.ScanProcessing
	}
	return model.ScanIdle
}

// Process runs one scan workflow for the given user and decoded text.
//
// The user's stored score is only treated as confirmed once the update
// call succeeds; on update failure the stored score is read back so the
// result never reports a value that diverges from storage. The returned
// error is non-nil only when the event is dropped by the processing
// guard; workflow failures are terminal outcomes in the result itself.
func (s *Service) Process(ctx context.Context, user model.User, decodedText string) (result *model.ScanResult, err error) {
	if !s.acquire(user.ID) {
		s.logger.Info("scan dropped, workflow already processing",
			slog.String("user_id", string(user.ID)),
			slog.String("decoded_text", decodedText))
		return nil, model.ErrScanInProgress
	}
	defer s.release(user.ID)

	// Contain unexpected panics at the workflow boundary
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in scan workflow",
				slog.String("user_id", string(user.ID)),
				slog.Any("error", r))
			result = &model.ScanResult{
				Outcome:     model.OutcomeInternalError,
				DecodedText: decodedText,
				Score:       user.Score,
				Message:     "unexpected error while processing scan",
			}
			err = nil
			s.publishResult(user.ID, result)
		}
	}()

	s.publish(model.EventScanStarted, user.ID, decodedText, user.Score, "scanned: "+decodedText)

	// Step 1: checkpoint lookup
	s.publish(model.EventCheckingPoint, user.ID, decodedText, user.Score, "checking checkpoint...")
	cp, lookupErr := s.storage.GetCheckpoint(ctx, model.CheckpointID(decodedText))
	if lookupErr != nil {
		result = s.lookupFailure(user, decodedText, lookupErr)
		s.publishResult(user.ID, result)
		return result, nil
	}

	// Step 2: score computation; tentative until the update lands
	confirmed := user.Score
	tentative := confirmed + cp.Point

	// Step 3: persist
	s.publish(model.EventUpdatingScore, user.ID, decodedText, confirmed, "updating score...")
	if updateErr := s.storage.UpdateUserScore(ctx, user.ID, tentative); updateErr != nil {
		result = s.updateFailure(ctx, user, decodedText, cp, updateErr)
		s.publishResult(user.ID, result)
		return result, nil
	}

	result = &model.ScanResult{
		Outcome:     model.OutcomeSuccess,
		DecodedText: decodedText,
		Checkpoint:  cp,
		Score:       tentative,
		Message:     fmt.Sprintf("matched: %s awarded %dP, total %dP", cp.CPID, cp.Point, tentative),
	}
	s.logger.Info("scan succeeded",
		slog.String("user_id", string(user.ID)),
		slog.String("cp_id", string(cp.CPID)),
		slog.Int("point", cp.Point),
		slog.Int("score", tentative))
	s.publishResult(user.ID, result)
	return result, nil
}

// lookupFailure distinguishes a missing checkpoint from a backend error;
// the latter carries the raw error text in the message
func (s *Service) lookupFailure(user model.User, decodedText string, lookupErr error) *model.ScanResult {
	if errors.Is(lookupErr, model.ErrCheckpointNotFound) {
		return &model.ScanResult{
			Outcome:     model.OutcomeCheckpointNotFound,
			DecodedText: decodedText,
			Score:       user.Score,
			Message:     "checkpoint not found",
		}
	}
	s.logger.Error("checkpoint lookup failed",
		slog.String("user_id", string(user.ID)),
		slog.String("decoded_text", decodedText),
		slog.String("error", lookupErr.Error()))
	return &model.ScanResult{
		Outcome:     model.OutcomeLookupError,
		DecodedText: decodedText,
		Score:       user.Score,
		Message:     "database error: " + lookupErr.Error(),
	}
}

// updateFailure reconciles the reported score with storage after a failed
// update so the caller never displays a value storage does not hold
func (s *Service) updateFailure(ctx context.Context, user model.User, decodedText string, cp *model.Checkpoint, updateErr error) *model.ScanResult {
	s.logger.Error("score update failed",
		slog.String("user_id", string(user.ID)),
		slog.String("cp_id", string(cp.CPID)),
		slog.String("error", updateErr.Error()))

	reconciled := user.Score
	if stored, readErr := s.storage.GetUser(ctx, user.ID); readErr == nil {
		reconciled = stored.Score
	}

	return &model.ScanResult{
		Outcome:     model.OutcomeUpdateError,
		DecodedText: decodedText,
		Checkpoint:  cp,
		Score:       reconciled,
		Message:     "score update failed: " + updateErr.Error(),
	}
}

func (s *Service) acquire(userID model.UserID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processing[userID] {
		return false
	}
	s.processing[userID] = true
	return true
}

func (s *Service) release(userID model.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.processing, userID)
}

func (s *Service) publish(eventType model.ScanEventType, userID model.UserID, decodedText string, score int, message string) {
	if s.sink == nil {
		return
	}
	s.sink.Publish(model.ScanEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		UserID:      userID,
		DecodedText: decodedText,
		Score:       score,
		Message:     message,
		Timestamp:   s.clock.Now(),
	})
}

func (s *Service) publishResult(userID model.UserID, result *model.ScanResult) {
	eventType := model.EventScanFailed
	if result.Outcome == model.OutcomeSuccess {
		eventType = model.EventScanSucceeded
	}
	s.publish(eventType, userID, result.DecodedText, result.Score, result.Message)
}
