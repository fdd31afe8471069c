package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/fieldlog/internal/app"
	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/repository"
)

// ErrInvalidToken is returned when no entry carries the verification token.
var ErrInvalidToken = errors.New("invalid or expired verification token")

type reviewService struct {
	entries repository.LogEntryRepo
	cursors repository.CursorRepo
	opts    options
}

func NewReviewService(entries repository.LogEntryRepo, cursors repository.CursorRepo, opts ...Option) ReviewService {
	return &reviewService{entries: entries, cursors: cursors, opts: newOptions(opts)}
}

func (s *reviewService) VerifyByToken(ctx context.Context, token string, decision domain.SupervisorStatus, comment string) (entry *domain.LogEntry, err error) {
	done := s.opts.track(ctx, "verify-log", map[string]any{"decision": decision})
	defer func() { done(err) }()

	current, err := s.entries.GetByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, storeErr("loading log entry", err)
	}
	now := s.opts.now()
	return mutateEntry(ctx, s.entries, current, func(e *domain.LogEntry) error {
		return e.Verify(decision, comment, now)
	})
}

func (s *reviewService) byID(ctx context.Context, name, entryID string, fn func(e *domain.LogEntry, now time.Time) error) (entry *domain.LogEntry, err error) {
	done := s.opts.track(ctx, name, map[string]any{"entry": entryID})
	defer func() { done(err) }()

	current, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, storeErr("loading log entry", err)
	}
	now := s.opts.now()
	return mutateEntry(ctx, s.entries, current, func(e *domain.LogEntry) error {
		return fn(e, now)
	})
}

func (s *reviewService) MarkRead(ctx context.Context, entryID string) (*domain.LogEntry, error) {
	return s.byID(ctx, "mark-read", entryID, func(e *domain.LogEntry, now time.Time) error {
		return e.MarkRead(now)
	})
}

func (s *reviewService) Reopen(ctx context.Context, entryID string) (*domain.LogEntry, error) {
	return s.byID(ctx, "reopen-log", entryID, func(e *domain.LogEntry, now time.Time) error {
		return e.Reopen(now)
	})
}

// Inbox lists submissions updated after the instructor's cursor for the
// placement. Without a cursor every submission is listed.
func (s *reviewService) Inbox(ctx context.Context, instructorID, placementID string) (*app.Inbox, error) {
	var since time.Time
	c, err := s.cursors.Get(ctx, instructorID, domain.PlacementScope(placementID))
	switch {
	case err == nil:
		since = c.LastViewedAt
	case !errors.Is(err, repository.ErrNotFound):
		return nil, storeErr("loading view cursor", err)
	}

	entries, err := s.entries.ListSubmittedSince(ctx, placementID, since)
	if err != nil {
		return nil, storeErr("loading submissions", err)
	}
	return &app.Inbox{PlacementID: placementID, Since: since, Entries: entries}, nil
}

// AdvanceCursor moves the instructor's cursor to at (now when zero). The
// cursor never moves backwards.
func (s *reviewService) AdvanceCursor(ctx context.Context, instructorID, placementID string, at time.Time) error {
	if at.IsZero() {
		at = s.opts.now()
	}
	scope := domain.PlacementScope(placementID)
	c, err := s.cursors.Get(ctx, instructorID, scope)
	switch {
	case err == nil:
		if !at.After(c.LastViewedAt) {
			return nil
		}
	case !errors.Is(err, repository.ErrNotFound):
		return storeErr("loading view cursor", err)
	}
	if err := s.cursors.Upsert(ctx, &domain.ViewCursor{UserID: instructorID, Scope: scope, LastViewedAt: at.UTC()}); err != nil {
		return storeErr(fmt.Sprintf("saving view cursor %s", scope), err)
	}
	return nil
}
