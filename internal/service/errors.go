package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/fieldlog/internal/domain"
	"github.com/alexanderramin/fieldlog/internal/repository"
)

// storeErr wraps a repository failure. NotFound and Conflict keep their
// meaning; anything else is reported as a transport failure.
func storeErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrConflict) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrTransportFailure, err)
}

// mutateEntry is the two-phase update used by every entry write. apply runs
// on a copy of current; nothing is written when it fails. When the write
// fails the entry is re-read and the stored version is returned with the
// error, so callers never keep the unconfirmed copy.
func mutateEntry(
	ctx context.Context,
	entries repository.LogEntryRepo,
	current *domain.LogEntry,
	apply func(e *domain.LogEntry) error,
) (*domain.LogEntry, error) {
	next := current.Clone()
	if err := apply(next); err != nil {
		return nil, err
	}
	if err := entries.Update(ctx, next); err != nil {
		stored, getErr := entries.GetByID(ctx, current.ID)
		if getErr != nil {
			stored = nil
		}
		return stored, storeErr("saving log entry", err)
	}
	return next, nil
}
