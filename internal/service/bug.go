package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sumire/bugs/internal/domain"
)

// BugStore defines the bug data access interface consumed by BugService.
type BugStore interface {
	List(ctx context.Context) ([]domain.Bug, error)
	FindByID(ctx context.Context, id string) (*domain.Bug, error)
	Create(ctx context.Context, bug domain.Bug) (*domain.Bug, error)
	Update(ctx context.Context, id string, p domain.BugPayload) (*domain.Bug, error)
	Delete(ctx context.Context, id string) error
}

// BugService applies the bug validation rules in front of a BugStore.
type BugService struct {
	bugs   BugStore
	logger *slog.Logger
}

// NewBugService creates a new BugService.
func NewBugService(bugs BugStore, logger *slog.Logger) *BugService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BugService{bugs: bugs, logger: logger}
}

// List returns every bug, newest first.
func (s *BugService) List(ctx context.Context) ([]domain.Bug, error) {
	bugs, err := s.bugs.List(ctx)
	if err != nil {
		return nil, storeError("list bugs", err)
	}
	return bugs, nil
}

// Create validates p as a new bug and stores it with defaults applied.
func (s *BugService) Create(ctx context.Context, p domain.BugPayload) (*domain.Bug, error) {
	if err := domain.ValidateBug(p, false).Err(); err != nil {
		return nil, err
	}

	bug, err := s.bugs.Create(ctx, p.NewBug())
	if err != nil {
		return nil, storeError("create bug", err)
	}

	s.logger.InfoContext(ctx, "bug created", "bug_id", bug.ID, "severity", bug.Severity)
	return bug, nil
}

// Update changes the fields present in p on an existing bug. Update
// payloads are not checked against the status and severity enumerations.
func (s *BugService) Update(ctx context.Context, id string, p domain.BugPayload) (*domain.Bug, error) {
	if _, err := s.bugs.FindByID(ctx, id); err != nil {
		return nil, storeError("find bug", err)
	}

	if err := domain.ValidateBug(p, true).Err(); err != nil {
		return nil, err
	}

	bug, err := s.bugs.Update(ctx, id, p)
	if err != nil {
		return nil, storeError("update bug", err)
	}

	s.logger.InfoContext(ctx, "bug updated", "bug_id", bug.ID, "status", bug.Status)
	return bug, nil
}

// Delete removes an existing bug.
func (s *BugService) Delete(ctx context.Context, id string) error {
	if _, err := s.bugs.FindByID(ctx, id); err != nil {
		return storeError("find bug", err)
	}

	if err := s.bugs.Delete(ctx, id); err != nil {
		return storeError("delete bug", err)
	}

	s.logger.InfoContext(ctx, "bug deleted", "bug_id", id)
	return nil
}

// storeError passes domain.ErrNotFound through and wraps everything else
// as a *domain.StoreError.
func storeError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return &domain.StoreError{Op: op, Err: err}
}
