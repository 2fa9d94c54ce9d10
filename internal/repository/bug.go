package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sumire/bugs/internal/domain"
)

const bugColumns = `id, title, description, status, severity, assigned_to, created_at, updated_at`

// BugRepository stores bugs in PostgreSQL.
type BugRepository struct {
	db *sqlx.DB
}

// NewBugRepository creates a new BugRepository.
func NewBugRepository(db *sqlx.DB) *BugRepository {
	return &BugRepository{db: db}
}

// List returns every bug, newest first.
func (r *BugRepository) List(ctx context.Context) ([]domain.Bug, error) {
	bugs := []domain.Bug{}
	err := r.db.SelectContext(ctx, &bugs,
		`SELECT `+bugColumns+` FROM bugs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bugs: %w", err)
	}
	return bugs, nil
}

// FindByID retrieves a bug by its ID.
func (r *BugRepository) FindByID(ctx context.Context, id string) (*domain.Bug, error) {
	var bug domain.Bug
	err := r.db.GetContext(ctx, &bug,
		`SELECT `+bugColumns+` FROM bugs WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find bug by id %s: %w", id, err)
	}
	return &bug, nil
}

// Create inserts a new bug under a freshly generated ID and returns the
// stored row.
func (r *BugRepository) Create(ctx context.Context, bug domain.Bug) (*domain.Bug, error) {
	var result domain.Bug
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO bugs (id, title, description, status, severity, assigned_to)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+bugColumns,
		uuid.NewString(), bug.Title, bug.Description, bug.Status, bug.Severity, bug.AssignedTo,
	).StructScan(&result)
	if err != nil {
		return nil, fmt.Errorf("insert bug: %w", err)
	}
	return &result, nil
}

// Update overwrites the fields present in p and refreshes updated_at.
func (r *BugRepository) Update(ctx context.Context, id string, p domain.BugPayload) (*domain.Bug, error) {
	var result domain.Bug
	err := r.db.QueryRowxContext(ctx,
		`UPDATE bugs
		 SET title = COALESCE($2, title),
		     description = COALESCE($3, description),
		     status = COALESCE($4, status),
		     severity = COALESCE($5, severity),
		     assigned_to = COALESCE($6, assigned_to),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+bugColumns,
		id, p.Title, p.Description, nullableString(p.Status), nullableString(p.Severity), p.AssignedTo,
	).StructScan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update bug %s: %w", id, err)
	}
	return &result, nil
}

// Delete removes a bug permanently.
func (r *BugRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bugs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bug %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete bug %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullableString[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
