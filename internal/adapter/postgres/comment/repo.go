// Package comment implements the Comment repository using PostgreSQL.
package comment

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/omer-demir/CeviriDukkaniTS/internal/adapter/postgres"
	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// Repo provides comment persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new comment repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const commentColumns = `id, operation_id, content, active, from_user_id, to_user_id, created_at`

// Create appends a comment to an operation and returns the persisted row.
func (r *Repo) Create(ctx context.Context, c domain.Comment) (*domain.Comment, error) {
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	query, args, err := psql.Insert("comments").
		Columns("id", "operation_id", "content", "active", "from_user_id", "to_user_id", "created_at").
		Values(id, c.OperationID, c.Content, true, c.FromUserID, c.ToUserID, now).
		Suffix("RETURNING " + commentColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.q)
	created, err := scanComment(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}

	return created, nil
}

// ListByOperation returns the operation's comments in creation order,
// including deactivated ones.
func (r *Repo) ListByOperation(ctx context.Context, operationID uuid.UUID) ([]domain.Comment, error) {
	query, args, err := psql.Select(commentColumns).
		From("comments").
		Where(sq.Eq{"operation_id": operationID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.q)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	if comments == nil {
		comments = []domain.Comment{}
	}

	return comments, nil
}

// Deactivate soft-deletes a comment. Comments are never removed.
func (r *Repo) Deactivate(ctx context.Context, commentID uuid.UUID) error {
	query, args, err := psql.Update("comments").
		Set("active", false).
		Where(sq.Eq{"id": commentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.q)
	tag, err := querier.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "comment", commentID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", commentID, domain.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	var c domain.Comment
	if err := row.Scan(&c.ID, &c.OperationID, &c.Content, &c.Active,
		&c.FromUserID, &c.ToUserID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
