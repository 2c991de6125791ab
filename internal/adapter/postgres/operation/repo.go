// Package operation implements the TranslationOperation repository using
// PostgreSQL. Role-parameterized lookups are built with squirrel; fixed
// queries use raw SQL.
package operation

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/omer-demir/CeviriDukkaniTS/internal/adapter/postgres"
	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// Repo provides translation operation persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new operation repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const operationColumns = `id, document_part_id, translator_id, editor_id, proof_reader_id, translated_content, edited_content, proof_read_content, progress_status, version, created_at, updated_at`

const listByOrderSQL = `
SELECT t.id, t.document_part_id, t.translator_id, t.editor_id, t.proof_reader_id,
       t.translated_content, t.edited_content, t.proof_read_content,
       t.progress_status, t.version, t.created_at, t.updated_at
FROM translation_operations t
JOIN order_details od ON od.operation_id = t.id
WHERE od.order_id = $1
ORDER BY t.created_at`

// actorColumn maps a role to the assignment column it is matched against.
func actorColumn(role domain.Role) (string, error) {
	switch role {
	case domain.RoleTranslator:
		return "translator_id", nil
	case domain.RoleEditor:
		return "editor_id", nil
	case domain.RoleProofReader:
		return "proof_reader_id", nil
	}
	return "", fmt.Errorf("role %q: %w", role, domain.ErrValidation)
}

// contentColumn maps a role to the content column it owns.
func contentColumn(role domain.Role) (string, error) {
	switch role {
	case domain.RoleTranslator:
		return "translated_content", nil
	case domain.RoleEditor:
		return "edited_content", nil
	case domain.RoleProofReader:
		return "proof_read_content", nil
	}
	return "", fmt.Errorf("role %q: %w", role, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByPartAndActor returns the operation for a document part, but only if
// the given actor holds the given role on it. A mismatch is reported as
// domain.ErrNotFound, indistinguishable from a missing row.
func (r *Repo) GetByPartAndActor(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID) (*domain.TranslationOperation, error) {
	col, err := actorColumn(role)
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Select(operationColumns).
		From("translation_operations").
		Where(sq.Eq{"document_part_id": partID, col: actorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.q)
	op, err := scanOperation(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "operation", partID)
	}

	return op, nil
}

// GetByPart returns the operation for a document part regardless of role
// assignments.
func (r *Repo) GetByPart(ctx context.Context, partID uuid.UUID) (*domain.TranslationOperation, error) {
	query, args, err := psql.Select(operationColumns).
		From("translation_operations").
		Where(sq.Eq{"document_part_id": partID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.q)
	op, err := scanOperation(querier.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "operation", partID)
	}

	return op, nil
}

// ListByActor returns every operation where the actor holds the given role.
func (r *Repo) ListByActor(ctx context.Context, role domain.Role, actorID uuid.UUID) ([]domain.TranslationOperation, error) {
	col, err := actorColumn(role)
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Select(operationColumns).
		From("translation_operations").
		Where(sq.Eq{col: actorID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.q)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations by actor: %w", err)
	}
	defer rows.Close()

	return scanOperations(rows)
}

// ListByOrder returns a fresh snapshot of every operation belonging to the
// order's document parts. Completion evaluation depends on this read never
// being served from a cache.
func (r *Repo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.TranslationOperation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.q)

	rows, err := querier.Query(ctx, listByOrderSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("list operations by order: %w", err)
	}
	defer rows.Close()

	return scanOperations(rows)
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// BatchCreate inserts one operation row per document part and returns the
// persisted rows. A duplicate document_part_id results in
// domain.ErrAlreadyExists (one operation per part is a hard invariant);
// fewer returned rows than requested is domain.ErrWriteFailed.
func (r *Repo) BatchCreate(ctx context.Context, ops []domain.NewOperation) ([]domain.TranslationOperation, error) {
	if len(ops) == 0 {
		return []domain.TranslationOperation{}, nil
	}

	now := time.Now().UTC().Truncate(time.Microsecond)

	builder := psql.Insert("translation_operations").
		Columns("id", "document_part_id", "translator_id", "editor_id", "proof_reader_id",
			"progress_status", "version", "created_at", "updated_at")
	for _, op := range ops {
		builder = builder.Values(uuid.New(), op.DocumentPartID, op.TranslatorID, op.EditorID,
			op.ProofReaderID, domain.StatusNotStarted, 1, now, now)
	}

	query, args, err := builder.Suffix("RETURNING " + operationColumns).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.q)
	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "operation", uuid.Nil)
	}
	defer rows.Close()

	created, err := scanOperations(rows)
	if err != nil {
		return nil, err
	}
	if len(created) != len(ops) {
		return nil, fmt.Errorf("inserted %d of %d operations: %w", len(created), len(ops), domain.ErrWriteFailed)
	}

	return created, nil
}

// UpdateContent writes the content field owned by role and sets the status
// to the role's in-progress value. The write is a compare-and-swap on the
// version read by the caller: a miss on an existing row is
// domain.ErrConflict, a missing (part, actor) pair is domain.ErrNotFound.
func (r *Repo) UpdateContent(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID, content string, version int64) (*domain.TranslationOperation, error) {
	contentCol, err := contentColumn(role)
	if err != nil {
		return nil, err
	}

	return r.casUpdate(ctx, partID, role, actorID, version, map[string]any{
		contentCol:        content,
		"progress_status": role.InProgress(),
	})
}

// UpdateStatus advances the shared progress status under the same
// compare-and-swap discipline as UpdateContent.
func (r *Repo) UpdateStatus(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID, status domain.ProgressStatus, version int64) (*domain.TranslationOperation, error) {
	return r.casUpdate(ctx, partID, role, actorID, version, map[string]any{
		"progress_status": status,
	})
}

func (r *Repo) casUpdate(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID, version int64, set map[string]any) (*domain.TranslationOperation, error) {
	actorCol, err := actorColumn(role)
	if err != nil {
		return nil, err
	}

	builder := psql.Update("translation_operations").
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", time.Now().UTC().Truncate(time.Microsecond))
	for col, val := range set {
		builder = builder.Set(col, val)
	}

	query, args, err := builder.
		Where(sq.Eq{"document_part_id": partID, actorCol: actorID, "version": version}).
		Suffix("RETURNING " + operationColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.q)
	op, err := scanOperation(querier.QueryRow(ctx, query, args...))
	if err == nil {
		return op, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, postgres.MapError(err, "operation", partID)
	}

	// Zero rows: either the row moved past our version or the selector
	// never matched. Re-check the selector to tell the two apart.
	if _, selErr := r.GetByPartAndActor(ctx, partID, role, actorID); selErr != nil {
		return nil, selErr
	}
	return nil, fmt.Errorf("operation %s: %w", partID, domain.ErrConflict)
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOperation(row rowScanner) (*domain.TranslationOperation, error) {
	var (
		op         domain.TranslationOperation
		translated *string
		edited     *string
		proofRead  *string
	)

	if err := row.Scan(&op.ID, &op.DocumentPartID, &op.TranslatorID, &op.EditorID,
		&op.ProofReaderID, &translated, &edited, &proofRead,
		&op.Status, &op.Version, &op.CreatedAt, &op.UpdatedAt); err != nil {
		return nil, err
	}

	if translated != nil {
		op.TranslatedContent = *translated
	}
	if edited != nil {
		op.EditedContent = *edited
	}
	if proofRead != nil {
		op.ProofReadContent = *proofRead
	}

	return &op, nil
}

func scanOperations(rows pgx.Rows) ([]domain.TranslationOperation, error) {
	var ops []domain.TranslationOperation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		ops = append(ops, *op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operations: %w", err)
	}

	if ops == nil {
		ops = []domain.TranslationOperation{}
	}

	return ops, nil
}
