// Package order implements the read side of orders and the dispatch claim
// marker that gates completion-event emission.
package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/omer-demir/CeviriDukkaniTS/internal/adapter/postgres"
	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// Repo provides order lookups backed by PostgreSQL. Orders are owned by an
// upstream system; this core only reads them and flips the
// revision_dispatched marker.
type Repo struct {
	q postgres.Querier
}

// New creates a new order repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

const getByPartSQL = `
SELECT o.id, o.revision_dispatched, o.created_at
FROM orders o
JOIN order_details od ON od.order_id = o.id
JOIN translation_operations t ON t.id = od.operation_id
WHERE t.document_part_id = $1`

const claimDispatchSQL = `
UPDATE orders SET revision_dispatched = TRUE
WHERE id = $1 AND revision_dispatched = FALSE`

const releaseDispatchSQL = `
UPDATE orders SET revision_dispatched = FALSE
WHERE id = $1 AND revision_dispatched = TRUE`

// GetByPart resolves the order owning the given document part.
func (r *Repo) GetByPart(ctx context.Context, partID uuid.UUID) (*domain.Order, error) {
	querier := postgres.QuerierFromCtx(ctx, r.q)

	var o domain.Order
	err := querier.QueryRow(ctx, getByPartSQL, partID).
		Scan(&o.ID, &o.RevisionDispatched, &o.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "order for part", partID)
	}

	return &o, nil
}

// ClaimRevisionDispatch atomically claims the right to emit the order's
// completion event. It returns true for exactly one caller per order; every
// later call returns false until the claim is released.
func (r *Repo) ClaimRevisionDispatch(ctx context.Context, orderID uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.q)

	tag, err := querier.Exec(ctx, claimDispatchSQL, orderID)
	if err != nil {
		return false, postgres.MapError(err, "order", orderID)
	}

	return tag.RowsAffected() > 0, nil
}

// ReleaseRevisionDispatch undoes a claim whose dispatch failed so a later
// completion check can emit the event.
func (r *Repo) ReleaseRevisionDispatch(ctx context.Context, orderID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.q)

	if _, err := querier.Exec(ctx, releaseDispatchSQL, orderID); err != nil {
		return postgres.MapError(err, "order", orderID)
	}

	return nil
}
