package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// FinishResult reports the outcome of a FinishStage call. OrderComplete
// and EventDispatched are only meaningful for proof-reader finishes;
// OrderID is set once the owning order has been resolved.
type FinishResult struct {
	Operation       *domain.TranslationOperation
	OrderID         *uuid.UUID
	OrderComplete   bool
	EventDispatched bool
}

// FinishStage marks the actor's stage done on the part's operation. A
// proof-reader finish additionally evaluates whether every operation of
// the owning order is terminal and, when so, claims and emits the
// order's revision event exactly once.
//
// When the completion check or the event handoff fails after the status
// write, the write is still durable; the call returns the populated
// result together with an error wrapping domain.ErrEventDispatch so the
// caller knows the downstream notification may be missing. A failure
// after a successful claim additionally releases the claim so a later
// finish can retry the emission.
func (s *Service) FinishStage(ctx context.Context, role domain.Role, actorID, partID uuid.UUID) (*FinishResult, error) {
	if err := validateSelector(role, actorID, partID); err != nil {
		return nil, err
	}

	sctx, cancel := s.storeCtx(ctx)
	op, err := s.operations.GetByPartAndActor(sctx, partID, role, actorID)
	if err != nil {
		cancel()
		return nil, err
	}

	updated, err := s.operations.UpdateStatus(sctx, partID, role, actorID, role.Done(), op.Version)
	cancel()
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "stage finished",
		slog.String("document_part_id", partID.String()),
		slog.String("role", role.String()),
		slog.String("status", updated.Status.String()),
	)

	res := &FinishResult{Operation: updated}
	if role != domain.RoleProofReader {
		return res, nil
	}

	return s.evaluateCompletion(ctx, res)
}

// evaluateCompletion runs after a proof-reader finish: under the
// per-order lock it takes a fresh snapshot of the order's operations in
// one transaction and, if all are terminal, claims the dispatch marker
// inside the same transaction before emitting the event. Every failure
// here happens after the durable status write, so it is reported through
// domain.ErrEventDispatch alongside the populated result.
func (s *Service) evaluateCompletion(ctx context.Context, res *FinishResult) (*FinishResult, error) {
	op := res.Operation

	sctx, cancel := s.storeCtx(ctx)
	ord, err := s.orders.GetByPart(sctx, op.DocumentPartID)
	cancel()
	if err != nil {
		return res, fmt.Errorf("resolve order for part %s: %w: %w", op.DocumentPartID, domain.ErrEventDispatch, err)
	}
	res.OrderID = &ord.ID

	unlock := s.locks.lock(ord.ID)
	defer unlock()

	var complete, claimed bool

	sctx, cancel = s.storeCtx(ctx)
	err = s.tx.RunInTx(sctx, func(txCtx context.Context) error {
		ops, err := s.operations.ListByOrder(txCtx, ord.ID)
		if err != nil {
			return fmt.Errorf("list order operations: %w", err)
		}
		if len(ops) == 0 {
			return fmt.Errorf("order %s has no operations: %w", ord.ID, domain.ErrEmptyAggregate)
		}

		for _, sibling := range ops {
			if !sibling.Status.Terminal() {
				return nil
			}
		}
		complete = true

		claimed, err = s.orders.ClaimRevisionDispatch(txCtx, ord.ID)
		if err != nil {
			return fmt.Errorf("claim revision dispatch: %w", err)
		}
		return nil
	})
	cancel()
	if err != nil {
		return res, fmt.Errorf("order %s completion check: %w: %w", ord.ID, domain.ErrEventDispatch, err)
	}

	res.OrderComplete = complete
	if !complete || !claimed {
		return res, nil
	}

	event := domain.UpdateOrderStatusEvent{
		OrderID:     ord.ID,
		StatusID:    domain.OrderStatusRevisionNeeded,
		OperationID: op.ID,
	}
	msg, err := event.ToEventMessage()
	if err != nil {
		s.releaseClaim(ctx, ord.ID)
		return res, fmt.Errorf("order %s: %w: %w", ord.ID, domain.ErrEventDispatch, err)
	}

	if err := s.events.Dispatch(ctx, []domain.EventMessage{msg}); err != nil {
		s.releaseClaim(ctx, ord.ID)
		return res, fmt.Errorf("order %s: %w: %w", ord.ID, domain.ErrEventDispatch, err)
	}

	res.EventDispatched = true
	s.log.InfoContext(ctx, "order revision event dispatched",
		slog.String("order_id", ord.ID.String()),
		slog.String("operation_id", op.ID.String()),
		slog.String("event_id", msg.ID.String()),
	)

	return res, nil
}

func (s *Service) releaseClaim(ctx context.Context, orderID uuid.UUID) {
	sctx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.orders.ReleaseRevisionDispatch(sctx, orderID); err != nil {
		s.log.ErrorContext(ctx, "releasing dispatch claim failed",
			slog.String("order_id", orderID.String()),
			slog.String("error", err.Error()),
		)
	}
}
