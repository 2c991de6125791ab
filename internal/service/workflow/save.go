package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// SaveOperations bulk-inserts one operation per document part, the entry
// point for upstream order ingestion. An empty batch is a no-op.
func (s *Service) SaveOperations(ctx context.Context, ops []domain.NewOperation) ([]domain.TranslationOperation, error) {
	if err := s.validateNewOperations(ops); err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return []domain.TranslationOperation{}, nil
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	created, err := s.operations.BatchCreate(ctx, ops)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "operations ingested",
		slog.Int("count", len(created)),
	)

	return created, nil
}

// HandleOrderDetailEvent consumes a CreateOrderDetailEvent envelope.
// Redeliveries hit the unique document part constraint and are treated
// as already processed.
func (s *Service) HandleOrderDetailEvent(ctx context.Context, msg domain.EventMessage) error {
	var event domain.CreateOrderDetailEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("decode %s payload: %w", msg.Type, err)
	}

	if _, err := s.SaveOperations(ctx, event.Operations); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			s.log.InfoContext(ctx, "order detail event already processed",
				slog.String("event_id", msg.ID.String()),
				slog.String("order_id", event.OrderID.String()),
			)
			return nil
		}
		return err
	}

	return nil
}
