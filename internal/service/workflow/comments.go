package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// AddComment attaches a note to the part's operation, addressed to the
// actor assigned to the given stage. An unassigned stage is reported as
// ErrNotFound.
func (s *Service) AddComment(ctx context.Context, stage domain.Role, partID, authorID uuid.UUID, content string) (*domain.Comment, error) {
	if err := validateSelector(stage, authorID, partID); err != nil {
		return nil, err
	}
	if err := s.validateContent("content", content); err != nil {
		return nil, err
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	op, err := s.operations.GetByPart(ctx, partID)
	if err != nil {
		return nil, err
	}

	receiver := op.AssigneeFor(stage)
	if receiver == nil {
		return nil, fmt.Errorf("stage %s unassigned on part %s: %w", stage, partID, domain.ErrNotFound)
	}

	created, err := s.comments.Create(ctx, domain.Comment{
		OperationID: op.ID,
		Content:     content,
		FromUserID:  authorID,
		ToUserID:    *receiver,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.DebugContext(ctx, "comment added",
		slog.String("document_part_id", partID.String()),
		slog.String("stage", stage.String()),
		slog.String("comment_id", created.ID.String()),
	)

	return created, nil
}

// Comments returns the part's comments in creation order.
func (s *Service) Comments(ctx context.Context, partID uuid.UUID) ([]domain.Comment, error) {
	if partID == uuid.Nil {
		return nil, domain.ValidationErrorf("document_part_id", "required")
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	op, err := s.operations.GetByPart(ctx, partID)
	if err != nil {
		return nil, err
	}

	return s.comments.ListByOperation(ctx, op.ID)
}
