package workflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// UpdateContent writes the content field owned by role on the part's
// operation and marks the role's stage in progress. The write is allowed
// at any progress status; re-opening a finished stage is the actor's
// call. An actor not holding the role on the part gets ErrNotFound, a
// concurrent writer racing the version gets ErrConflict.
func (s *Service) UpdateContent(ctx context.Context, role domain.Role, actorID, partID uuid.UUID, content string) (*domain.TranslationOperation, error) {
	if err := validateSelector(role, actorID, partID); err != nil {
		return nil, err
	}
	if err := s.validateContent("content", content); err != nil {
		return nil, err
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	op, err := s.operations.GetByPartAndActor(ctx, partID, role, actorID)
	if err != nil {
		return nil, err
	}

	updated, err := s.operations.UpdateContent(ctx, partID, role, actorID, content, op.Version)
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "stage content updated",
		slog.String("document_part_id", partID.String()),
		slog.String("role", role.String()),
		slog.String("status", updated.Status.String()),
	)

	return updated, nil
}

// ContentForRole returns the content the actor's own stage has produced
// for the document part.
func (s *Service) ContentForRole(ctx context.Context, role domain.Role, actorID, partID uuid.UUID) (string, error) {
	if err := validateSelector(role, actorID, partID); err != nil {
		return "", err
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	op, err := s.operations.GetByPartAndActor(ctx, partID, role, actorID)
	if err != nil {
		return "", err
	}

	return op.ContentFor(role), nil
}

// ContentForNextRole returns the preceding stage's output for the actor
// to review: the editor reads the translated content, the proof-reader
// reads the edited content. The translator has no preceding stage.
func (s *Service) ContentForNextRole(ctx context.Context, role domain.Role, actorID, partID uuid.UUID) (string, error) {
	if err := validateSelector(role, actorID, partID); err != nil {
		return "", err
	}

	prev, ok := role.Previous()
	if !ok {
		return "", domain.ValidationErrorf("role", "%s has no preceding stage", role)
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	op, err := s.operations.GetByPartAndActor(ctx, partID, role, actorID)
	if err != nil {
		return "", err
	}

	return op.ContentFor(prev), nil
}
