package workflow

import (
	"context"

	"github.com/google/uuid"

	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// AssignedJobs returns every operation the actor holds the given role
// on, in creation order.
func (s *Service) AssignedJobs(ctx context.Context, role domain.Role, actorID uuid.UUID) ([]domain.TranslationOperation, error) {
	if !role.IsValid() {
		return nil, domain.ValidationErrorf("role", "unknown role %q", role)
	}
	if actorID == uuid.Nil {
		return nil, domain.ValidationErrorf("actor_id", "required")
	}

	ctx, cancel := s.storeCtx(ctx)
	defer cancel()

	return s.operations.ListByActor(ctx, role, actorID)
}
