package workflow

import (
	"github.com/google/uuid"

	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// validateSelector checks the (role, actor, document part) triple every
// actor-scoped operation is addressed by.
func validateSelector(role domain.Role, actorID, partID uuid.UUID) error {
	if !role.IsValid() {
		return domain.ValidationErrorf("role", "unknown role %q", role)
	}
	if actorID == uuid.Nil {
		return domain.ValidationErrorf("actor_id", "required")
	}
	if partID == uuid.Nil {
		return domain.ValidationErrorf("document_part_id", "required")
	}
	return nil
}

// validateContent checks a content payload against the configured limit.
func (s *Service) validateContent(field, content string) error {
	if content == "" {
		return domain.ValidationErrorf(field, "required")
	}
	if s.cfg.MaxContentSize > 0 && len(content) > s.cfg.MaxContentSize {
		return domain.ValidationErrorf(field, "too long (max %d bytes)", s.cfg.MaxContentSize)
	}
	return nil
}

// validateNewOperations checks a bulk ingestion batch.
func (s *Service) validateNewOperations(ops []domain.NewOperation) error {
	if s.cfg.MaxBatchSize > 0 && len(ops) > s.cfg.MaxBatchSize {
		return domain.ValidationErrorf("operations", "too many (max %d)", s.cfg.MaxBatchSize)
	}
	for idx, op := range ops {
		if op.DocumentPartID == uuid.Nil {
			return domain.ValidationErrorf("operations", "missing document part id at index %d", idx)
		}
	}
	return nil
}
