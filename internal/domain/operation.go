package domain

import (
	"time"

	"github.com/google/uuid"
)

// TranslationOperation is one (document part, translator, editor,
// proof-reader) assignment. Exactly one operation exists per document part.
// Each role owns its own content field; the progress status is shared and
// guarded by the Version column (compare-and-swap on every write).
type TranslationOperation struct {
	ID             uuid.UUID
	DocumentPartID uuid.UUID

	TranslatorID  *uuid.UUID
	EditorID      *uuid.UUID
	ProofReaderID *uuid.UUID

	TranslatedContent string
	EditedContent     string
	ProofReadContent  string

	Status  ProgressStatus
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContentFor returns the content field owned by the given role.
func (o TranslationOperation) ContentFor(role Role) string {
	switch role {
	case RoleTranslator:
		return o.TranslatedContent
	case RoleEditor:
		return o.EditedContent
	case RoleProofReader:
		return o.ProofReadContent
	}
	return ""
}

// AssigneeFor returns the user assigned to the given role, if any.
func (o TranslationOperation) AssigneeFor(role Role) *uuid.UUID {
	switch role {
	case RoleTranslator:
		return o.TranslatorID
	case RoleEditor:
		return o.EditorID
	case RoleProofReader:
		return o.ProofReaderID
	}
	return nil
}

// NewOperation describes an operation row to be bulk-inserted when an
// order's document parts are ingested.
type NewOperation struct {
	DocumentPartID uuid.UUID  `json:"documentPartId"`
	TranslatorID   *uuid.UUID `json:"translatorId,omitempty"`
	EditorID       *uuid.UUID `json:"editorId,omitempty"`
	ProofReaderID  *uuid.UUID `json:"proofReaderId,omitempty"`
}
