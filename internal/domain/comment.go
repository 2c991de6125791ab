package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a note attached to a translation operation, addressed from
// the author to the assignee of the stage the comment concerns. Comments
// are never deleted; Active is a soft-deactivation flag.
type Comment struct {
	ID          uuid.UUID
	OperationID uuid.UUID
	Content     string
	Active      bool
	FromUserID  uuid.UUID
	ToUserID    uuid.UUID
	CreatedAt   time.Time
}
