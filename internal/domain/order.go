package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the order-level status code carried on order events.
// The workflow core only ever emits RevisionNeeded; the other codes exist
// for downstream consumers of the same enumeration.
type OrderStatus int

const (
	OrderStatusPending        OrderStatus = 1
	OrderStatusInProgress     OrderStatus = 2
	OrderStatusRevisionNeeded OrderStatus = 3
	OrderStatusCompleted      OrderStatus = 4
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "PENDING"
	case OrderStatusInProgress:
		return "IN_PROGRESS"
	case OrderStatusRevisionNeeded:
		return "REVISION_NEEDED"
	case OrderStatusCompleted:
		return "COMPLETED"
	}
	return "UNKNOWN"
}

// Order is the parent unit of work composed of one or more document parts.
// Read-only from the workflow core's viewpoint, except for the
// RevisionDispatched claim marker that gates completion-event emission.
type Order struct {
	ID                 uuid.UUID
	RevisionDispatched bool
	CreatedAt          time.Time
}

// OrderDetail links an order to the translation operation of one of its
// document parts.
type OrderDetail struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	OperationID uuid.UUID
}
