package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event type discriminators carried on the wire.
const (
	EventTypeUpdateOrderStatus = "UpdateOrderStatusEvent"
	EventTypeCreateOrderDetail = "CreateOrderDetailEvent"
)

// EventMessage is the immutable envelope handed to the broker. Every
// envelope carries a fresh ID; consumers deduplicate on it since delivery
// is at-least-once.
type EventMessage struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

// UpdateOrderStatusEvent notifies downstream systems that every document
// part of the order has reached terminal proof-read state and the order
// needs a follow-up pass.
type UpdateOrderStatusEvent struct {
	OrderID     uuid.UUID   `json:"orderId"`
	StatusID    OrderStatus `json:"statusId"`
	OperationID uuid.UUID   `json:"translationOperationId"`
}

// ToEventMessage wraps the event in an envelope with a fresh unique ID.
func (e UpdateOrderStatusEvent) ToEventMessage() (EventMessage, error) {
	return newEventMessage(EventTypeUpdateOrderStatus, e)
}

// CreateOrderDetailEvent announces newly ingested document parts of an
// order, carrying the operation assignments to insert.
type CreateOrderDetailEvent struct {
	OrderID    uuid.UUID      `json:"orderId"`
	Operations []NewOperation `json:"operations"`
}

// ToEventMessage wraps the event in an envelope with a fresh unique ID.
func (e CreateOrderDetailEvent) ToEventMessage() (EventMessage, error) {
	return newEventMessage(EventTypeCreateOrderDetail, e)
}

func newEventMessage(eventType string, payload any) (EventMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return EventMessage{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return EventMessage{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}
