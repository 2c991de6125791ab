package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateOrderStatusEvent_ToEventMessage(t *testing.T) {
	orderID := uuid.New()
	opID := uuid.New()

	evt := UpdateOrderStatusEvent{
		OrderID:     orderID,
		StatusID:    OrderStatusRevisionNeeded,
		OperationID: opID,
	}

	msg, err := evt.ToEventMessage()
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.Equal(t, EventTypeUpdateOrderStatus, msg.Type)
	assert.False(t, msg.CreatedAt.IsZero())

	var decoded UpdateOrderStatusEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	assert.Equal(t, evt, decoded)
}

func TestToEventMessage_FreshIDPerEnvelope(t *testing.T) {
	evt := UpdateOrderStatusEvent{
		OrderID:     uuid.New(),
		StatusID:    OrderStatusRevisionNeeded,
		OperationID: uuid.New(),
	}

	first, err := evt.ToEventMessage()
	require.NoError(t, err)
	second, err := evt.ToEventMessage()
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestOperation_ContentFor(t *testing.T) {
	op := TranslationOperation{
		TranslatedContent: "çeviri",
		EditedContent:     "düzenleme",
		ProofReadContent:  "son okuma",
	}

	assert.Equal(t, "çeviri", op.ContentFor(RoleTranslator))
	assert.Equal(t, "düzenleme", op.ContentFor(RoleEditor))
	assert.Equal(t, "son okuma", op.ContentFor(RoleProofReader))
	assert.Equal(t, "", op.ContentFor(Role("UNKNOWN")))
}

func TestOperation_AssigneeFor(t *testing.T) {
	translatorID := uuid.New()
	op := TranslationOperation{TranslatorID: &translatorID}

	assert.Equal(t, &translatorID, op.AssigneeFor(RoleTranslator))
	assert.Nil(t, op.AssigneeFor(RoleEditor))
}
