package workflow

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omer-demir/CeviriDukkaniTS/internal/config"
	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

func TestSaveOperations(t *testing.T) {
	translatorID := uuid.New()

	t.Run("inserts the batch", func(t *testing.T) {
		deps := newTestDeps()
		batch := []domain.NewOperation{
			{DocumentPartID: uuid.New(), TranslatorID: &translatorID},
			{DocumentPartID: uuid.New()},
		}
		deps.ops.batchCreateFunc = func(ctx context.Context, ops []domain.NewOperation) ([]domain.TranslationOperation, error) {
			require.Len(t, ops, 2)
			created := make([]domain.TranslationOperation, len(ops))
			for i, op := range ops {
				created[i] = domain.TranslationOperation{
					ID:             uuid.New(),
					DocumentPartID: op.DocumentPartID,
					TranslatorID:   op.TranslatorID,
					Status:         domain.StatusNotStarted,
					Version:        1,
				}
			}
			return created, nil
		}

		created, err := deps.service(defaultCfg()).SaveOperations(context.Background(), batch)

		require.NoError(t, err)
		require.Len(t, created, 2)
		assert.Equal(t, domain.StatusNotStarted, created[0].Status)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		deps := newTestDeps()
		deps.ops.batchCreateFunc = func(ctx context.Context, ops []domain.NewOperation) ([]domain.TranslationOperation, error) {
			t.Fatal("store must not be touched for an empty batch")
			return nil, nil
		}

		created, err := deps.service(defaultCfg()).SaveOperations(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, created)
	})

	t.Run("batch limit", func(t *testing.T) {
		deps := newTestDeps()
		cfg := config.WorkflowConfig{StoreTimeout: defaultCfg().StoreTimeout, MaxBatchSize: 1}
		batch := []domain.NewOperation{
			{DocumentPartID: uuid.New()},
			{DocumentPartID: uuid.New()},
		}

		_, err := deps.service(cfg).SaveOperations(context.Background(), batch)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing part id", func(t *testing.T) {
		deps := newTestDeps()
		batch := []domain.NewOperation{{DocumentPartID: uuid.Nil}}

		_, err := deps.service(defaultCfg()).SaveOperations(context.Background(), batch)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("duplicate part surfaces as already exists", func(t *testing.T) {
		deps := newTestDeps()
		deps.ops.batchCreateFunc = func(ctx context.Context, ops []domain.NewOperation) ([]domain.TranslationOperation, error) {
			return nil, domain.ErrAlreadyExists
		}

		_, err := deps.service(defaultCfg()).SaveOperations(context.Background(), []domain.NewOperation{{DocumentPartID: uuid.New()}})

		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})
}

func TestHandleOrderDetailEvent(t *testing.T) {
	orderID := uuid.New()

	t.Run("ingests the event payload", func(t *testing.T) {
		deps := newTestDeps()
		var got []domain.NewOperation
		deps.ops.batchCreateFunc = func(ctx context.Context, ops []domain.NewOperation) ([]domain.TranslationOperation, error) {
			got = ops
			return []domain.TranslationOperation{}, nil
		}

		event := domain.CreateOrderDetailEvent{
			OrderID:    orderID,
			Operations: []domain.NewOperation{{DocumentPartID: uuid.New()}},
		}
		msg, err := event.ToEventMessage()
		require.NoError(t, err)

		require.NoError(t, deps.service(defaultCfg()).HandleOrderDetailEvent(context.Background(), msg))
		require.Len(t, got, 1)
		assert.Equal(t, event.Operations[0].DocumentPartID, got[0].DocumentPartID)
	})

	t.Run("redelivery is acknowledged", func(t *testing.T) {
		deps := newTestDeps()
		deps.ops.batchCreateFunc = func(ctx context.Context, ops []domain.NewOperation) ([]domain.TranslationOperation, error) {
			return nil, domain.ErrAlreadyExists
		}

		event := domain.CreateOrderDetailEvent{
			OrderID:    orderID,
			Operations: []domain.NewOperation{{DocumentPartID: uuid.New()}},
		}
		msg, err := event.ToEventMessage()
		require.NoError(t, err)

		assert.NoError(t, deps.service(defaultCfg()).HandleOrderDetailEvent(context.Background(), msg))
	})

	t.Run("undecodable payload is an error", func(t *testing.T) {
		deps := newTestDeps()
		msg := domain.EventMessage{ID: uuid.New(), Type: domain.EventTypeCreateOrderDetail, Payload: []byte("{broken")}

		assert.Error(t, deps.service(defaultCfg()).HandleOrderDetailEvent(context.Background(), msg))
	})
}
