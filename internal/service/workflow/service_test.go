package workflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omer-demir/CeviriDukkaniTS/internal/config"
	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// ---------------------------------------------------------------------------
// Test mocks (minimal, inline)
// ---------------------------------------------------------------------------

type mockOperationRepo struct {
	getByPartAndActorFunc func(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID) (*domain.TranslationOperation, error)
	getByPartFunc         func(ctx context.Context, partID uuid.UUID) (*domain.TranslationOperation, error)
	listByActorFunc       func(ctx context.Context, role domain.Role, actorID uuid.UUID) ([]domain.TranslationOperation, error)
	listByOrderFunc       func(ctx context.Context, orderID uuid.UUID) ([]domain.TranslationOperation, error)
	batchCreateFunc       func(ctx context.Context, ops []domain.NewOperation) ([]domain.TranslationOperation, error)
	updateContentFunc     func(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID, content string, version int64) (*domain.TranslationOperation, error)
	updateStatusFunc      func(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID, status domain.ProgressStatus, version int64) (*domain.TranslationOperation, error)

	mu                 sync.Mutex
	updateContentCalls int
	updateStatusCalls  int
}

func (m *mockOperationRepo) GetByPartAndActor(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID) (*domain.TranslationOperation, error) {
	if m.getByPartAndActorFunc != nil {
		return m.getByPartAndActorFunc(ctx, partID, role, actorID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockOperationRepo) GetByPart(ctx context.Context, partID uuid.UUID) (*domain.TranslationOperation, error) {
	if m.getByPartFunc != nil {
		return m.getByPartFunc(ctx, partID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockOperationRepo) ListByActor(ctx context.Context, role domain.Role, actorID uuid.UUID) ([]domain.TranslationOperation, error) {
	if m.listByActorFunc != nil {
		return m.listByActorFunc(ctx, role, actorID)
	}
	return []domain.TranslationOperation{}, nil
}

func (m *mockOperationRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.TranslationOperation, error) {
	if m.listByOrderFunc != nil {
		return m.listByOrderFunc(ctx, orderID)
	}
	return []domain.TranslationOperation{}, nil
}

func (m *mockOperationRepo) BatchCreate(ctx context.Context, ops []domain.NewOperation) ([]domain.TranslationOperation, error) {
	if m.batchCreateFunc != nil {
		return m.batchCreateFunc(ctx, ops)
	}
	return []domain.TranslationOperation{}, nil
}

func (m *mockOperationRepo) UpdateContent(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID, content string, version int64) (*domain.TranslationOperation, error) {
	m.mu.Lock()
	m.updateContentCalls++
	m.mu.Unlock()
	if m.updateContentFunc != nil {
		return m.updateContentFunc(ctx, partID, role, actorID, content, version)
	}
	return nil, domain.ErrNotFound
}

func (m *mockOperationRepo) UpdateStatus(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID, status domain.ProgressStatus, version int64) (*domain.TranslationOperation, error) {
	m.mu.Lock()
	m.updateStatusCalls++
	m.mu.Unlock()
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, partID, role, actorID, status, version)
	}
	return nil, domain.ErrNotFound
}

func (m *mockOperationRepo) contentCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateContentCalls
}

type mockCommentRepo struct {
	createFunc          func(ctx context.Context, c domain.Comment) (*domain.Comment, error)
	listByOperationFunc func(ctx context.Context, operationID uuid.UUID) ([]domain.Comment, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, c domain.Comment) (*domain.Comment, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, c)
	}
	c.ID = uuid.New()
	c.Active = true
	return &c, nil
}

func (m *mockCommentRepo) ListByOperation(ctx context.Context, operationID uuid.UUID) ([]domain.Comment, error) {
	if m.listByOperationFunc != nil {
		return m.listByOperationFunc(ctx, operationID)
	}
	return []domain.Comment{}, nil
}

type mockOrderRepo struct {
	getByPartFunc func(ctx context.Context, partID uuid.UUID) (*domain.Order, error)
	claimFunc     func(ctx context.Context, orderID uuid.UUID) (bool, error)
	releaseFunc   func(ctx context.Context, orderID uuid.UUID) error

	mu           sync.Mutex
	claimCalls   int
	releaseCalls int
	dispatched   bool
}

func (m *mockOrderRepo) GetByPart(ctx context.Context, partID uuid.UUID) (*domain.Order, error) {
	if m.getByPartFunc != nil {
		return m.getByPartFunc(ctx, partID)
	}
	return nil, domain.ErrNotFound
}

// Claim defaults to first-caller-wins semantics like the real marker.
func (m *mockOrderRepo) ClaimRevisionDispatch(ctx context.Context, orderID uuid.UUID) (bool, error) {
	if m.claimFunc != nil {
		return m.claimFunc(ctx, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.claimCalls++
	if m.dispatched {
		return false, nil
	}
	m.dispatched = true
	return true, nil
}

func (m *mockOrderRepo) ReleaseRevisionDispatch(ctx context.Context, orderID uuid.UUID) error {
	if m.releaseFunc != nil {
		return m.releaseFunc(ctx, orderID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.releaseCalls++
	m.dispatched = false
	return nil
}

func (m *mockOrderRepo) releases() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.releaseCalls
}

type mockDispatcher struct {
	dispatchFunc func(ctx context.Context, events []domain.EventMessage) error

	mu     sync.Mutex
	events []domain.EventMessage
}

func (m *mockDispatcher) Dispatch(ctx context.Context, events []domain.EventMessage) error {
	if m.dispatchFunc != nil {
		return m.dispatchFunc(ctx, events)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *mockDispatcher) dispatched() []domain.EventMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.EventMessage(nil), m.events...)
}

type mockTxManager struct {
	runInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.runInTxFunc != nil {
		return m.runInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type testDeps struct {
	ops      *mockOperationRepo
	comments *mockCommentRepo
	orders   *mockOrderRepo
	events   *mockDispatcher
	tx       *mockTxManager
}

func newTestDeps() *testDeps {
	return &testDeps{
		ops:      &mockOperationRepo{},
		comments: &mockCommentRepo{},
		orders:   &mockOrderRepo{},
		events:   &mockDispatcher{},
		tx:       &mockTxManager{},
	}
}

func (d *testDeps) service(cfg config.WorkflowConfig) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, d.ops, d.comments, d.orders, d.events, d.tx, cfg)
}

func defaultCfg() config.WorkflowConfig {
	return config.WorkflowConfig{
		StoreTimeout:   5 * time.Second,
		MaxContentSize: 1 << 20,
		MaxBatchSize:   500,
	}
}

func operationFixture(partID uuid.UUID, actorID uuid.UUID, role domain.Role, status domain.ProgressStatus) *domain.TranslationOperation {
	op := &domain.TranslationOperation{
		ID:             uuid.New(),
		DocumentPartID: partID,
		Status:         status,
		Version:        3,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	switch role {
	case domain.RoleTranslator:
		op.TranslatorID = &actorID
	case domain.RoleEditor:
		op.EditorID = &actorID
	case domain.RoleProofReader:
		op.ProofReaderID = &actorID
	}
	return op
}

// ---------------------------------------------------------------------------
// UpdateContent
// ---------------------------------------------------------------------------

func TestUpdateContent(t *testing.T) {
	partID := uuid.New()
	actorID := uuid.New()

	t.Run("writes through the version read first", func(t *testing.T) {
		deps := newTestDeps()
		current := operationFixture(partID, actorID, domain.RoleEditor, domain.StatusTranslatorDone)
		current.Version = 7

		deps.ops.getByPartAndActorFunc = func(ctx context.Context, p uuid.UUID, role domain.Role, a uuid.UUID) (*domain.TranslationOperation, error) {
			assert.Equal(t, partID, p)
			assert.Equal(t, domain.RoleEditor, role)
			assert.Equal(t, actorID, a)
			return current, nil
		}
		deps.ops.updateContentFunc = func(ctx context.Context, p uuid.UUID, role domain.Role, a uuid.UUID, content string, version int64) (*domain.TranslationOperation, error) {
			assert.Equal(t, "edited text", content)
			assert.Equal(t, int64(7), version)
			updated := *current
			updated.EditedContent = content
			updated.Status = domain.StatusEditorInProgress
			updated.Version = version + 1
			return &updated, nil
		}

		got, err := deps.service(defaultCfg()).UpdateContent(context.Background(), domain.RoleEditor, actorID, partID, "edited text")

		require.NoError(t, err)
		assert.Equal(t, domain.StatusEditorInProgress, got.Status)
		assert.Equal(t, "edited text", got.EditedContent)
		assert.Empty(t, got.TranslatedContent)
		assert.Empty(t, got.ProofReadContent)
	})

	t.Run("actor mismatch leaves the store untouched", func(t *testing.T) {
		deps := newTestDeps()
		deps.ops.getByPartAndActorFunc = func(ctx context.Context, p uuid.UUID, role domain.Role, a uuid.UUID) (*domain.TranslationOperation, error) {
			return nil, domain.ErrNotFound
		}

		_, err := deps.service(defaultCfg()).UpdateContent(context.Background(), domain.RoleTranslator, actorID, partID, "text")

		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Zero(t, deps.ops.contentCalls())
	})

	t.Run("version conflict surfaces", func(t *testing.T) {
		deps := newTestDeps()
		current := operationFixture(partID, actorID, domain.RoleTranslator, domain.StatusTranslatorInProgress)
		deps.ops.getByPartAndActorFunc = func(ctx context.Context, p uuid.UUID, role domain.Role, a uuid.UUID) (*domain.TranslationOperation, error) {
			return current, nil
		}
		deps.ops.updateContentFunc = func(ctx context.Context, p uuid.UUID, role domain.Role, a uuid.UUID, content string, version int64) (*domain.TranslationOperation, error) {
			return nil, domain.ErrConflict
		}

		_, err := deps.service(defaultCfg()).UpdateContent(context.Background(), domain.RoleTranslator, actorID, partID, "text")

		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("write allowed after the stage was finished", func(t *testing.T) {
		deps := newTestDeps()
		current := operationFixture(partID, actorID, domain.RoleProofReader, domain.StatusProofReaderDone)
		deps.ops.getByPartAndActorFunc = func(ctx context.Context, p uuid.UUID, role domain.Role, a uuid.UUID) (*domain.TranslationOperation, error) {
			return current, nil
		}
		deps.ops.updateContentFunc = func(ctx context.Context, p uuid.UUID, role domain.Role, a uuid.UUID, content string, version int64) (*domain.TranslationOperation, error) {
			updated := *current
			updated.ProofReadContent = content
			updated.Status = domain.StatusProofReaderInProgress
			return &updated, nil
		}

		got, err := deps.service(defaultCfg()).UpdateContent(context.Background(), domain.RoleProofReader, actorID, partID, "revised")

		require.NoError(t, err)
		assert.Equal(t, domain.StatusProofReaderInProgress, got.Status)
		assert.Equal(t, 1, deps.ops.contentCalls())
	})

	t.Run("validation", func(t *testing.T) {
		deps := newTestDeps()
		cfg := defaultCfg()
		cfg.MaxContentSize = 5
		svc := deps.service(cfg)

		cases := []struct {
			name    string
			role    domain.Role
			actorID uuid.UUID
			partID  uuid.UUID
			content string
		}{
			{"unknown role", domain.Role("REVIEWER"), actorID, partID, "hi"},
			{"nil actor", domain.RoleEditor, uuid.Nil, partID, "hi"},
			{"nil part", domain.RoleEditor, actorID, uuid.Nil, "hi"},
			{"empty content", domain.RoleEditor, actorID, partID, ""},
			{"oversize content", domain.RoleEditor, actorID, partID, "too long here"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.UpdateContent(context.Background(), tc.role, tc.actorID, tc.partID, tc.content)
				assert.ErrorIs(t, err, domain.ErrValidation)
			})
		}
		assert.Zero(t, deps.ops.contentCalls())
	})
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

func TestContentForRole(t *testing.T) {
	partID := uuid.New()
	actorID := uuid.New()

	deps := newTestDeps()
	current := operationFixture(partID, actorID, domain.RoleEditor, domain.StatusEditorInProgress)
	current.TranslatedContent = "translated"
	current.EditedContent = "edited"
	deps.ops.getByPartAndActorFunc = func(ctx context.Context, p uuid.UUID, role domain.Role, a uuid.UUID) (*domain.TranslationOperation, error) {
		return current, nil
	}
	svc := deps.service(defaultCfg())

	got, err := svc.ContentForRole(context.Background(), domain.RoleEditor, actorID, partID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got)
}

func TestContentForNextRole(t *testing.T) {
	partID := uuid.New()
	actorID := uuid.New()

	current := operationFixture(partID, actorID, domain.RoleEditor, domain.StatusTranslatorDone)
	current.TranslatedContent = "translated"
	current.EditedContent = "edited"

	t.Run("editor reads translator output", func(t *testing.T) {
		deps := newTestDeps()
		deps.ops.getByPartAndActorFunc = func(ctx context.Context, p uuid.UUID, role domain.Role, a uuid.UUID) (*domain.TranslationOperation, error) {
			assert.Equal(t, domain.RoleEditor, role)
			return current, nil
		}

		got, err := deps.service(defaultCfg()).ContentForNextRole(context.Background(), domain.RoleEditor, actorID, partID)

		require.NoError(t, err)
		assert.Equal(t, "translated", got)
	})

	t.Run("proof-reader reads editor output", func(t *testing.T) {
		deps := newTestDeps()
		deps.ops.getByPartAndActorFunc = func(ctx context.Context, p uuid.UUID, role domain.Role, a uuid.UUID) (*domain.TranslationOperation, error) {
			return current, nil
		}

		got, err := deps.service(defaultCfg()).ContentForNextRole(context.Background(), domain.RoleProofReader, actorID, partID)

		require.NoError(t, err)
		assert.Equal(t, "edited", got)
	})

	t.Run("translator has no preceding stage", func(t *testing.T) {
		deps := newTestDeps()

		_, err := deps.service(defaultCfg()).ContentForNextRole(context.Background(), domain.RoleTranslator, actorID, partID)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestAssignedJobs(t *testing.T) {
	actorID := uuid.New()

	deps := newTestDeps()
	deps.ops.listByActorFunc = func(ctx context.Context, role domain.Role, a uuid.UUID) ([]domain.TranslationOperation, error) {
		assert.Equal(t, domain.RoleProofReader, role)
		assert.Equal(t, actorID, a)
		return []domain.TranslationOperation{
			*operationFixture(uuid.New(), actorID, domain.RoleProofReader, domain.StatusEditorDone),
			*operationFixture(uuid.New(), actorID, domain.RoleProofReader, domain.StatusProofReaderInProgress),
		}, nil
	}

	jobs, err := deps.service(defaultCfg()).AssignedJobs(context.Background(), domain.RoleProofReader, actorID)

	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	_, err = deps.service(defaultCfg()).AssignedJobs(context.Background(), domain.Role("nope"), actorID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---------------------------------------------------------------------------
// Errors and ordering sanity
// ---------------------------------------------------------------------------

func TestUpdateContent_UpstreamErrorPassesThrough(t *testing.T) {
	partID := uuid.New()
	actorID := uuid.New()
	boom := errors.New("connection reset")

	deps := newTestDeps()
	deps.ops.getByPartAndActorFunc = func(ctx context.Context, p uuid.UUID, role domain.Role, a uuid.UUID) (*domain.TranslationOperation, error) {
		return nil, boom
	}

	_, err := deps.service(defaultCfg()).UpdateContent(context.Background(), domain.RoleTranslator, actorID, partID, "text")

	assert.ErrorIs(t, err, boom)
}
