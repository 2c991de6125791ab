// Package workflow implements the document revision pipeline: each
// document part moves through translation, editing and proof-reading,
// and the finish of the last proof-read on an order emits exactly one
// order status event.
package workflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/omer-demir/CeviriDukkaniTS/internal/config"
	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type operationRepo interface {
	GetByPartAndActor(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID) (*domain.TranslationOperation, error)
	GetByPart(ctx context.Context, partID uuid.UUID) (*domain.TranslationOperation, error)
	ListByActor(ctx context.Context, role domain.Role, actorID uuid.UUID) ([]domain.TranslationOperation, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.TranslationOperation, error)
	BatchCreate(ctx context.Context, ops []domain.NewOperation) ([]domain.TranslationOperation, error)
	UpdateContent(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID, content string, version int64) (*domain.TranslationOperation, error)
	UpdateStatus(ctx context.Context, partID uuid.UUID, role domain.Role, actorID uuid.UUID, status domain.ProgressStatus, version int64) (*domain.TranslationOperation, error)
}

type commentRepo interface {
	Create(ctx context.Context, c domain.Comment) (*domain.Comment, error)
	ListByOperation(ctx context.Context, operationID uuid.UUID) ([]domain.Comment, error)
}

type orderRepo interface {
	GetByPart(ctx context.Context, partID uuid.UUID) (*domain.Order, error)
	ClaimRevisionDispatch(ctx context.Context, orderID uuid.UUID) (bool, error)
	ReleaseRevisionDispatch(ctx context.Context, orderID uuid.UUID) error
}

type dispatcher interface {
	Dispatch(ctx context.Context, events []domain.EventMessage) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the revision workflow business logic.
type Service struct {
	log        *slog.Logger
	operations operationRepo
	comments   commentRepo
	orders     orderRepo
	events     dispatcher
	tx         txManager
	cfg        config.WorkflowConfig
	locks      *orderLocks
}

// NewService creates a new workflow service.
func NewService(
	logger *slog.Logger,
	operations operationRepo,
	comments commentRepo,
	orders orderRepo,
	events dispatcher,
	tx txManager,
	cfg config.WorkflowConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "workflow"),
		operations: operations,
		comments:   comments,
		orders:     orders,
		events:     events,
		tx:         tx,
		cfg:        cfg,
		locks:      newOrderLocks(),
	}
}

// storeCtx bounds a store round trip by the configured timeout.
func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.StoreTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.StoreTimeout)
}
