// Package rating aggregates translator quality scores for an order.
package rating

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type translatorProvider interface {
	TranslatorsByOrderQuality(ctx context.Context, orderID uuid.UUID) ([]domain.User, error)
}

type scoreRepo interface {
	ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.UserScore, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service computes order-level translator quality ratings.
type Service struct {
	log         *slog.Logger
	translators translatorProvider
	scores      scoreRepo
}

// NewService creates a new rating service.
func NewService(logger *slog.Logger, translators translatorProvider, scores scoreRepo) *Service {
	return &Service{
		log:         logger.With("service", "rating"),
		translators: translators,
		scores:      scores,
	}
}

// AverageDocumentPartCount returns the order's quality rating: the mean of
// the stored average translating scores of the order's quality-matched
// translators, rounded up to the next integer. An order whose translators
// carry no scores yields ErrEmptyAggregate.
func (s *Service) AverageDocumentPartCount(ctx context.Context, orderID uuid.UUID) (int, error) {
	if orderID == uuid.Nil {
		return 0, domain.ValidationErrorf("order_id", "required")
	}

	users, err := s.translators.TranslatorsByOrderQuality(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("fetch translators for order %s: %w", orderID, err)
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	scores, err := s.scores.ListByUsers(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("load scores for order %s: %w", orderID, err)
	}

	if len(scores) == 0 {
		return 0, fmt.Errorf("order %s: %w", orderID, domain.ErrEmptyAggregate)
	}

	var sum float64
	for _, score := range scores {
		sum += score.AverageTranslatingScore
	}
	rating := int(math.Ceil(sum / float64(len(scores))))

	s.log.DebugContext(ctx, "order rating computed",
		slog.String("order_id", orderID.String()),
		slog.Int("translators", len(scores)),
		slog.Int("rating", rating),
	)

	return rating, nil
}
