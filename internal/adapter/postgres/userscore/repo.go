// Package userscore implements the read-only store of translator quality
// scores consumed by the rating aggregator.
package userscore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/omer-demir/CeviriDukkaniTS/internal/adapter/postgres"
	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// Repo provides user score lookups backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new user score repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

const listByUsersSQL = `
SELECT user_id, average_translating_score
FROM user_scores
WHERE user_id = ANY($1::uuid[])`

// ListByUsers returns the stored average translating score of each user in
// the set that has one. Users without a score row are simply absent from
// the result.
func (r *Repo) ListByUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.UserScore, error) {
	if len(userIDs) == 0 {
		return []domain.UserScore{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.q)

	rows, err := querier.Query(ctx, listByUsersSQL, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list user scores: %w", err)
	}
	defer rows.Close()

	var scores []domain.UserScore
	for rows.Next() {
		var s domain.UserScore
		if err := rows.Scan(&s.UserID, &s.AverageTranslatingScore); err != nil {
			return nil, fmt.Errorf("scan user score: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user scores: %w", err)
	}

	if scores == nil {
		scores = []domain.UserScore{}
	}

	return scores, nil
}
