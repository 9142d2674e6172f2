// internal/database/querier.go
package database

import (
	"context"
)

type Querier interface {
	CountRepositories(ctx context.Context) (int64, error)
	GetRepositoryByIDOrFullName(ctx context.Context, arg GetRepositoryByIDOrFullNameParams) (Repository, error)
	ListRepositoriesByStars(ctx context.Context, arg ListRepositoriesByStarsParams) ([]Repository, error)
	UpsertRepository(ctx context.Context, arg UpsertRepositoryParams) (Repository, error)
}

var _ Querier = (*Queries)(nil)
