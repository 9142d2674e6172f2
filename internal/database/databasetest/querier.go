// Package databasetest provides an in-memory database.Querier for tests.
package databasetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github-trending-api/internal/database"
)

// Querier keeps repositories in a map keyed by id and mirrors the ordering and
// conflict behaviour of the SQL queries.
type Querier struct {
	mu    sync.Mutex
	repos map[int64]database.Repository

	upserts int
}

func NewQuerier(seed ...database.Repository) *Querier {
	q := &Querier{repos: make(map[int64]database.Repository)}
	for _, r := range seed {
		q.repos[r.ID] = r
	}
	return q
}

func (q *Querier) CountRepositories(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.repos)), nil
}

func (q *Querier) GetRepositoryByIDOrFullName(ctx context.Context, arg database.GetRepositoryByIDOrFullNameParams) (database.Repository, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if r, ok := q.repos[arg.ID]; ok {
		return r, nil
	}
	for _, r := range q.repos {
		if r.FullName == arg.FullName {
			return r, nil
		}
	}
	return database.Repository{}, pgx.ErrNoRows
}

func (q *Querier) ListRepositoriesByStars(ctx context.Context, arg database.ListRepositoriesByStarsParams) ([]database.Repository, error) {
	all := q.Snapshot()
	sort.Slice(all, func(i, j int) bool {
		if all[i].Stars != all[j].Stars {
			return all[i].Stars > all[j].Stars
		}
		return all[i].ID < all[j].ID
	})
	start := min(max(int(arg.Offset), 0), len(all))
	end := min(start+int(arg.Limit), len(all))
	return all[start:end], nil
}

func (q *Querier) UpsertRepository(ctx context.Context, arg database.UpsertRepositoryParams) (database.Repository, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	r, ok := q.repos[arg.ID]
	if !ok {
		r.CreatedAt = now
	}
	r.ID = arg.ID
	r.Name = arg.Name
	r.FullName = arg.FullName
	r.Stars = arg.Stars
	r.Description = arg.Description
	r.Url = arg.Url
	r.Language = arg.Language
	r.UpdatedAt = now
	q.repos[arg.ID] = r
	q.upserts++
	return r, nil
}

// Snapshot returns a copy of every stored row in unspecified order.
func (q *Querier) Snapshot() []database.Repository {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]database.Repository, 0, len(q.repos))
	for _, r := range q.repos {
		out = append(out, r)
	}
	return out
}

// UpsertCount returns how many upserts have been applied.
func (q *Querier) UpsertCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.upserts
}

var _ database.Querier = (*Querier)(nil)
