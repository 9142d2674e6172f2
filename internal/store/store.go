// internal/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github-trending-api/internal/database"
	custom_errors "github-trending-api/internal/errors"
	"github-trending-api/internal/model"
)

// Store is the repository cache backed by a database.Querier.
type Store struct {
	q      database.Querier
	logger *slog.Logger
}

// New creates a Store over the given querier.
func New(q database.Querier, logger *slog.Logger) *Store {
	return &Store{q: q, logger: logger}
}

// List returns one page of repositories ordered by stars, plus the total row count.
// A page whose offset does not fit the query's int32 OFFSET is past every cached
// row and comes back empty.
func (s *Store) List(ctx context.Context, req model.PageRequest) ([]model.Repository, int64, error) {
	if int64(req.Page-1) > math.MaxInt32/int64(max(req.PerPage, 1)) {
		total, err := s.q.CountRepositories(ctx)
		if err != nil {
			return nil, 0, fmt.Errorf("count repositories: %w", err)
		}
		return []model.Repository{}, total, nil
	}

	rows, err := s.q.ListRepositoriesByStars(ctx, database.ListRepositoriesByStarsParams{
		Limit:  int32(req.PerPage),
		Offset: int32(req.Offset()),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list repositories: %w", err)
	}
	total, err := s.q.CountRepositories(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count repositories: %w", err)
	}

	repos := make([]model.Repository, len(rows))
	for i, r := range rows {
		repos[i] = toModel(r)
	}
	return repos, total, nil
}

// Find looks a repository up by id or full name. It returns ErrNotFound on a miss.
func (s *Store) Find(ctx context.Context, key model.LookupKey) (*model.Repository, error) {
	row, err := s.q.GetRepositoryByIDOrFullName(ctx, database.GetRepositoryByIDOrFullNameParams{
		ID:       key.ID(),
		FullName: key.String(),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, custom_errors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get repository %s: %w", key, err)
	}
	repo := toModel(row)
	return &repo, nil
}

// Upsert inserts the repository or overwrites every field of the existing row with the same id.
func (s *Store) Upsert(ctx context.Context, repo model.Repository) (*model.Repository, error) {
	row, err := s.q.UpsertRepository(ctx, database.UpsertRepositoryParams{
		ID:          repo.ID,
		Name:        repo.Name,
		FullName:    repo.FullName,
		Stars:       int32(repo.Stars),
		Description: toPgText(repo.Description),
		Url:         repo.URL,
		Language:    toPgText(repo.Language),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert repository %d: %w", repo.ID, err)
	}
	saved := toModel(row)
	return &saved, nil
}

// UpsertAll upserts the repositories one at a time, in order. It stops at the
// first failure; rows written before it are kept.
func (s *Store) UpsertAll(ctx context.Context, repos []model.Repository) (int, error) {
	for i, r := range repos {
		if _, err := s.Upsert(ctx, r); err != nil {
			return i, err
		}
	}
	s.logger.Debug("Upserted repositories", "count", len(repos))
	return len(repos), nil
}

func toModel(r database.Repository) model.Repository {
	return model.Repository{
		ID:          r.ID,
		Name:        r.Name,
		FullName:    r.FullName,
		Stars:       int(r.Stars),
		Description: fromPgText(r.Description),
		URL:         r.Url,
		Language:    fromPgText(r.Language),
	}
}

func toPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func fromPgText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}
