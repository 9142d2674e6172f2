// internal/repos/service.go
package repos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	custom_errors "github-trending-api/internal/errors"
	"github-trending-api/internal/github"
	"github-trending-api/internal/model"
)

// GitHubClient is the subset of the GitHub API the read path depends on.
type GitHubClient interface {
	SearchTopRepositories(ctx context.Context, page, perPage int) (*github.SearchResult, error)
	GetRepository(ctx context.Context, key model.LookupKey) (*model.Repository, error)
}

// Store is the repository cache.
type Store interface {
	List(ctx context.Context, req model.PageRequest) ([]model.Repository, int64, error)
	Find(ctx context.Context, key model.LookupKey) (*model.Repository, error)
	Upsert(ctx context.Context, repo model.Repository) (*model.Repository, error)
	UpsertAll(ctx context.Context, repos []model.Repository) (int, error)
}

// Service serves repository reads from the cache, falling back to GitHub on a miss.
type Service struct {
	store    Store
	ghClient GitHubClient
	logger   *slog.Logger
}

// NewService creates a new Service instance.
func NewService(store Store, ghClient GitHubClient, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		ghClient: ghClient,
		logger:   logger,
	}
}

// List returns one page of repositories ordered by stars. Any non-empty cached
// page is returned as is; only an empty page triggers a GitHub search, whose
// results are cached before being returned with GitHub's total count.
func (s *Service) List(ctx context.Context, req model.PageRequest) (*model.RepositoryPage, error) {
	logger := s.logger.With("page", req.Page, "per_page", req.PerPage)

	cached, total, err := s.store.List(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		logger.Debug("Serving repositories from cache", "count", len(cached), "total", total)
		return &model.RepositoryPage{
			Pagination: model.NewPagination(req, total),
			Data:       cached,
		}, nil
	}

	logger.Info("Cache empty for page, fetching from GitHub")
	result, err := s.ghClient.SearchTopRepositories(ctx, req.Page, req.PerPage)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.UpsertAll(ctx, result.Items); err != nil {
		return nil, err
	}
	logger.Info("Cached repositories from GitHub", "count", len(result.Items), "total", result.TotalCount)

	return &model.RepositoryPage{
		Pagination: model.NewPagination(req, result.TotalCount),
		Data:       result.Items,
	}, nil
}

// Get returns a single repository. A cached row always wins; otherwise the
// repository is fetched from GitHub and cached. Any upstream failure is
// reported as ErrNotFound.
func (s *Service) Get(ctx context.Context, key model.LookupKey) (*model.Repository, error) {
	logger := s.logger.With("repo", key.String())

	repo, err := s.store.Find(ctx, key)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, custom_errors.ErrNotFound) {
		return nil, err
	}

	logger.Info("Repository not cached, fetching from GitHub")
	fetched, err := s.ghClient.GetRepository(ctx, key)
	if err != nil {
		logger.Warn("GitHub lookup failed", "error", err)
		return nil, fmt.Errorf("%w: %w", custom_errors.ErrNotFound, err)
	}

	return s.store.Upsert(ctx, *fetched)
}
