// internal/github/client.go
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	custom_errors "github-trending-api/internal/errors"
	"github-trending-api/internal/model"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com"

	// topRepositoriesQuery matches every repository with at least one star.
	topRepositoriesQuery = "stars:>0"
)

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// SearchResult is one page of repository search results.
type SearchResult struct {
	TotalCount int64
	Items      []model.Repository
}

// NewClient creates and configures a new Client instance against baseURL.
// A non-empty token is sent as "Authorization: token <token>" on every request.
func NewClient(baseURL, token string, logger *slog.Logger) (*Client, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token, TokenType: "token"},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	gh := github.NewClient(httpClient)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid github base url %q: %w", baseURL, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	gh.BaseURL = u

	return &Client{
		gh:     gh,
		logger: logger,
	}, nil
}

// SearchTopRepositories fetches one page of repositories ordered by star count, highest first.
func (c *Client) SearchTopRepositories(ctx context.Context, page, perPage int) (*SearchResult, error) {
	opts := &github.SearchOptions{
		Sort:  "stars",
		Order: "desc",
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}

	c.logger.Debug("Searching top repositories", "page", page, "per_page", perPage)
	result, resp, err := c.gh.Search.Repositories(ctx, topRepositoriesQuery, opts)
	if err != nil {
		return nil, wrapError("search repositories", resp, err)
	}

	items := make([]model.Repository, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		items = append(items, toInternalRepository(r))
	}
	return &SearchResult{
		TotalCount: int64(result.GetTotal()),
		Items:      items,
	}, nil
}

// GetRepository fetches a single repository by id or by "owner/repo".
func (c *Client) GetRepository(ctx context.Context, key model.LookupKey) (*model.Repository, error) {
	var (
		repo *github.Repository
		resp *github.Response
		err  error
	)
	if key.IsNumeric() {
		repo, resp, err = c.gh.Repositories.GetByID(ctx, key.ID())
	} else {
		owner, name := key.OwnerAndName()
		repo, resp, err = c.gh.Repositories.Get(ctx, owner, name)
	}
	if err != nil {
		return nil, wrapError("get repository "+key.String(), resp, err)
	}

	r := toInternalRepository(repo)
	return &r, nil
}

// toInternalRepository translates a github.Repository object to our internal model.Repository.
func toInternalRepository(r *github.Repository) model.Repository {
	return model.Repository{
		ID:          r.GetID(),
		Name:        r.GetName(),
		FullName:    r.GetFullName(),
		Stars:       r.GetStargazersCount(),
		Description: r.Description,
		URL:         r.GetHTMLURL(),
		Language:    r.Language,
	}
}

func wrapError(op string, resp *github.Response, err error) error {
	upstream := &custom_errors.UpstreamError{Op: op, Err: err}
	var ghErr *github.ErrorResponse
	switch {
	case errors.As(err, &ghErr) && ghErr.Response != nil:
		upstream.StatusCode = ghErr.Response.StatusCode
	case resp != nil && resp.Response != nil:
		upstream.StatusCode = resp.StatusCode
	}
	return upstream
}
