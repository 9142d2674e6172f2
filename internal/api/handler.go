// internal/api/handler.go
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	custom_errors "github-trending-api/internal/errors"
	"github-trending-api/internal/model"
	"github-trending-api/internal/syncer"
)

// RepoService is the read path behind the /api/repos routes.
type RepoService interface {
	List(ctx context.Context, req model.PageRequest) (*model.RepositoryPage, error)
	Get(ctx context.Context, key model.LookupKey) (*model.Repository, error)
}

// Scheduler is the sync scheduler behind the /api/sync routes.
type Scheduler interface {
	Start()
	Force() (int, error)
	Stop()
	State() syncer.State
	Interval() time.Duration
}

// requestTimeout bounds every route except a forced sync.
var requestTimeout = 60 * time.Second

// Handler is the container for API dependencies.
type Handler struct {
	repos     RepoService
	scheduler Scheduler
	logger    *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(repos RepoService, scheduler Scheduler, logger *slog.Logger) http.Handler {
	h := &Handler{
		repos:     repos,
		scheduler: scheduler,
		logger:    logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/", h.welcome)
		r.Get("/health", h.healthCheck)
	})
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))
			r.Route("/repos", func(r chi.Router) {
				r.Get("/", h.listRepos)
				r.Get("/{idOrName}", h.getRepo)
				r.Get("/{owner}/{repo}", h.getRepoByFullName)
			})
			r.Post("/sync/start", h.startSync)
			r.Post("/sync/stop", h.stopSync)
			r.Get("/sync/status", h.syncStatus)
		})
		// Force runs on the scheduler's own context, so the request timeout does not apply.
		r.Post("/sync/force", h.forceSync)
	})

	return r
}

// welcome is the liveness banner.
func (h *Handler) welcome(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Welcome to the GitHub Trending Repos API"})
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listRepos handles the request to list cached repositories by stars.
// GET /api/repos?page=N&per_page=M
func (h *Handler) listRepos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := model.ParsePageRequest(q.Get("page"), q.Get("per_page"))

	page, err := h.repos.List(r.Context(), req)
	if err != nil {
		h.logger.Error("Failed to list repositories", "page", req.Page, "per_page", req.PerPage, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch repositories", err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, page)
}

// getRepo handles a lookup by numeric id, or by an escaped "owner%2Frepo" name.
// GET /api/repos/{idOrName}
func (h *Handler) getRepo(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "idOrName")
	if unescaped, err := url.PathUnescape(token); err == nil {
		token = unescaped
	}
	h.lookup(w, r, token)
}

// getRepoByFullName handles a lookup by "owner/repo".
// GET /api/repos/{owner}/{repo}
func (h *Handler) getRepoByFullName(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, chi.URLParam(r, "owner")+"/"+chi.URLParam(r, "repo"))
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request, token string) {
	key, err := model.ParseLookupKey(token)
	if err != nil {
		h.logger.Warn("Rejected repository lookup", "token", token, "error", err)
		respondWithError(w, http.StatusBadRequest, "Invalid repository name format. Please use format: owner/repo", "")
		return
	}

	repo, err := h.repos.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, custom_errors.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Repository not found", "")
			return
		}
		h.logger.Error("Failed to get repository", "repo", key.String(), "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch repository", err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, repo)
}

// startSync arms the scheduler and returns without waiting for the first cycle.
// POST /api/sync/start
func (h *Handler) startSync(w http.ResponseWriter, r *http.Request) {
	h.scheduler.Start()
	respondWithJSON(w, http.StatusAccepted, messageResponse{Message: "Sync started successfully"})
}

// forceSync runs a cycle to completion before responding.
// POST /api/sync/force
func (h *Handler) forceSync(w http.ResponseWriter, r *http.Request) {
	n, err := h.scheduler.Force()
	if err != nil {
		h.logger.Error("Force sync failed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to force sync", err.Error())
		return
	}
	h.logger.Info("Force sync completed", "count", n)
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Force sync completed successfully"})
}

// stopSync disarms the scheduler.
// POST /api/sync/stop
func (h *Handler) stopSync(w http.ResponseWriter, r *http.Request) {
	h.scheduler.Stop()
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Sync stopped"})
}

// syncStatus reports the scheduler state.
// GET /api/sync/status
func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, statusResponse{
		State:    h.scheduler.State(),
		Interval: h.scheduler.Interval().String(),
	})
}
