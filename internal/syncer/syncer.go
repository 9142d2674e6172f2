// internal/syncer/syncer.go
package syncer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github-trending-api/internal/github"
	"github-trending-api/internal/model"
)

const (
	// Number of top repositories fetched per sync cycle, in a single search call.
	syncBatchSize = 100

	// DefaultInterval is the delay between scheduled sync cycles.
	DefaultInterval = 60 * time.Minute
)

// State is the scheduler state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// Searcher fetches pages of top repositories from GitHub.
type Searcher interface {
	SearchTopRepositories(ctx context.Context, page, perPage int) (*github.SearchResult, error)
}

// Store persists fetched repositories.
type Store interface {
	UpsertAll(ctx context.Context, repos []model.Repository) (int, error)
}

// Syncer orchestrates the periodic fetching and storing of top repositories.
//
// A timer, once armed, runs a sync cycle every interval until it is replaced
// by Start/Force or cancelled by Stop. Cycles are never cancelled by Stop; they
// only end early when the context passed to Run is done.
type Syncer struct {
	store        Store
	ghClient     Searcher
	logger       *slog.Logger
	syncInterval time.Duration

	singleFlight bool
	group        singleflight.Group

	mu          sync.Mutex
	baseCtx     context.Context
	cancelTimer context.CancelFunc
	wg          sync.WaitGroup
}

// NewSyncer creates a new Syncer instance. With singleFlight set, a cycle
// requested while another is in progress joins it instead of starting a second one.
func NewSyncer(store Store, ghClient Searcher, logger *slog.Logger, interval time.Duration, singleFlight bool) (*Syncer, error) {
	if interval <= 0 {
		return nil, errors.New("sync interval must be positive")
	}
	return &Syncer{
		store:        store,
		ghClient:     ghClient,
		logger:       logger,
		syncInterval: interval,
		singleFlight: singleFlight,
		baseCtx:      context.Background(),
	}, nil
}

// Run starts the scheduler and blocks until ctx is done, then disarms the
// timer and waits for in-flight cycles to return.
func (s *Syncer) Run(ctx context.Context) {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	s.Start()
	<-ctx.Done()
	s.logger.Info("Syncer shutting down", "reason", ctx.Err())
	s.Stop()
	s.wg.Wait()
}

// Start launches one sync cycle in the background and (re)arms the periodic
// timer. Cycle failures are logged only.
func (s *Syncer) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.baseCtx.Err() != nil {
		return
	}

	s.goCycleLocked()
	s.armLocked()
	s.logger.Info("Sync started", "interval", s.syncInterval.String())
}

// Force runs one sync cycle and waits for it, then re-arms the periodic timer
// whether or not the cycle succeeded. The cycle outlives the caller's request.
func (s *Syncer) Force() (int, error) {
	s.mu.Lock()
	base := s.baseCtx
	s.mu.Unlock()

	n, err := s.Sync(base)

	s.mu.Lock()
	if s.baseCtx.Err() == nil {
		s.armLocked()
	}
	s.mu.Unlock()

	return n, err
}

// Stop disarms the periodic timer. It is a no-op when no timer is armed.
func (s *Syncer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelTimer == nil {
		return
	}
	s.cancelTimer()
	s.cancelTimer = nil
	s.logger.Info("Sync stopped")
}

// State reports whether a periodic timer is armed.
func (s *Syncer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelTimer != nil {
		return StateRunning
	}
	return StateIdle
}

// Interval is the delay between scheduled cycles.
func (s *Syncer) Interval() time.Duration {
	return s.syncInterval
}

// Sync performs one fetch-and-store cycle: the top repositories by stars are
// fetched in one search call and upserted one by one. It returns the number
// of repositories stored.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	if !s.singleFlight {
		return s.runSyncCycle(ctx)
	}
	v, err, shared := s.group.Do("sync", func() (interface{}, error) {
		return s.runSyncCycle(ctx)
	})
	if shared {
		s.logger.Debug("Joined in-flight sync cycle")
	}
	n, _ := v.(int)
	return n, err
}

func (s *Syncer) runSyncCycle(ctx context.Context) (int, error) {
	s.logger.Info("Starting new sync cycle")
	start := time.Now()

	result, err := s.ghClient.SearchTopRepositories(ctx, 1, syncBatchSize)
	if err != nil {
		return 0, err
	}
	n, err := s.store.UpsertAll(ctx, result.Items)
	if err != nil {
		return n, err
	}

	s.logger.Info("Sync cycle finished", "count", n, "duration", time.Since(start).String())
	return n, nil
}

// armLocked replaces any armed timer with a new one. s.mu must be held.
func (s *Syncer) armLocked() {
	if s.cancelTimer != nil {
		s.cancelTimer()
	}
	timerCtx, cancel := context.WithCancel(s.baseCtx)
	s.cancelTimer = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.syncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.mu.Lock()
				if timerCtx.Err() == nil {
					s.goCycleLocked()
				}
				s.mu.Unlock()
			case <-timerCtx.Done():
				return
			}
		}
	}()
}

// goCycleLocked runs a cycle in its own goroutine, logging any failure. s.mu must be held.
func (s *Syncer) goCycleLocked() {
	ctx := s.baseCtx
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.Sync(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("Sync cycle failed", "error", err)
		}
	}()
}
