// Package server exposes a repository's visual graph over HTTP and pushes
// live updates to websocket clients when the repository changes.
//
// The server owns the full refresh pipeline: executor → parser → graph
// builder → layout, guarded by a filesystem watcher on the .git directory.
// Handlers only ever read the last computed state; refreshes swap it
// atomically under a lock.
package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/gitlanes/pkg/cache"
	"github.com/matzehuels/gitlanes/pkg/gitexec"
	"github.com/matzehuels/gitlanes/pkg/gitparse"
	"github.com/matzehuels/gitlanes/pkg/graphio"
	"github.com/matzehuels/gitlanes/pkg/layout"
	"github.com/matzehuels/gitlanes/pkg/observability"
	"github.com/matzehuels/gitlanes/pkg/repograph"
	"github.com/matzehuels/gitlanes/pkg/store"
)

// layoutTTL bounds how long cached layouts outlive their repository.
const layoutTTL = 24 * time.Hour

// Config wires the server's collaborators.
type Config struct {
	RepoPath string
	Addr     string
	Logger   *log.Logger

	// Cache may be nil; a null cache is used.
	Cache cache.Cache
	// Store may be nil; snapshot endpoints answer 404 then.
	Store store.Store

	GitOptions        gitexec.Options
	ProtectedBranches []string
	Optimize          bool
}

// state is one immutable refresh result.
type state struct {
	layout   *layout.Graph
	wire     *graphio.Layout
	stats    repograph.Stats
	warnings []gitparse.ParseError
}

// Server serves one repository.
type Server struct {
	cfg    Config
	logger *log.Logger
	runner *gitexec.Runner
	cache  cache.Cache

	mu  sync.RWMutex
	cur *state

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool
}

// New creates a server; call Run to start it.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	c := cfg.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Server{
		cfg:     cfg,
		logger:  cfg.Logger,
		runner:  gitexec.NewRunner(cfg.RepoPath),
		cache:   c,
		clients: make(map[*websocket.Conn]bool),
	}
}

// Run computes the initial state, starts the repository watcher, and
// serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.refresh(ctx); err != nil {
		return err
	}

	if err := s.startWatcher(ctx); err != nil {
		s.logger.Warn("Repository watching disabled", "err", err)
	}

	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.routes(),
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Serving repository graph", "addr", s.cfg.Addr, "repo", s.cfg.RepoPath)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// routes assembles the chi router.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/api/graph", s.handleGraph)
	r.Get("/api/stats", s.handleStats)
	r.Get("/api/warnings", s.handleWarnings)
	r.Get("/api/svg", s.handleSVG)
	r.Get("/api/ws", s.handleWebSocket)

	r.Route("/api/snapshots", func(r chi.Router) {
		r.Get("/", s.handleSnapshotList)
		r.Post("/", s.handleSnapshotSave)
		r.Get("/{id}", s.handleSnapshotGet)
		r.Delete("/{id}", s.handleSnapshotDelete)
	})

	return r
}

// logRequests is a minimal access-log middleware on the shared logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("Request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start).Round(time.Millisecond))
	})
}

// current returns the last refresh result.
func (s *Server) current() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// refresh re-runs the whole pipeline and swaps the served state.
func (s *Server) refresh(ctx context.Context) (err error) {
	start := time.Now()
	observability.Refresh().OnRefreshStart(ctx, s.cfg.RepoPath)
	defer func() {
		commits := 0
		if st := s.current(); st != nil {
			commits = st.stats.Commits
		}
		observability.Refresh().OnRefreshComplete(ctx, s.cfg.RepoPath, commits, time.Since(start), err)
	}()

	snap, err := s.runner.LoadSnapshot(ctx, s.cfg.GitOptions)
	if err != nil {
		return err
	}

	logRes := gitparse.ParseLog(snap.Log)
	protected := gitparse.NewProtected(s.cfg.ProtectedBranches)
	head := gitparse.ParseHead(snap.SymbolicRef, snap.RevParse)
	refs := gitparse.ParseRefs(snap.Refs, head.Ref, protected)
	rg := repograph.Build(logRes.Commits, refs, head.Hash, head.Ref)

	vg, cacheHit := s.layoutFor(ctx, snap, rg)

	st := &state{
		layout:   vg,
		wire:     graphio.FromLayout(vg),
		stats:    rg.Stats(),
		warnings: logRes.Errors,
	}

	s.mu.Lock()
	s.cur = st
	s.mu.Unlock()

	s.logger.Info("Graph refreshed",
		"commits", st.stats.Commits,
		"lanes", vg.TotalLanes,
		"warnings", len(st.warnings),
		"cached", cacheHit)

	s.broadcast(UpdateMessage{Type: MessageTypeGraph, Data: st.wire})
	s.broadcast(UpdateMessage{Type: MessageTypeStats, Data: st.stats})
	return nil
}

// layoutFor computes the visual graph, consulting the layout cache first.
func (s *Server) layoutFor(ctx context.Context, snap *gitexec.Snapshot, rg *repograph.Graph) (*layout.Graph, bool) {
	key := cache.LayoutKey(snap.Log, snap.Refs, s.cfg.ProtectedBranches, s.cfg.Optimize)

	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		if vg, err := graphio.ReadLayout(bytes.NewReader(data)); err == nil {
			observability.Cache().OnCacheHit(ctx, key)
			return vg, true
		}
	}
	observability.Cache().OnCacheMiss(ctx, key)

	vg := layout.New(rg, layout.Options{ProtectedBranches: s.cfg.ProtectedBranches})
	if s.cfg.Optimize {
		vg = layout.Optimize(vg)
	}

	var buf bytes.Buffer
	if err := graphio.WriteLayout(vg, &buf); err == nil {
		if err := s.cache.Set(ctx, key, buf.Bytes(), layoutTTL); err != nil {
			s.logger.Debug("Layout cache write failed", "err", err)
		}
	}
	return vg, false
}
