// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about graph refreshes and cache
// operations; libraries emit events through package-level accessors.
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRefreshHooks(&myRefreshHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Refresh().OnRefreshStart(ctx, repoPath)
//	// ... executor, parser, layout ...
//	observability.Refresh().OnRefreshComplete(ctx, repoPath, commits, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RefreshHooks receives events from the snapshot-to-layout pipeline.
type RefreshHooks interface {
	OnRefreshStart(ctx context.Context, repoPath string)
	OnRefreshComplete(ctx context.Context, repoPath string, commits int, duration time.Duration, err error)
}

// CacheHooks receives events from layout cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, key string)
	OnCacheMiss(ctx context.Context, key string)
}

// noopRefresh and noopCache are the defaults when nothing is registered.
type noopRefresh struct{}

func (noopRefresh) OnRefreshStart(context.Context, string) {}
func (noopRefresh) OnRefreshComplete(context.Context, string, int, time.Duration, error) {
}

type noopCache struct{}

func (noopCache) OnCacheHit(context.Context, string)  {}
func (noopCache) OnCacheMiss(context.Context, string) {}

var (
	mu           sync.RWMutex
	refreshHooks RefreshHooks = noopRefresh{}
	cacheHooks   CacheHooks   = noopCache{}
)

// SetRefreshHooks registers the refresh hook implementation.
// Pass nil to restore the no-op default.
func SetRefreshHooks(h RefreshHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		refreshHooks = noopRefresh{}
		return
	}
	refreshHooks = h
}

// SetCacheHooks registers the cache hook implementation.
// Pass nil to restore the no-op default.
func SetCacheHooks(h CacheHooks) {
	mu.Lock()
	defer mu.Unlock()
	if h == nil {
		cacheHooks = noopCache{}
		return
	}
	cacheHooks = h
}

// Refresh returns the registered refresh hooks.
func Refresh() RefreshHooks {
	mu.RLock()
	defer mu.RUnlock()
	return refreshHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}
