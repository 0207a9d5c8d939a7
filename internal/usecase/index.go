package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"localsearch/internal/domain"
	"localsearch/internal/port"
)

// State is the indexing lifecycle: NotIndexed → Indexing → Indexed, back to
// NotIndexed when a build fails.
type State int32

const (
	StateNotIndexed State = iota
	StateIndexing
	StateIndexed
)

func (s State) String() string {
	switch s {
	case StateIndexing:
		return "indexing"
	case StateIndexed:
		return "indexed"
	default:
		return "not indexed"
	}
}

// ErrRebuildInProgress rejects a rebuild request while one is running. At
// most one rebuild is in flight; late requests are dropped, not queued.
var ErrRebuildInProgress = errors.New("rebuild already in progress")

// ErrNotIndexed means no snapshot is available to search yet.
var ErrNotIndexed = errors.New("no index available, run a rebuild first")

// ProgressFunc reports build progress per processed document.
type ProgressFunc func(processed, total int, path string)

// IndexUseCase owns the indexing lifecycle: it runs full rebuilds, persists
// the result, and publishes the current snapshot. The snapshot reference is
// the only shared mutable state; it is swapped atomically after a build
// completes, so in-flight queries keep reading the previous snapshot.
type IndexUseCase struct {
	crawler   port.Crawler
	tokenizer port.Tokenizer
	store     port.IndexStore
	roots     []string

	state    atomic.Int32
	snapshot atomic.Pointer[domain.Snapshot]
}

// NewIndexUseCase creates the lifecycle owner for the given roots.
func NewIndexUseCase(crawler port.Crawler, tokenizer port.Tokenizer, store port.IndexStore, roots []string) *IndexUseCase {
	return &IndexUseCase{
		crawler:   crawler,
		tokenizer: tokenizer,
		store:     store,
		roots:     roots,
	}
}

// RebuildResult summarizes one completed rebuild.
type RebuildResult struct {
	DocsIndexed int
	VocabSize   int
	Warnings    []domain.Warning

	// PersistErr records a failed save. The snapshot stays usable in memory
	// for the session; durability is the only casualty.
	PersistErr error
}

// State returns the current lifecycle state.
func (u *IndexUseCase) State() State {
	return State(u.state.Load())
}

// Snapshot returns the currently published snapshot, nil when none exists.
func (u *IndexUseCase) Snapshot() *domain.Snapshot {
	return u.snapshot.Load()
}

// Rebuild crawls the configured roots, builds a fresh snapshot, persists it
// and publishes it. While a rebuild is running, further requests fail with
// ErrRebuildInProgress. On failure the state drops to NotIndexed but a
// previously published snapshot remains in use.
func (u *IndexUseCase) Rebuild(ctx context.Context, progress ProgressFunc) (*RebuildResult, error) {
	for {
		current := u.state.Load()
		if State(current) == StateIndexing {
			return nil, ErrRebuildInProgress
		}
		if u.state.CompareAndSwap(current, int32(StateIndexing)) {
			break
		}
	}

	result, err := u.rebuild(ctx, progress)
	if err != nil {
		u.state.Store(int32(StateNotIndexed))
		return nil, err
	}
	u.state.Store(int32(StateIndexed))
	return result, nil
}

func (u *IndexUseCase) rebuild(ctx context.Context, progress ProgressFunc) (*RebuildResult, error) {
	raw, warnings, err := u.crawler.Crawl(ctx, u.roots)
	if err != nil {
		return nil, fmt.Errorf("crawl failed: %w", err)
	}
	for _, w := range warnings {
		slog.Warn("crawl warning", "path", w.Path, "err", w.Err)
	}

	snapshot := BuildSnapshot(raw, u.tokenizer, time.Now().UTC(), progress)

	result := &RebuildResult{
		DocsIndexed: snapshot.Stats.TotalDocs,
		VocabSize:   snapshot.Stats.VocabSize,
		Warnings:    warnings,
	}

	if err := u.store.Save(snapshot); err != nil {
		slog.Warn("index not persisted, snapshot kept in memory", "err", err)
		result.PersistErr = err
	}

	u.snapshot.Store(snapshot)
	return result, nil
}

// LoadPersisted publishes the snapshot saved by a previous run. Schema
// mismatches and corrupt files surface as errors the caller treats as "no
// index available"; they never terminate the process.
func (u *IndexUseCase) LoadPersisted() error {
	for {
		current := u.state.Load()
		if State(current) == StateIndexing {
			return ErrRebuildInProgress
		}
		if u.state.CompareAndSwap(current, int32(StateIndexing)) {
			break
		}
	}

	snapshot, err := u.store.Load()
	if err != nil {
		u.state.Store(int32(StateNotIndexed))
		return err
	}

	u.snapshot.Store(snapshot)
	u.state.Store(int32(StateIndexed))
	return nil
}
