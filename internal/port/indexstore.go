package port

import "localsearch/internal/domain"

// IndexStore persists complete snapshots. Save never corrupts a previously
// saved snapshot, even on crash mid-write. Load failures are recoverable:
// callers fall back to "no index available" and trigger a rebuild.
type IndexStore interface {
	Save(snapshot *domain.Snapshot) error
	Load() (*domain.Snapshot, error)
}
