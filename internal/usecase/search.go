package usecase

import (
	"localsearch/internal/domain"
)

// Searcher ranks documents of a snapshot against a query.
type Searcher interface {
	Search(query string, snapshot *domain.Snapshot, topK int) []domain.ScoredDoc
}

// SearchUseCase answers queries against the currently published snapshot.
// Queries take no locks: the snapshot is immutable, and a concurrent rebuild
// publishes its replacement only after it is fully built.
type SearchUseCase struct {
	retriever Searcher
	index     *IndexUseCase
}

// NewSearchUseCase creates a search use case bound to the index lifecycle.
func NewSearchUseCase(retriever Searcher, index *IndexUseCase) *SearchUseCase {
	return &SearchUseCase{retriever: retriever, index: index}
}

// Search returns the topK ranked results for query. It fails only when no
// snapshot has been published yet; an empty or unmatched query returns an
// empty slice.
func (u *SearchUseCase) Search(query string, topK int) ([]domain.ScoredDoc, error) {
	snapshot := u.index.Snapshot()
	if snapshot == nil {
		return nil, ErrNotIndexed
	}
	return u.retriever.Search(query, snapshot, topK), nil
}
