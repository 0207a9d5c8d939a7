package usecase

import (
	"context"
	"errors"
	"testing"

	"localsearch/internal/domain"
)

// pathEchoSearcher returns one result per document so tests can see which
// snapshot the search ran against.
type pathEchoSearcher struct{}

func (pathEchoSearcher) Search(query string, snapshot *domain.Snapshot, topK int) []domain.ScoredDoc {
	results := make([]domain.ScoredDoc, 0, len(snapshot.Docs))
	for _, d := range snapshot.Docs {
		results = append(results, domain.ScoredDoc{Path: d.Path, Score: 1})
	}
	return results
}

func TestSearch_BeforeAnyIndex(t *testing.T) {
	index := newTestUseCase(t, &fakeCrawler{})
	search := NewSearchUseCase(pathEchoSearcher{}, index)

	_, err := search.Search("anything", 10)
	if !errors.Is(err, ErrNotIndexed) {
		t.Errorf("expected ErrNotIndexed, got %v", err)
	}
}

func TestSearch_UsesPublishedSnapshot(t *testing.T) {
	index := newTestUseCase(t, &fakeCrawler{docs: corpusDocs()})
	search := NewSearchUseCase(pathEchoSearcher{}, index)

	if _, err := index.Rebuild(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	results, err := search.Search("anything", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Errorf("expected results for all 3 documents, got %v", results)
	}
}
