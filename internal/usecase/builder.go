package usecase

import (
	"sort"
	"time"

	"localsearch/internal/domain"
	"localsearch/internal/port"
)

// BuildSnapshot assembles one immutable snapshot from crawled documents.
// Documents are ordered by path and postings by document ID, so building
// twice from the same corpus yields identical content. Duplicate paths keep
// the first occurrence; the crawler already canonicalizes and deduplicates.
// progress, when non-nil, is called once per tokenized document.
func BuildSnapshot(raw []domain.RawDocument, tokenizer port.Tokenizer, builtAt time.Time, progress ProgressFunc) *domain.Snapshot {
	byPath := make(map[string]domain.Document, len(raw))
	for i, r := range raw {
		if progress != nil {
			progress(i+1, len(raw), r.Path)
		}
		if _, dup := byPath[r.Path]; dup {
			continue
		}
		terms := tokenizer.Tokenize(r.Text)
		doc := domain.Document{
			Path:   r.Path,
			Terms:  make(map[string]int, len(terms)),
			Length: len(terms),
		}
		for _, t := range terms {
			doc.Terms[t]++
		}
		byPath[r.Path] = doc
	}

	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	snapshot := &domain.Snapshot{
		Docs:  make([]domain.Document, 0, len(paths)),
		Index: make(map[string][]domain.Posting),
	}
	for id, p := range paths {
		doc := byPath[p]
		snapshot.Docs = append(snapshot.Docs, doc)
		for term, count := range doc.Terms {
			snapshot.Index[term] = append(snapshot.Index[term], domain.Posting{DocID: id, TF: count})
		}
	}

	snapshot.Stats = domain.CorpusStats{
		TotalDocs: len(snapshot.Docs),
		VocabSize: len(snapshot.Index),
		BuiltAt:   builtAt,
	}
	return snapshot
}
