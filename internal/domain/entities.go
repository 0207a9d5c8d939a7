package domain

import "time"

// SchemaVersion is the persisted snapshot format version. Increment on any
// breaking change to the stored layout so stale files are rejected at load.
const SchemaVersion = 1

// Document is one indexed file: its canonical path, the raw occurrence count
// of every term it contains, and its total term count. Documents are created
// during a rebuild and never mutated afterwards.
type Document struct {
	Path   string         `json:"path"`
	Terms  map[string]int `json:"terms"`
	Length int            `json:"length"`
}

// Posting records that the document at position DocID in the snapshot's
// path-sorted Docs slice contains a term TF times.
type Posting struct {
	DocID int `json:"doc"`
	TF    int `json:"tf"`
}

// CorpusStats describes a built snapshot as a whole.
type CorpusStats struct {
	TotalDocs int       `json:"total_docs"`
	VocabSize int       `json:"vocab_size"`
	BuiltAt   time.Time `json:"built_at"`
}

// Snapshot is one complete, immutable build of the index: the unit of
// persistence and of atomic replacement. Docs is sorted by path, doc IDs are
// positions in that order, and every posting list is sorted by doc ID, so an
// unchanged corpus rebuilds to identical content.
type Snapshot struct {
	Docs  []Document
	Index map[string][]Posting
	Stats CorpusStats
}

// DF returns the number of documents containing term, zero when the term is
// not in the vocabulary.
func (s *Snapshot) DF(term string) int {
	return len(s.Index[term])
}

// ScoredDoc is one ranked search result.
type ScoredDoc struct {
	Path  string  `json:"path"`
	Score float64 `json:"score"`
}

// Warning is a recovered per-item failure from a crawl: an unreadable file,
// a missing root directory. Warnings never abort a rebuild.
type Warning struct {
	Path string
	Err  error
}

func (w Warning) String() string {
	return w.Path + ": " + w.Err.Error()
}

// RawDocument is a crawled file before tokenization.
type RawDocument struct {
	Path string
	Text string
}
