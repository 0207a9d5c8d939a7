package retriever

import (
	"math"
	"sort"

	"localsearch/internal/domain"
	"localsearch/internal/port"
)

// TFIDFRetriever ranks snapshot documents against a free-text query.
//
// Scoring policy, fixed between builds: a document term weighs
// tf(t,d)·idf(t) with relative term frequency tf(t,d) = count(t,d)/len(d),
// and a query term weighs qtf(t)·idf(t). idf uses the clamped form
// ln(1 + N/df) so a term present in every document still carries a small
// positive weight. No cosine normalization; relative tf already discounts
// document length.
type TFIDFRetriever struct {
	tokenizer port.Tokenizer
}

// NewTFIDFRetriever creates a retriever. The tokenizer must be configured
// exactly like the one the snapshot was built with.
func NewTFIDFRetriever(tokenizer port.Tokenizer) *TFIDFRetriever {
	return &TFIDFRetriever{tokenizer: tokenizer}
}

// Search returns the topK best-scoring documents, descending by score with
// path order breaking ties. Query terms absent from the vocabulary contribute
// nothing; an empty or fully-unknown query yields an empty result. topK <= 0
// means unbounded.
func (r *TFIDFRetriever) Search(query string, snapshot *domain.Snapshot, topK int) []domain.ScoredDoc {
	if snapshot == nil || len(snapshot.Docs) == 0 {
		return nil
	}

	terms := r.tokenizer.Tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	qtf := make(map[string]int, len(terms))
	for _, t := range terms {
		qtf[t]++
	}

	n := float64(snapshot.Stats.TotalDocs)
	scores := make(map[int]float64)

	for term, queryCount := range qtf {
		postings, ok := snapshot.Index[term]
		if !ok {
			continue
		}
		idf := math.Log(1 + n/float64(len(postings)))
		queryWeight := float64(queryCount) * idf

		for _, p := range postings {
			doc := snapshot.Docs[p.DocID]
			if doc.Length == 0 {
				continue
			}
			tf := float64(p.TF) / float64(doc.Length)
			scores[p.DocID] += tf * idf * queryWeight
		}
	}

	results := make([]domain.ScoredDoc, 0, len(scores))
	for id, score := range scores {
		if score <= 0 {
			continue
		}
		results = append(results, domain.ScoredDoc{
			Path:  snapshot.Docs[id].Path,
			Score: score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Path < results[j].Path
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	return results
}
