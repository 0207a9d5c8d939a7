package analyzer

import (
	"strings"
	"unicode"
)

// Tokenizer normalizes text into index terms: lowercase, split on non-word
// runes, optional stopword removal, optional Porter stemming. It holds no
// mutable state, so one instance serves index and query paths alike.
type Tokenizer struct {
	stemmer   *PorterStemmer
	stopwords map[string]struct{}
}

// NewTokenizer creates a Tokenizer. Stemming and stopword filtering are
// independent switches; whatever combination is chosen must be the same one
// the index was built with.
func NewTokenizer(useStemming, filterStopwords bool) *Tokenizer {
	t := &Tokenizer{}
	if useStemming {
		t.stemmer = NewPorterStemmer()
	}
	if filterStopwords {
		t.stopwords = defaultStopwords()
	}
	return t
}

// Tokenize splits text into normalized terms, preserving order.
func (t *Tokenizer) Tokenize(text string) []string {
	words := splitWords(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		word = strings.ToLower(word)
		if t.stopwords != nil {
			if _, isStop := t.stopwords[word]; isStop {
				continue
			}
		}
		if t.stemmer != nil {
			word = t.stemmer.Stem(word)
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// splitWords splits text on word boundaries. Apostrophes and hyphens count as
// word runes so contractions and hyphenated words stay whole.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '-' {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// defaultStopwords returns a set of common English stopwords.
func defaultStopwords() map[string]struct{} {
	stops := []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for",
		"from", "has", "he", "in", "is", "it", "its", "of", "on",
		"that", "the", "to", "was", "were", "will", "with", "this",
		"have", "had", "but", "not", "you", "your", "we", "our",
		"they", "their", "she", "her", "his", "if", "or", "so",
		"no", "can", "do", "does", "did", "been", "being", "would",
		"could", "should", "may", "might", "must", "shall", "which",
		"who", "whom", "what", "when", "where", "why", "how", "all",
		"each", "every", "both", "few", "more", "most", "other",
		"some", "such", "than", "too", "very", "just", "also",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}
