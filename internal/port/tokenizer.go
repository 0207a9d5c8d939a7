package port

// Tokenizer maps document or query text to a sequence of normalized terms.
// Implementations must be pure: the same rules apply at index time and query
// time, otherwise correct queries silently stop matching.
type Tokenizer interface {
	Tokenize(text string) []string
}
