package analyzer

import "testing"

func TestStem(t *testing.T) {
	stemmer := NewPorterStemmer()

	tests := []struct {
		word string
		want string
	}{
		{"cats", "cat"},
		{"caresses", "caress"},
		{"ponies", "poni"},
		{"running", "run"},
		{"hopping", "hop"},
		{"filing", "file"},
		{"relational", "relat"},
		{"dog", "dog"},
		{"be", "be"}, // too short to stem
	}

	for _, tt := range tests {
		if got := stemmer.Stem(tt.word); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestStem_Deterministic(t *testing.T) {
	stemmer := NewPorterStemmer()

	// Words matching several suffix rules must always resolve the same way;
	// the index becomes irreproducible otherwise.
	words := []string{"ization", "rationalization", "sensational", "operational", "conditional"}
	for _, w := range words {
		first := stemmer.Stem(w)
		for i := 0; i < 10; i++ {
			if got := stemmer.Stem(w); got != first {
				t.Fatalf("Stem(%q) unstable: %q then %q", w, first, got)
			}
		}
	}
}
