// Package abstract defines the document model shared by the scoring
// pipeline: the target word set and the per-abstract result.
package abstract

// Sentence is an ordered sequence of tokens. A complete sentence ends with
// the "." token.
type Sentence []string

// Status records whether an abstract's content was available when it was
// scored.
type Status string

const (
	StatusOK         Status = "ok"
	StatusLoadFailed Status = "load_failed"
)

// Abstract is one scored document. It is filled in by exactly one worker
// and never mutated after it enters the result collection.
type Abstract struct {
	ID        string
	Score     float64
	Sentences []Sentence
	Summary   []Sentence
	Status    Status
	// LoadErr is set when Status is StatusLoadFailed.
	LoadErr error
	// Seq is the position at which the abstract was appended to the result
	// collection. It reflects completion order, not input order.
	Seq int
}

// TargetWords is the ordered list of words to search for. It is read-only
// once built and safe to share between workers.
type TargetWords struct {
	words []string
	set   map[string]struct{}
}

// NewTargetWords copies words and builds the exact-match lookup set.
func NewTargetWords(words []string) TargetWords {
	tw := TargetWords{
		words: make([]string, len(words)),
		set:   make(map[string]struct{}, len(words)),
	}
	copy(tw.words, words)
	for _, w := range words {
		tw.set[w] = struct{}{}
	}
	return tw
}

// Words returns the target words in input order, duplicates included.
func (tw TargetWords) Words() []string {
	out := make([]string, len(tw.words))
	copy(out, tw.words)
	return out
}

// Contains reports whether token exactly equals a target word.
func (tw TargetWords) Contains(token string) bool {
	_, ok := tw.set[token]
	return ok
}

// Distinct returns the number of distinct target words.
func (tw TargetWords) Distinct() int {
	return len(tw.set)
}

// Each calls fn once per distinct target word, in no particular order.
func (tw TargetWords) Each(fn func(word string)) {
	for w := range tw.set {
		fn(w)
	}
}
