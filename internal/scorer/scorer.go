// Package scorer computes the Jaccard similarity between a target word set
// and an abstract's vocabulary, and extracts the sentences that contain a
// target word.
package scorer

import (
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/abstract"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/tokenizer"
)

// Result is the output of Score.
type Result struct {
	Score        float64
	Summary      []abstract.Sentence
	Intersection int
	Union        int
}

// Score returns |T ∩ V| / |T ∪ V| where T is the distinct target words and V
// the distinct tokens of sentences. An empty union scores 0.
//
// The summary lists, in document order, every sentence holding at least one
// token equal to a target word. A sentence is listed once however many
// targets it holds; identical sentences at different positions are each
// listed.
func Score(targets abstract.TargetWords, sentences []abstract.Sentence) Result {
	vocab := tokenizer.Vocabulary(sentences)

	intersection := 0
	targets.Each(func(word string) {
		if _, ok := vocab[word]; ok {
			intersection++
		}
	})
	union := targets.Distinct() + len(vocab) - intersection

	summary := make([]abstract.Sentence, 0)
	for _, s := range sentences {
		if matches(targets, s) {
			summary = append(summary, s)
		}
	}

	var score float64
	if union > 0 {
		score = float64(intersection) / float64(union)
	}
	return Result{
		Score:        score,
		Summary:      summary,
		Intersection: intersection,
		Union:        union,
	}
}

func matches(targets abstract.TargetWords, s abstract.Sentence) bool {
	for _, token := range s {
		if targets.Contains(token) {
			return true
		}
	}
	return false
}
