package scorer

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/abstract"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/tokenizer"
)

func TestScore_WorkedExample(t *testing.T) {
	// Given: two target words and a two-sentence abstract
	targets := abstract.NewTargetWords([]string{"alpha", "beta"})
	sentences := []abstract.Sentence{
		{"alpha", "is", "good", "."},
		{"nothing", "else", "."},
	}

	// When: scoring
	got := Score(targets, sentences)

	// Then: 1 shared word over a union of 7
	assert.Equal(t, 1, got.Intersection)
	assert.Equal(t, 7, got.Union)
	assert.InDelta(t, 1.0/7.0, got.Score, 1e-12)
	assert.Equal(t, "0.1429", fmt.Sprintf("%.4f", got.Score))
	assert.Equal(t, []abstract.Sentence{{"alpha", "is", "good", "."}}, got.Summary)
}

func TestScore_EdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		targets     []string
		sentences   []abstract.Sentence
		wantScore   float64
		wantSummary []abstract.Sentence
	}{
		{
			name:        "empty targets and empty document",
			wantScore:   0,
			wantSummary: []abstract.Sentence{},
		},
		{
			name:        "empty document",
			targets:     []string{"alpha"},
			wantScore:   0,
			wantSummary: []abstract.Sentence{},
		},
		{
			name:        "empty targets",
			sentences:   []abstract.Sentence{{"alpha", "."}},
			wantScore:   0,
			wantSummary: []abstract.Sentence{},
		},
		{
			name:        "identical sets",
			targets:     []string{"alpha", "."},
			sentences:   []abstract.Sentence{{"alpha", "."}},
			wantScore:   1,
			wantSummary: []abstract.Sentence{{"alpha", "."}},
		},
		{
			name:        "duplicate targets do not inflate the union",
			targets:     []string{"alpha", "alpha"},
			sentences:   []abstract.Sentence{{"alpha", "alpha", "."}},
			wantScore:   0.5,
			wantSummary: []abstract.Sentence{{"alpha", "alpha", "."}},
		},
		{
			name:      "sentence with two matches listed once",
			targets:   []string{"alpha", "beta"},
			sentences: []abstract.Sentence{{"alpha", "beta", "."}, {"gamma", "."}},
			wantScore: 2.0 / 4.0,
			wantSummary: []abstract.Sentence{
				{"alpha", "beta", "."},
			},
		},
		{
			name:      "repeated sentence text kept at each position",
			targets:   []string{"beta"},
			sentences: []abstract.Sentence{{"beta", "."}, {"x", "."}, {"beta", "."}},
			wantScore: 1.0 / 3.0,
			wantSummary: []abstract.Sentence{
				{"beta", "."},
				{"beta", "."},
			},
		},
		{
			name:        "case sensitive",
			targets:     []string{"Alpha"},
			sentences:   []abstract.Sentence{{"alpha", "."}},
			wantScore:   0,
			wantSummary: []abstract.Sentence{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(abstract.NewTargetWords(tt.targets), tt.sentences)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-12)
			assert.Equal(t, tt.wantSummary, got.Summary)
		})
	}
}

// TestScore_MatchesDirectRecomputation checks the score against a naive set
// computation and the summary invariants on random inputs.
func TestScore_MatchesDirectRecomputation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h", "."}

	for iter := 0; iter < 200; iter++ {
		targetList := make([]string, rng.Intn(5))
		for i := range targetList {
			targetList[i] = pool[rng.Intn(len(pool))]
		}
		var b strings.Builder
		n := rng.Intn(40)
		for i := 0; i < n; i++ {
			b.WriteString(pool[rng.Intn(len(pool))])
			b.WriteByte(' ')
		}
		sentences := tokenizer.Sentences(b.String())
		targets := abstract.NewTargetWords(targetList)

		got := Score(targets, sentences)

		tSet := map[string]bool{}
		for _, w := range targetList {
			tSet[w] = true
		}
		vSet := map[string]bool{}
		for _, s := range sentences {
			for _, tok := range s {
				vSet[tok] = true
			}
		}
		union := map[string]bool{}
		inter := 0
		for w := range tSet {
			union[w] = true
			if vSet[w] {
				inter++
			}
		}
		for w := range vSet {
			union[w] = true
		}
		want := 0.0
		if len(union) > 0 {
			want = float64(inter) / float64(len(union))
		}
		require.InDelta(t, want, got.Score, 1e-12, "iteration %d", iter)
		require.GreaterOrEqual(t, got.Score, 0.0)
		require.LessOrEqual(t, got.Score, 1.0)

		// Summary is the in-order subsequence of matching sentences.
		next := 0
		for _, s := range sentences {
			hit := false
			for _, tok := range s {
				if tSet[tok] {
					hit = true
					break
				}
			}
			if !hit {
				continue
			}
			require.Less(t, next, len(got.Summary))
			require.Equal(t, s, got.Summary[next])
			next++
		}
		require.Equal(t, next, len(got.Summary))
	}
}

func BenchmarkScore(b *testing.B) {
	text := strings.Repeat("information retrieval systems combine tokenization and ranking . ", 100)
	sentences := tokenizer.Sentences(text)
	targets := abstract.NewTargetWords([]string{"ranking", "systems", "latency"})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Score(targets, sentences)
	}
}
