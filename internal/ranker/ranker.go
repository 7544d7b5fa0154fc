// Package ranker orders scored abstracts by score, resolving near-ties with
// an epsilon band, and truncates the ranking to the requested count.
package ranker

import (
	"log/slog"
	"math"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/abstract"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/errors"
)

// Epsilon is the default width of the band within which two scores tie.
const Epsilon = 1e-4

// Ordering is the result of comparing two scores.
type Ordering int

const (
	Less Ordering = iota - 1
	Equal
	Greater
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "equal"
	}
}

// Compare orders a against b, treating scores closer than eps as Equal.
func Compare(a, b, eps float64) Ordering {
	switch {
	case math.Abs(a-b) < eps:
		return Equal
	case a < b:
		return Less
	default:
		return Greater
	}
}

// Options controls tie handling in Rank. Epsilon is the tie band width and
// TieBreak is config.TieBreakIdentifier or config.TieBreakInsertion.
type Options struct {
	Epsilon  float64
	TieBreak string
}

// DefaultOptions orders ties by identifier.
func DefaultOptions() Options {
	return Options{Epsilon: Epsilon, TieBreak: config.TieBreakIdentifier}
}

// FromConfig converts the file-level ranker settings.
func FromConfig(cfg config.RankerConfig) Options {
	return Options{Epsilon: cfg.Epsilon, TieBreak: cfg.TieBreak}
}

// Rank orders results by score, highest first, and returns the first k.
//
// Results are sorted by exact score, then split into tie groups: a group
// starts at its highest score and takes every following result that
// Compares Equal to that leader. Within a group results are ordered by
// identifier, or by collection insertion order with TieBreakInsertion.
// Results in different groups therefore differ by at least Epsilon and
// are strictly descending.
//
// k larger than len(results) is clamped; negative k is an error.
func Rank(results []abstract.Abstract, k int, opts Options) ([]abstract.Abstract, error) {
	if k < 0 {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitFailure,
			"return count must not be negative, got %d", k)
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = Epsilon
	}
	if k > len(results) {
		slog.Default().With("component", "ranker").Warn("return count exceeds scored abstracts, clamping",
			"requested", k,
			"available", len(results),
		)
		k = len(results)
	}

	ranked := make([]abstract.Abstract, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	tieLess := byIdentifier
	if opts.TieBreak == config.TieBreakInsertion {
		tieLess = byInsertion
	}
	for start := 0; start < len(ranked); {
		end := start + 1
		for end < len(ranked) && Compare(ranked[start].Score, ranked[end].Score, opts.Epsilon) == Equal {
			end++
		}
		group := ranked[start:end]
		sort.SliceStable(group, func(i, j int) bool {
			return tieLess(group[i], group[j])
		})
		start = end
	}

	return ranked[:k], nil
}

func byIdentifier(a, b abstract.Abstract) bool {
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.Seq < b.Seq
}

func byInsertion(a, b abstract.Abstract) bool {
	return a.Seq < b.Seq
}
