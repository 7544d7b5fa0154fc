// Package report renders the ranked results in the "###"-delimited text
// format.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/abstract"
	apperrors "github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/errors"
)

// Delimiter separates the progress section and each result block.
const Delimiter = "###"

// WriteHeader opens the report. Progress lines follow it.
func WriteHeader(w io.Writer) error {
	if _, err := fmt.Fprintln(w, Delimiter); err != nil {
		return fmt.Errorf("%w: header: %w", apperrors.ErrOutput, err)
	}
	return nil
}

// WriteResults closes the progress section and writes one block per ranked
// result, numbered from 1.
func WriteResults(w io.Writer, ranked []abstract.Abstract) error {
	var b strings.Builder
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	for i, a := range ranked {
		fmt.Fprintf(&b, "Result %d:\n", i+1)
		fmt.Fprintf(&b, "File: %s\n", a.ID)
		fmt.Fprintf(&b, "Score: %.4f\n", a.Score)
		if a.Status == abstract.StatusLoadFailed {
			fmt.Fprintf(&b, "Status: load failed (%s)\n", failureReason(a.LoadErr))
		}
		fmt.Fprintf(&b, "Summary: %s\n", Summary(a.Summary))
		b.WriteString(Delimiter)
		b.WriteByte('\n')
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%w: results: %w", apperrors.ErrOutput, err)
	}
	return nil
}

// Summary joins every token of every sentence with single spaces. Sentence
// boundaries are visible only through the "." tokens.
func Summary(sentences []abstract.Sentence) string {
	var b strings.Builder
	for _, s := range sentences {
		for _, token := range s {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(token)
		}
	}
	return b.String()
}

func failureReason(err error) string {
	if err == nil {
		return "unknown error"
	}
	return strings.TrimPrefix(err.Error(), apperrors.ErrDocumentLoad.Error()+": ")
}
