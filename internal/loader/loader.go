// Package loader fetches the raw text of an abstract by identifier, either
// from a directory on disk or from Redis.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/abstract"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/tokenizer"
	apperrors "github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/errors"
)

// Source returns the content of the abstract named id.
type Source interface {
	Load(ctx context.Context, id string) (string, error)
}

// DirSource reads abstracts from files under Dir. Identifiers are joined to
// Dir verbatim.
type DirSource struct {
	Dir string
}

// NewDirSource returns a DirSource rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (s *DirSource) Load(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %s: %w", apperrors.ErrDocumentLoad, id, err)
	}
	path := filepath.Join(s.Dir, id)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrDocumentLoad, err)
	}
	return string(data), nil
}

// Loader turns identifiers into tokenized sentences.
type Loader struct {
	source Source
	logger *slog.Logger
}

// New wraps source.
func New(source Source) *Loader {
	return &Loader{
		source: source,
		logger: slog.Default().With("component", "loader"),
	}
}

// Sentences loads and tokenizes id. On failure it returns no sentences along
// with the error; callers score the abstract as empty and keep going.
func (l *Loader) Sentences(ctx context.Context, id string) ([]abstract.Sentence, error) {
	text, err := l.source.Load(ctx, id)
	if err != nil {
		l.logger.Warn("abstract unavailable, scoring as empty", "doc_id", id, "error", err)
		return nil, err
	}
	sentences := tokenizer.Sentences(text)
	l.logger.Debug("abstract tokenized", "doc_id", id, "bytes", len(text), "sentences", len(sentences))
	return sentences, nil
}
