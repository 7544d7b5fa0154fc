// Package progress writes the "Thread X is calculating Y" lines that record
// which worker picked up which abstract.
package progress

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/config"
)

// Log appends one line per dequeued abstract to the report stream.
//
// Log has no lock of its own. It is meant to be handed to
// queue.Queue.TryDequeue, which calls Record inside the dequeue critical
// section; that lock is what keeps lines whole and in dequeue order.
type Log struct {
	w      io.Writer
	labels string
	logger *slog.Logger
	err    error
	count  int
}

// New returns a Log writing to w. labels is config.LabelsLetters or
// config.LabelsNumbers.
func New(w io.Writer, labels string) *Log {
	return &Log{
		w:      w,
		labels: labels,
		logger: slog.Default().With("component", "progress"),
	}
}

// Record writes the progress line for worker picking up id. After the first
// write error further records are skipped and the error is kept for Err.
func (l *Log) Record(worker int, id string) {
	l.count++
	l.logger.Debug("abstract dequeued", "worker", worker, "doc_id", id)
	if l.err != nil {
		return
	}
	if _, err := fmt.Fprintf(l.w, "Thread %s is calculating %s\n", l.Label(worker), id); err != nil {
		l.err = fmt.Errorf("writing progress line: %w", err)
	}
}

// Label renders a zero-based worker index. Letters run A..Z; workers past
// the alphabet fall back to their decimal index.
func (l *Log) Label(worker int) string {
	if l.labels == config.LabelsLetters && worker >= 0 && worker < 26 {
		return string(rune('A' + worker))
	}
	return strconv.Itoa(worker)
}

// Count returns the number of records made.
func (l *Log) Count() int {
	return l.count
}

// Err returns the first write error, if any.
func (l *Log) Err() error {
	return l.err
}
