// Package pipeline runs the worker pool that scores every abstract of a job
// exactly once.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/abstract"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/loader"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/queue"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/scorer"
	apperrors "github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/metrics"
)

// Job is one ranking run's input.
type Job struct {
	Threads int
	Targets abstract.TargetWords
	IDs     []string
}

// Pipeline scores the abstracts of a Job with a fixed-size worker pool.
type Pipeline struct {
	loader   *loader.Loader
	progress queue.Recorder
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// New returns a Pipeline. progress and m may be nil.
func New(l *loader.Loader, progress queue.Recorder, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		loader:   l,
		progress: progress,
		metrics:  m,
		logger:   slog.Default().With("component", "pipeline"),
	}
}

// PoolSize is min(threads, docs). It is zero only when there is nothing to
// score.
func PoolSize(threads, docs int) int {
	if threads > docs {
		return docs
	}
	return threads
}

// Run enqueues every identifier, starts the pool and blocks until each
// worker has seen the queue empty. Load failures do not stop the pool; they
// come back as StatusLoadFailed results.
func (p *Pipeline) Run(ctx context.Context, job Job) (*Collection, error) {
	if job.Threads <= 0 && len(job.IDs) > 0 {
		return nil, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitFailure,
			"thread count must be positive, got %d", job.Threads)
	}
	q := queue.New(job.IDs...)
	results := NewCollection(len(job.IDs))
	workers := PoolSize(job.Threads, len(job.IDs))

	p.logger.Info("scoring started",
		"abstracts", len(job.IDs),
		"workers", workers,
		"requested_threads", job.Threads,
	)
	start := time.Now()
	if p.metrics != nil {
		p.metrics.QueueDepth.Set(float64(q.Len()))
	}

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			p.work(ctx, w, q, job.Targets, results)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("worker pool: %w", err)
	}

	p.logger.Info("scoring finished",
		"results", results.Len(),
		"duration", time.Since(start),
	)
	return results, nil
}

func (p *Pipeline) work(ctx context.Context, worker int, q *queue.Queue, targets abstract.TargetWords, results *Collection) {
	if p.metrics != nil {
		p.metrics.ActiveWorkers.Inc()
		defer p.metrics.ActiveWorkers.Dec()
	}
	processed := 0
	for {
		id, ok := q.TryDequeue(p.progress, worker)
		if !ok {
			break
		}
		if p.metrics != nil {
			p.metrics.QueueDepth.Dec()
		}
		results.Append(p.process(ctx, id, targets))
		processed++
	}
	p.logger.Debug("worker drained queue", "worker", worker, "processed", processed)
}

func (p *Pipeline) process(ctx context.Context, id string, targets abstract.TargetWords) abstract.Abstract {
	start := time.Now()
	doc := abstract.Abstract{ID: id, Status: abstract.StatusOK}

	sentences, err := p.loader.Sentences(ctx, id)
	if err != nil {
		doc.Status = abstract.StatusLoadFailed
		doc.LoadErr = err
	}
	res := scorer.Score(targets, sentences)
	doc.Sentences = sentences
	doc.Score = res.Score
	doc.Summary = res.Summary

	if p.metrics != nil {
		p.metrics.AbstractsProcessed.WithLabelValues(string(doc.Status)).Inc()
		p.metrics.AbstractScore.Observe(doc.Score)
		p.metrics.ProcessingDuration.Observe(time.Since(start).Seconds())
	}
	p.logger.Debug("abstract scored",
		"doc_id", id,
		"score", doc.Score,
		"summary_sentences", len(doc.Summary),
		"status", doc.Status,
	)
	return doc
}
