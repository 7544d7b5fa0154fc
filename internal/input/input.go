// Package input parses the job file: a header of counts, the target words,
// and one abstract identifier per line.
package input

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/errors"
)

// Job is the parsed content of an input file.
type Job struct {
	Threads       int
	AbstractCount int
	ReturnCount   int
	Targets       []string
	IDs           []string
}

// ReadFile opens and parses path.
func ReadFile(path string) (*Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, apperrors.ExitFailure, err, "opening input %s", path)
	}
	defer f.Close()
	job, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return job, nil
}

// Parse reads a job. The header must hold exactly three non-negative
// integers, with a positive thread count. The second line lists the target
// words and may be empty. Blank identifier lines are skipped; the others are
// trimmed.
func Parse(r io.Reader) (*Job, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, apperrors.New(apperrors.ErrMalformedHeader, apperrors.ExitFailure, "input is empty")
	}
	job, err := parseHeader(sc.Text())
	if err != nil {
		return nil, err
	}

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading target words: %w", err)
		}
		return nil, apperrors.New(apperrors.ErrMalformedHeader, apperrors.ExitFailure, "missing target words line")
	}
	job.Targets = strings.Fields(sc.Text())

	for sc.Scan() {
		id := strings.TrimSpace(sc.Text())
		if id == "" {
			continue
		}
		job.IDs = append(job.IDs, id)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading abstract identifiers: %w", err)
	}

	if job.AbstractCount != len(job.IDs) {
		slog.Default().With("component", "input").Warn("abstract count in header does not match identifiers listed",
			"header", job.AbstractCount,
			"listed", len(job.IDs),
		)
	}
	return job, nil
}

func parseHeader(line string) (*Job, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return nil, apperrors.Newf(apperrors.ErrMalformedHeader, apperrors.ExitFailure,
			"expected 3 counts (threads abstracts results), got %d fields", len(fields))
	}
	names := [3]string{"thread count", "abstract count", "return count"}
	var values [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrMalformedHeader, apperrors.ExitFailure,
				"%s %q is not an integer", names[i], f)
		}
		if n < 0 {
			return nil, apperrors.Newf(apperrors.ErrMalformedHeader, apperrors.ExitFailure,
				"%s must not be negative, got %d", names[i], n)
		}
		values[i] = n
	}
	if values[0] == 0 {
		return nil, apperrors.New(apperrors.ErrMalformedHeader, apperrors.ExitFailure, "thread count must be at least 1")
	}
	return &Job{
		Threads:       values[0],
		AbstractCount: values[1],
		ReturnCount:   values[2],
	}, nil
}
