package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/internal/queue"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/config"
)

var _ queue.Recorder = (*Log)(nil)

func TestLog_Record(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, config.LabelsLetters)

	l.Record(0, "d1.txt")
	l.Record(2, "d2.txt")

	assert.Equal(t, "Thread A is calculating d1.txt\nThread C is calculating d2.txt\n", buf.String())
	assert.Equal(t, 2, l.Count())
	assert.NoError(t, l.Err())
}

func TestLog_Label(t *testing.T) {
	letters := New(nil, config.LabelsLetters)
	numbers := New(nil, config.LabelsNumbers)

	assert.Equal(t, "A", letters.Label(0))
	assert.Equal(t, "Z", letters.Label(25))
	assert.Equal(t, "26", letters.Label(26))
	assert.Equal(t, "0", numbers.Label(0))
	assert.Equal(t, "12", numbers.Label(12))
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestLog_KeepsFirstWriteError(t *testing.T) {
	w := &failingWriter{}
	l := New(w, config.LabelsLetters)

	l.Record(0, "a")
	l.Record(1, "b")

	require.Error(t, l.Err())
	assert.Contains(t, l.Err().Error(), "disk full")
	assert.Equal(t, 1, w.calls)
	assert.Equal(t, 2, l.Count())
}

func TestLog_WithQueue(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, config.LabelsNumbers)
	q := queue.New("x", "y")

	for {
		if _, ok := q.TryDequeue(l, 3); !ok {
			break
		}
	}

	assert.Equal(t, "Thread 3 is calculating x\nThread 3 is calculating y\n", buf.String())
}
