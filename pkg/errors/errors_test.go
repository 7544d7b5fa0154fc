package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"app error", New(ErrMalformedHeader, ExitFailure, "bad counts"), ExitFailure},
		{"wrapped app error", fmt.Errorf("loading job: %w", New(ErrUsage, ExitUsage, "missing output")), ExitUsage},
		{"bare usage sentinel", fmt.Errorf("cli: %w", ErrUsage), ExitUsage},
		{"other", fmt.Errorf("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestAppError_UnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("parse: %w", Newf(ErrMalformedHeader, ExitFailure, "field %d", 2))

	assert.True(t, errors.Is(err, ErrMalformedHeader))
	assert.Equal(t, "parse: malformed input header: field 2", err.Error())
}

func TestWrapf_KeepsCause(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "job.txt", Err: fs.ErrNotExist}
	err := fmt.Errorf("run: %w", Wrapf(ErrInvalidInput, ExitFailure, cause, "opening input %s", "job.txt"))

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	var pathErr *fs.PathError
	assert.True(t, errors.As(err, &pathErr))
	assert.Equal(t, ExitFailure, ExitCode(err))
	assert.Equal(t, "run: invalid input: opening input job.txt: open job.txt: file does not exist", err.Error())
}
