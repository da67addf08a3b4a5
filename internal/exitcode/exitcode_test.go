package exitcode

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/felixgeelhaar/tidygate/internal/errors"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: Success,
		},
		{
			name: "command gate",
			err:  errors.NewCommandGateError(1, "`false`: exit code 1"),
			want: CommandFailed,
		},
		{
			name: "diff gate",
			err:  errors.NewDiffGateError("files out of date"),
			want: DiffDetected,
		},
		{
			name: "empty command list",
			err:  errors.NewNoCommandsError(),
			want: UsageError,
		},
		{
			name: "wrapped gate error",
			err:  fmt.Errorf("check: %w", errors.NewDiffGateError("dirty")),
			want: DiffDetected,
		},
		{
			name: "plain error",
			err:  stderrors.New("boom"),
			want: GeneralError,
		},
		{
			name: "inspector error",
			err:  errors.Wrap(errors.ErrCodeGitStatus, "git status failed", stderrors.New("exit status 128")),
			want: GeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineExitCode(tt.err))
		})
	}
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "Success", Description(Success))
	assert.Equal(t, "Uncommitted changes detected", Description(DiffDetected))
	assert.Equal(t, "Unknown error", Description(99))
}
