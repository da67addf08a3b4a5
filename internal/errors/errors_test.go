package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *TidygateError
		want string
	}{
		{
			name: "code and message",
			err:  New(ErrCodeGateDiff, "tree is dirty"),
			want: "[GATE-002] tree is dirty",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeGitStatus, "git status failed", stderrors.New("exit status 128")),
			want: "[GIT-001] git status failed: exit status 128",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorSuggestions(t *testing.T) {
	err := New(ErrCodeConfigNoCommands, "no commands configured").
		WithSuggestion("pass --run").
		WithSuggestions("one per line", "blank lines ignored")

	require.Len(t, err.Suggestions, 3)
	assert.Contains(t, err.Error(), "Suggestions:")
	assert.Contains(t, err.Error(), "pass --run")
}

func TestOneLine(t *testing.T) {
	err := New(ErrCodeGateDiff, "files out of date").WithSuggestion("commit them")

	assert.Equal(t, "GATE-002: files out of date", err.OneLine())
	assert.NotContains(t, err.OneLine(), "commit them")
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeGitDiff, "diff failed", cause)

	assert.True(t, stderrors.Is(err, cause))

	var tgErr *TidygateError
	require.True(t, stderrors.As(err, &tgErr))
	assert.Equal(t, ErrCodeGitDiff, tgErr.Code)
}

func TestNewCommandGateError(t *testing.T) {
	err := NewCommandGateError(2, "`false`: exit code 1\n`exit 2`: exit code 2")

	assert.Equal(t, ErrCodeGateCommands, err.Code)
	assert.Contains(t, err.Message, "2 command(s) failed")
	assert.Contains(t, err.Message, "`exit 2`: exit code 2")
}
