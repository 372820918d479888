package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	base := fmt.Errorf("disk full")
	err := Wrap(CodeStorage, "failed to save entry", base)

	require.EqualError(t, err, "failed to save entry: disk full")
	require.True(t, IsCode(err, CodeStorage))
	require.False(t, IsCode(err, CodeNotFound))
	require.ErrorIs(t, err, base)
}

func TestCodeOfWrappedChain(t *testing.T) {
	err := fmt.Errorf("handler: %w", Wrap(CodeInvalidInput, "title is required", nil))

	require.Equal(t, CodeInvalidInput, CodeOf(err))
	require.Equal(t, "", CodeOf(fmt.Errorf("plain")))
	require.Equal(t, "", CodeOf(nil))
}
