package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_ChainingAndHelpers(t *testing.T) {
	t.Parallel()

	root := errors.New("connection reset")
	err := NewError(ErrAIUnavailable, "completion failed").
		WithCause(root).
		WithRetryable(true)

	assert.Equal(t, ErrAIUnavailable, GetErrorCode(err))
	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, root)
	assert.Equal(t, "[AI_UNAVAILABLE] completion failed: connection reset", err.Error())
}

func TestError_WrappedCodeLookup(t *testing.T) {
	t.Parallel()

	inner := Errorf(ErrUnknownTemplate, "no template registered for %q", "throne")
	wrapped := fmt.Errorf("generate piece: %w", inner)

	assert.True(t, IsErrorCode(wrapped, ErrUnknownTemplate))
	assert.False(t, IsErrorCode(wrapped, ErrTemplateFailure))
	assert.False(t, IsRetryable(wrapped))
	assert.Equal(t, `[UNKNOWN_TEMPLATE] no template registered for "throne"`, inner.Error())
}

func TestError_PlainErrors(t *testing.T) {
	t.Parallel()

	plain := errors.New("boom")
	assert.Equal(t, ErrorCode(""), GetErrorCode(plain))
	assert.False(t, IsErrorCode(nil, ErrAITimeout))
}
