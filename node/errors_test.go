package node

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIErrorMessageVerbatim(t *testing.T) {
	err := &APIError{Code: 400, Message: "Insufficient balance"}
	require.Equal(t, "Insufficient balance", err.Error())
	require.False(t, IsTransient(err))
}

func TestClassifyErr(t *testing.T) {
	require.NoError(t, classifyErr(nil))

	// Already-classified errors pass through untouched.
	wrapped := fmt.Errorf("call failed: %w", &APIError{Message: "boom", Transient: true})
	require.Same(t, wrapped, classifyErr(wrapped))
	require.True(t, IsTransient(classifyErr(wrapped)))

	for _, err := range []error{
		context.Canceled,
		context.DeadlineExceeded,
		errors.New("dial tcp 127.0.0.1:5393: connect: connection refused"),
		errors.New("dial tcp: lookup node.lexe.app: no such host"),
	} {
		classified := classifyErr(err)
		require.True(t, IsTransient(classified), "err %v", err)
	}

	classified := classifyErr(errors.New("invalid invoice"))
	require.False(t, IsTransient(classified))
	require.Equal(t, "invalid invoice", classified.Error())
}
