package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	stored := zap.NewExample()

	//nolint:staticcheck // nil context is part of the contract
	assert.Same(t, zap.L(), FromContext(nil))
	assert.Same(t, zap.L(), FromContext(context.Background()))
	assert.Same(t, stored, FromContext(WithLogger(context.Background(), stored)))
}

func TestWithLogger_NilContext(t *testing.T) {
	stored := zap.NewNop()

	//nolint:staticcheck // nil context is part of the contract
	ctx := WithLogger(nil, stored)

	assert.NotNil(t, ctx)
	assert.Same(t, stored, FromContext(ctx))
}
