package ports_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnimplemented_WarnsAndDoesNothing(t *testing.T) {
	var buf bytes.Buffer
	adapter := &ports.Unimplemented{
		Logger: slog.New(slog.NewTextHandler(&buf, nil)),
	}
	ctx := context.Background()

	suite := &domain.Suite{Name: "S", Tests: []domain.Node{}}
	recursed := false
	err := adapter.CreateSuite(ctx, suite, nil, 0, true,
		func(context.Context, []domain.Node, any, int) error {
			recursed = true
			return nil
		})
	require.NoError(t, err)
	assert.False(t, recursed, "stub must not traverse children")
	assert.Contains(t, buf.String(), "not implemented")
	assert.Contains(t, buf.String(), "createSuite")

	buf.Reset()
	require.NoError(t, adapter.CreateTest(ctx, &domain.Test{Name: "t"}, nil, 0))
	assert.Contains(t, buf.String(), "createTest")
}

func TestUnimplemented_NilLoggerIsSafe(t *testing.T) {
	adapter := &ports.Unimplemented{}
	err := adapter.CreateInheritedSuite(context.Background(), &domain.Test{Name: "t"}, nil, 0, nil)
	assert.NoError(t, err)
}
