package contextutil_test

import (
	"context"
	"testing"

	"hr-portal/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestActor(t *testing.T) {
	_, ok := contextutil.GetActor(context.Background())
	assert.False(t, ok)

	ctx := contextutil.WithActor(context.Background(), contextutil.Actor{UserID: 42, Role: "admin"})
	actor, ok := contextutil.GetActor(ctx)

	assert.True(t, ok)
	assert.Equal(t, uint(42), actor.UserID)
	assert.Equal(t, "admin", actor.Role)
}

func TestLogFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	anonymous := contextutil.WithRequestID(context.Background(), "req-1")
	logger.Info("anonymous", contextutil.LogFields(anonymous)...)

	authenticated := contextutil.WithActor(anonymous, contextutil.Actor{UserID: 7, Role: "employee"})
	logger.Info("authenticated", contextutil.LogFields(authenticated)...)

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, map[string]any{"request_id": "req-1"}, entries[0].ContextMap())
	assert.Equal(t, map[string]any{
		"request_id": "req-1",
		"user_id":    uint64(7),
		"role":       "employee",
	}, entries[1].ContextMap())
}

func TestGetLogger(t *testing.T) {
	scoped := zap.NewNop().Named("scoped")
	fallback := zap.NewNop().Named("fallback")

	ctx := contextutil.WithLogger(context.Background(), scoped)

	assert.Same(t, scoped, contextutil.GetLogger(ctx, fallback))
	assert.Same(t, fallback, contextutil.GetLogger(context.Background(), fallback))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
}
