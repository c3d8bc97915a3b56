package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	t.Run("logger on context", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		log := zap.New(core).Sugar()

		ctx := WithContext(context.Background(), log)
		FromContext(ctx).Infow("hello", "symbol", "AAPL")

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		require.Equal(t, "hello", entry.Message)
		require.Equal(t, "AAPL", entry.ContextMap()["symbol"])
	})

	t.Run("falls back to global", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}
