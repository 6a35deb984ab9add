package server_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/issuepool/issuepool/pkg/controller/server"
	"github.com/issuepool/issuepool/pkg/utils/logging"
)

func TestDetachContext(t *testing.T) {
	t.Run("inherits logger from original context", func(t *testing.T) {
		customLogger := slog.Default().With("test", "value")
		originalCtx := logging.With(context.Background(), customLogger)

		bgCtx := server.DetachContext(originalCtx)

		gt.V(t, logging.From(bgCtx)).Equal(customLogger)
	})

	t.Run("inherits request ID from original context", func(t *testing.T) {
		reqID, originalCtx := logging.CtxRequestID(context.Background())

		bgCtx := server.DetachContext(originalCtx)

		inheritedReqID, _ := logging.CtxRequestID(bgCtx)
		gt.V(t, inheritedReqID).Equal(reqID)
	})

	t.Run("inherits time function from original context", func(t *testing.T) {
		fixedTime := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
		originalCtx := logging.CtxWithTime(context.Background(), func() time.Time {
			return fixedTime
		})

		bgCtx := server.DetachContext(originalCtx)

		gt.V(t, logging.CtxTime(bgCtx)).Equal(fixedTime)
	})

	t.Run("survives cancellation of the original context", func(t *testing.T) {
		originalCtx, cancel := context.WithCancel(context.Background())

		bgCtx := server.DetachContext(originalCtx)
		cancel()

		gt.V(t, originalCtx.Err()).Equal(context.Canceled)
		gt.V(t, bgCtx.Err()).Equal(nil)
	})
}
