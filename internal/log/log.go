// Package log provides the context-scoped logger used throughout the
// engine, in the same shape as the teacher's knative.dev/pkg/logging
// helper (logging.FromContext(ctx).Infof(...)) but built directly on
// go.uber.org/zap, since there is no Kubernetes request context to hang a
// knative logging key off of here.
package log

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

var noop = zap.NewNop().Sugar()

// IntoContext returns a copy of ctx carrying logger, retrievable with
// FromContext.
func IntoContext(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stashed in ctx by IntoContext, or a no-op
// logger if none was set. Library callers that pass context.Background()
// never crash on a nil logger.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok && logger != nil {
		return logger
	}
	return noop
}
