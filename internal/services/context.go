package services

import "context"

type contextKey string

const (
	stageContextKey     contextKey = "stage"
	runIDContextKey     contextKey = "run_id"
	requestIDContextKey contextKey = "request_id"
)

// WithStage stamps the active pipeline stage onto the context.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageContextKey, stage)
}

// StageFromContext extracts the active stage name, if any.
func StageFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	stage, ok := ctx.Value(stageContextKey).(string)
	return stage, ok && stage != ""
}

// WithRunID stamps the pipeline run identifier onto the context.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDContextKey, id)
}

// RunIDFromContext extracts the pipeline run identifier, if any.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDContextKey).(string)
	return id, ok && id != ""
}

// WithRequestID stamps a correlation identifier for one remote call.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDContextKey, id)
}

// RequestIDFromContext extracts the correlation identifier, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDContextKey).(string)
	return id, ok && id != ""
}
