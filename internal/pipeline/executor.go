package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"podcastr/internal/logging"
	"podcastr/internal/services"
)

// Execute runs one unit of pipeline work with uniform logging and error
// containment. Generation errors are absorbed into a failed Result;
// anything else (programming or infrastructure errors) is returned to the
// caller and aborts the run outright instead of prompting for a restart.
func Execute[T any](ctx context.Context, logger *slog.Logger, label string, fn func(context.Context) (T, error)) (Result[T], error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	stageCtx := logging.WithStage(ctx, label)
	stageCtx = services.WithRequestID(stageCtx, uuid.NewString())
	stageLogger := logging.WithContext(stageCtx, logger)

	stageLogger.Info("stage started",
		logging.String(logging.FieldEventType, "stage_start"),
	)

	value, err := fn(stageCtx)
	if err != nil {
		if services.IsGeneration(err) {
			stageLogger.Error("stage failed",
				logging.String(logging.FieldEventType, "stage_failure"),
				logging.Error(err),
			)
			return Failed[T](err), nil
		}
		return Empty[T](), err
	}

	result := Ok(value)
	stageLogger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Bool("usable", result.OK()),
	)
	return result, nil
}
