package pipeline

import (
	"log/slog"

	"podcastr/internal/logging"
)

// RestartPrompter asks the operator whether a failed run should restart
// from the beginning.
type RestartPrompter interface {
	ConfirmRestart(stageLabel string) bool
}

// Gate classifies stage results. Every failure mode collapses to one
// binary decision, restart from scratch or abandon, because partial
// episodes are not a supported output.
type Gate struct {
	logger   *slog.Logger
	prompter RestartPrompter
}

// NewGate constructs a validation gate.
func NewGate(logger *slog.Logger, prompter RestartPrompter) *Gate {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Gate{logger: logger, prompter: prompter}
}

// Check classifies a stage result as PASS or FAIL. On PASS it returns
// ok=true with no side effect. On FAIL it reports the failure under the
// stage label, asks the operator whether to restart the whole run, and
// returns ok=false alongside that choice.
func (g *Gate) Check(stageLabel string, result Outcome) (ok bool, restart bool) {
	if result != nil && result.OK() {
		return true, false
	}

	var err error
	if result != nil {
		err = result.Err()
	}
	g.logger.Error("stage produced no usable result",
		logging.String(logging.FieldStage, stageLabel),
		logging.Error(err),
	)

	if g.prompter == nil {
		return false, false
	}
	return false, g.prompter.ConfirmRestart(stageLabel)
}
