package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"podcastr/internal/archive"
	"podcastr/internal/logging"
	"podcastr/internal/services"
	"podcastr/internal/usage"
)

// State identifies a position in the pipeline state machine.
type State string

const (
	StateAwaitingInput          State = "awaiting_input"
	StateFetchingContent        State = "fetching_content"
	StateGeneratingScript       State = "generating_script"
	StateGeneratingDerivatives  State = "generating_derivatives"
	StateValidating             State = "validating"
	StateBuildingArchive        State = "building_archive"
	StateReporting              State = "reporting"
	StateAwaitingRepeatDecision State = "awaiting_repeat_decision"
	StateTerminated             State = "terminated"
)

// Operator-facing stage labels, used in logs and failure prompts.
const (
	labelFetch       = "Loading content"
	labelScript      = "Podcast script generation"
	labelDescription = "Podcast description generation"
	labelSocial      = "Social media posts generation"
	labelAudio       = "Podcast audio generation"
	labelImage       = "Podcast image generation"
	labelArchive     = "Creating archive"
)

// ContentSource fetches and cleans page text. Failures surface as empty
// text, never as errors.
type ContentSource interface {
	Fetch(ctx context.Context, url string) string
}

// GeneratorSet produces the episode artifacts. The text stages fail with
// a generation error; the byte stages fail by returning empty slices.
type GeneratorSet interface {
	GenerateScript(ctx context.Context, sourceText, podcastName, language string) (string, error)
	GenerateDescription(ctx context.Context, script, language string) (string, error)
	GenerateSocialPosts(ctx context.Context, script, language string) (SocialPosts, error)
	GenerateAudio(ctx context.Context, script, voice string) []byte
	GenerateCoverImage(ctx context.Context, script string) []byte
}

// Archiver packages the manifest and persists the resulting blob.
type Archiver interface {
	Build(entries []archive.Entry) ([]byte, error)
	Write(data []byte) (string, error)
}

// Prompter is the interactive operator surface.
type Prompter interface {
	RequestEpisode() (Request, error)
	ConfirmRestart(stageLabel string) bool
	ConfirmRepeat() bool
	Notify(message string)
}

// Reporter renders the end-of-run cost report.
type Reporter interface {
	Render(snapshot usage.Snapshot)
}

// Options carries the orchestrator's collaborators.
type Options struct {
	Logger     *slog.Logger
	Source     ContentSource
	Generators GeneratorSet
	Archiver   Archiver
	Prompter   Prompter
	Reporter   Reporter
	Tracker    *usage.Tracker
}

// Orchestrator sequences the pipeline stages, fans the derivative stages
// out in parallel, drives the validation gates, and loops whole runs
// under operator control.
type Orchestrator struct {
	logger     *slog.Logger
	source     ContentSource
	generators GeneratorSet
	archiver   Archiver
	prompter   Prompter
	reporter   Reporter
	tracker    *usage.Tracker
	gate       *Gate
}

// New constructs an orchestrator, validating that every collaborator is
// present.
func New(opts Options) (*Orchestrator, error) {
	switch {
	case opts.Source == nil:
		return nil, errors.New("orchestrator requires a content source")
	case opts.Generators == nil:
		return nil, errors.New("orchestrator requires a generator set")
	case opts.Archiver == nil:
		return nil, errors.New("orchestrator requires an archiver")
	case opts.Prompter == nil:
		return nil, errors.New("orchestrator requires a prompter")
	case opts.Reporter == nil:
		return nil, errors.New("orchestrator requires a reporter")
	case opts.Tracker == nil:
		return nil, errors.New("orchestrator requires a usage tracker")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		logger:     logger,
		source:     opts.Source,
		generators: opts.Generators,
		archiver:   opts.Archiver,
		prompter:   opts.Prompter,
		reporter:   opts.Reporter,
		tracker:    opts.Tracker,
		gate:       NewGate(logger, opts.Prompter),
	}, nil
}

// derivativeResults holds one typed slot per parallel branch. Each branch
// writes only its own slot; the join's wait establishes the ordering the
// validation pass relies on.
type derivativeResults struct {
	description Result[string]
	social      Result[SocialPosts]
	audio       Result[[]byte]
	image       Result[[]byte]
	err         error
}

// Run executes the interactive pipeline loop until the operator declines
// to repeat, a run fails without a restart, or a non-generation error
// escapes a stage.
func (o *Orchestrator) Run(ctx context.Context) error {
	state := StateAwaitingInput
	var (
		run         *Run
		runCtx      context.Context
		derivatives derivativeResults
	)

	for {
		switch state {
		case StateAwaitingInput:
			if err := ctx.Err(); err != nil {
				return err
			}
			o.tracker.Reset()
			request, err := o.prompter.RequestEpisode()
			if err != nil {
				return err
			}
			run = &Run{ID: uuid.NewString(), Request: request}
			runCtx = services.WithRunID(ctx, run.ID)
			derivatives = derivativeResults{}
			o.logger.Info("run started",
				logging.String(logging.FieldRunID, run.ID),
				logging.String("url", run.ContentURL),
				logging.String("language", run.Language),
				logging.String("voice", run.Voice),
			)
			state = StateFetchingContent

		case StateFetchingContent:
			result, err := Execute(runCtx, o.logger, labelFetch, func(ctx context.Context) (string, error) {
				return o.source.Fetch(ctx, run.ContentURL), nil
			})
			if err != nil {
				return err
			}
			ok, restart := o.gate.Check(labelFetch, result)
			if !ok {
				state = failTransition(restart)
				continue
			}
			run.SourceText = result.Value()
			state = StateGeneratingScript

		case StateGeneratingScript:
			result, err := Execute(runCtx, o.logger, labelScript, func(ctx context.Context) (string, error) {
				return o.generators.GenerateScript(ctx, run.SourceText, run.PodcastName, run.Language)
			})
			if err != nil {
				return err
			}
			ok, restart := o.gate.Check(labelScript, result)
			if !ok {
				state = failTransition(restart)
				continue
			}
			run.Script = result.Value()
			state = StateGeneratingDerivatives

		case StateGeneratingDerivatives:
			derivatives = o.generateDerivatives(runCtx, run)
			if derivatives.err != nil {
				return derivatives.err
			}
			state = StateValidating

		case StateValidating:
			ok, restart := o.validateDerivatives(run, derivatives)
			if !ok {
				state = failTransition(restart)
				continue
			}
			state = StateBuildingArchive

		case StateBuildingArchive:
			result, err := Execute(runCtx, o.logger, labelArchive, func(ctx context.Context) (string, error) {
				return o.buildArchive(run)
			})
			if err != nil {
				return err
			}
			ok, restart := o.gate.Check(labelArchive, result)
			if !ok {
				state = failTransition(restart)
				continue
			}
			o.prompter.Notify("Archive saved to " + result.Value())
			state = StateReporting

		case StateReporting:
			o.reporter.Render(o.tracker.Snapshot())
			state = StateAwaitingRepeatDecision

		case StateAwaitingRepeatDecision:
			if o.prompter.ConfirmRepeat() {
				state = StateAwaitingInput
			} else {
				state = StateTerminated
			}

		case StateTerminated:
			o.logger.Info("pipeline terminated")
			return nil
		}
	}
}

// generateDerivatives launches the four script-dependent stages
// concurrently and joins on all of them. Branches are never cancelled:
// once launched, every branch runs to completion (success or contained
// failure) before the orchestrator acts again.
func (o *Orchestrator) generateDerivatives(ctx context.Context, run *Run) derivativeResults {
	var out derivativeResults
	var mu sync.Mutex
	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if out.err == nil {
			out.err = err
		}
		mu.Unlock()
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		result, err := Execute(ctx, o.logger, labelDescription, func(ctx context.Context) (string, error) {
			return o.generators.GenerateDescription(ctx, run.Script, run.Language)
		})
		out.description = result
		record(err)
	}()
	go func() {
		defer wg.Done()
		result, err := Execute(ctx, o.logger, labelSocial, func(ctx context.Context) (SocialPosts, error) {
			return o.generators.GenerateSocialPosts(ctx, run.Script, run.Language)
		})
		out.social = result
		record(err)
	}()
	go func() {
		defer wg.Done()
		result, err := Execute(ctx, o.logger, labelAudio, func(ctx context.Context) ([]byte, error) {
			return o.generators.GenerateAudio(ctx, run.Script, run.Voice), nil
		})
		out.audio = result
		record(err)
	}()
	go func() {
		defer wg.Done()
		result, err := Execute(ctx, o.logger, labelImage, func(ctx context.Context) ([]byte, error) {
			return o.generators.GenerateCoverImage(ctx, run.Script), nil
		})
		out.image = result
		record(err)
	}()
	wg.Wait()

	return out
}

// validateDerivatives checks every branch result in a fixed order. The
// first FAIL short-circuits the remaining checks and decides the restart;
// later results are discarded even if they individually passed.
func (o *Orchestrator) validateDerivatives(run *Run, derivatives derivativeResults) (bool, bool) {
	checks := []struct {
		label   string
		outcome Outcome
	}{
		{labelDescription, derivatives.description},
		{labelSocial, derivatives.social},
		{labelAudio, derivatives.audio},
		{labelImage, derivatives.image},
	}
	for _, check := range checks {
		if ok, restart := o.gate.Check(check.label, check.outcome); !ok {
			return false, restart
		}
	}

	run.Description = derivatives.description.Value()
	run.Social = derivatives.social.Value()
	run.Audio = derivatives.audio.Value()
	run.CoverImage = derivatives.image.Value()
	return true, false
}

// buildArchive packages the run's manifest and persists the blob.
// Assembly failures are tagged as generation errors so the gate handles
// them identically to the generative stages.
func (o *Orchestrator) buildArchive(run *Run) (string, error) {
	blob, err := o.archiver.Build(run.Manifest())
	if err != nil {
		return "", services.Wrap(services.ErrGeneration, "archive", "build", "", err)
	}
	path, err := o.archiver.Write(blob)
	if err != nil {
		return "", services.Wrap(services.ErrGeneration, "archive", "write", "", err)
	}
	return path, nil
}

func failTransition(restart bool) State {
	if restart {
		return StateAwaitingInput
	}
	return StateTerminated
}
