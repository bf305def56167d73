package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"podcastr/internal/config"
	"podcastr/internal/logging"
	"podcastr/internal/pipeline"
	"podcastr/internal/services/openai"
	"podcastr/internal/usage"
	"podcastr/internal/website"
)

func newRunCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the interactive episode pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, *configFlag)
		},
	}
}

func runPipeline(cmd *cobra.Command, configPath string) error {
	cfg, _, _, err := config.Load(strings.TrimSpace(configPath))
	if err != nil {
		return err
	}

	prompter := newConsolePrompter(cfg, cmd.OutOrStdout())
	if strings.TrimSpace(cfg.OpenAI.APIKey) == "" {
		key, err := prompter.requestAPIKey()
		if err != nil {
			return err
		}
		cfg.OpenAI.APIKey = key
	}

	logger, cleanup, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	release, err := acquireSessionLock(cfg.Paths.StateDir)
	if err != nil {
		return err
	}
	defer release()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := openai.NewClient(openai.Config{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		ChatModel:      cfg.OpenAI.ChatModel,
		AudioModel:     cfg.OpenAI.AudioModel,
		ImageModel:     cfg.OpenAI.ImageModel,
		TimeoutSeconds: cfg.OpenAI.TimeoutSeconds,
	})
	tracker := usage.NewTracker()

	orchestrator, err := pipeline.New(pipeline.Options{
		Logger:     logger,
		Source:     website.NewFetcher(logger),
		Generators: pipeline.NewGenerators(client, tracker, logger),
		Archiver:   newZipArchiver(logger, cfg.Paths.OutputDir),
		Prompter:   prompter,
		Reporter:   newCostReporter(cmd.OutOrStdout()),
		Tracker:    tracker,
	})
	if err != nil {
		return err
	}

	prompter.banner()
	return orchestrator.Run(ctx)
}

// acquireSessionLock takes the single-instance lock in the state
// directory. Interactive prompts and the session log do not tolerate two
// concurrent processes.
func acquireSessionLock(stateDir string) (func(), error) {
	if strings.TrimSpace(stateDir) == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure state directory: %w", err)
	}

	lock := flock.New(filepath.Join(stateDir, "podcastr.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another podcastr instance is already running (lock %s)", lock.Path())
	}
	return func() { _ = lock.Unlock() }, nil
}
