package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"podcastr/internal/config"
	"podcastr/internal/pipeline"
)

// consolePrompter drives the interactive session through survey prompts.
// Configured podcast defaults pre-select the matching prompt; banner and
// notifications go to the injected writer.
type consolePrompter struct {
	defaults config.Podcast
	out      io.Writer
}

func newConsolePrompter(cfg *config.Config, out io.Writer) *consolePrompter {
	prompter := &consolePrompter{out: out}
	if prompter.out == nil {
		prompter.out = os.Stdout
	}
	if cfg != nil {
		prompter.defaults = cfg.Podcast
	}
	return prompter
}

func (p *consolePrompter) banner() {
	fmt.Fprintln(p.out, "Podcastr turns a web article into a ready-to-publish podcast episode.")
	fmt.Fprintln(p.out)
}

func (p *consolePrompter) requestAPIKey() (string, error) {
	var key string
	prompt := &survey.Password{Message: "OpenAI API key:"}
	if err := survey.AskOne(prompt, &key, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

// RequestEpisode collects the inputs for one run.
func (p *consolePrompter) RequestEpisode() (pipeline.Request, error) {
	var request pipeline.Request

	urlPrompt := &survey.Input{Message: "Content URL:"}
	if err := survey.AskOne(urlPrompt, &request.ContentURL, survey.WithValidator(survey.Required), survey.WithValidator(validateContentURL)); err != nil {
		return pipeline.Request{}, err
	}

	namePrompt := &survey.Input{Message: "Podcast name:"}
	if err := survey.AskOne(namePrompt, &request.PodcastName, survey.WithValidator(survey.Required)); err != nil {
		return pipeline.Request{}, err
	}

	languagePrompt := &survey.Select{
		Message: "Episode language:",
		Options: config.SupportedLanguages,
	}
	if p.defaults.DefaultLanguage != "" {
		languagePrompt.Default = p.defaults.DefaultLanguage
	}
	if err := survey.AskOne(languagePrompt, &request.Language); err != nil {
		return pipeline.Request{}, err
	}

	voice, err := p.requestVoice()
	if err != nil {
		return pipeline.Request{}, err
	}
	request.Voice = voice

	request.ContentURL = strings.TrimSpace(request.ContentURL)
	request.PodcastName = strings.TrimSpace(request.PodcastName)
	return request, nil
}

// requestVoice shows title-cased voice names and maps the selection back
// to the lowercase identifier the speech endpoint expects.
func (p *consolePrompter) requestVoice() (string, error) {
	caser := cases.Title(language.English)
	options := make([]string, len(config.SupportedVoices))
	for i, voice := range config.SupportedVoices {
		options[i] = caser.String(voice)
	}

	prompt := &survey.Select{Message: "Narration voice:", Options: options}
	if p.defaults.DefaultVoice != "" {
		prompt.Default = caser.String(p.defaults.DefaultVoice)
	}

	var selected string
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return strings.ToLower(selected), nil
}

// restartPrompt builds the failure confirmation. Restarting is the
// expected recovery, so it is the pre-selected answer.
func restartPrompt(stageLabel string) *survey.Confirm {
	return &survey.Confirm{
		Message: fmt.Sprintf("%s produced no result. Restart from the beginning?", stageLabel),
		Default: true,
	}
}

// ConfirmRestart asks whether a failed run should start over. A prompt
// error counts as a decline.
func (p *consolePrompter) ConfirmRestart(stageLabel string) bool {
	confirmed := false
	if err := survey.AskOne(restartPrompt(stageLabel), &confirmed); err != nil {
		return false
	}
	return confirmed
}

// ConfirmRepeat asks whether another episode should be produced.
func (p *consolePrompter) ConfirmRepeat() bool {
	confirmed := false
	prompt := &survey.Confirm{Message: "Produce another episode?"}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false
	}
	return confirmed
}

func (p *consolePrompter) Notify(message string) {
	fmt.Fprintln(p.out, message)
}

func validateContentURL(answer interface{}) error {
	value, _ := answer.(string)
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return errors.New("enter an absolute http or https URL")
	}
	return nil
}
