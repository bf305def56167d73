package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRestartPromptDefaultsToYes(t *testing.T) {
	prompt := restartPrompt("Podcast audio generation")
	if !prompt.Default {
		t.Error("restart confirmation should default to yes")
	}
	if !strings.Contains(prompt.Message, "Podcast audio generation") {
		t.Errorf("prompt should name the failed stage, got %q", prompt.Message)
	}
}

func TestNotifyWritesToConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	prompter := newConsolePrompter(nil, &buf)

	prompter.Notify("Archive saved to /tmp/run.zip")
	if !strings.Contains(buf.String(), "Archive saved to /tmp/run.zip") {
		t.Errorf("notification missing from writer, got %q", buf.String())
	}
}

func TestBannerWritesToConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	prompter := newConsolePrompter(nil, &buf)

	prompter.banner()
	if !strings.Contains(buf.String(), "Podcastr") {
		t.Errorf("banner missing from writer, got %q", buf.String())
	}
}

func TestValidateContentURL(t *testing.T) {
	if err := validateContentURL("https://example.com/article"); err != nil {
		t.Errorf("valid url rejected: %v", err)
	}
	for _, bad := range []string{"", "example.com", "ftp://example.com/file"} {
		if err := validateContentURL(bad); err == nil {
			t.Errorf("expected rejection for %q", bad)
		}
	}
}
