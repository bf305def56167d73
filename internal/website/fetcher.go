package website

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"podcastr/internal/logging"
)

const defaultFetchTimeout = 15 * time.Second

var extraLineBreaks = regexp.MustCompile(`(\r?\n)+`)

// Fetcher retrieves a page and reduces it to cleaned body text.
//
// Errors never cross this boundary into the orchestrator: every failure is
// logged and converted to an empty result, which the validation gate
// treats as a failed stage.
type Fetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes the fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// NewFetcher constructs a fetcher. A nil logger falls back to a no-op.
func NewFetcher(logger *slog.Logger, opts ...Option) *Fetcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	f := &Fetcher{
		httpClient: &http.Client{Timeout: defaultFetchTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the URL and returns the cleaned text of its body
// element, or "" when anything goes wrong.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) string {
	text, err := f.fetch(ctx, rawURL)
	if err != nil {
		f.logger.Error("content fetch failed",
			logging.String("url", strings.TrimSpace(rawURL)),
			logging.Error(err),
		)
		return ""
	}
	return text
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", errors.New("url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("http %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	body := doc.Find("body")
	if body.Length() == 0 {
		return "", errors.New("body element not found")
	}
	return cleanBodyText(body.Text()), nil
}

// cleanBodyText collapses whitespace runs into single spaces and repeated
// line breaks into single ones, then trims the result.
func cleanBodyText(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")
	text = extraLineBreaks.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
