package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"podcastr/internal/logging"
	"podcastr/internal/services"
	"podcastr/internal/services/openai"
	"podcastr/internal/usage"
)

const (
	scriptMaxTokens     = 4096
	derivativeMaxTokens = 1000
)

// SocialPosts holds one post per supported platform.
type SocialPosts struct {
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
}

// Empty reports whether no platform received a post.
func (p SocialPosts) Empty() bool {
	return strings.TrimSpace(p.LinkedIn) == "" &&
		strings.TrimSpace(p.Twitter) == "" &&
		strings.TrimSpace(p.Facebook) == ""
}

// Generators wraps the generative API calls behind the pipeline's stage
// signatures and reports billed usage to the tracker.
//
// Two failure conventions coexist deliberately: the text-producing stages
// fail by returning a generation error, the byte-producing stages fail by
// logging and returning an empty slice. The validation gate treats both
// the same way.
type Generators struct {
	client  *openai.Client
	tracker *usage.Tracker
	logger  *slog.Logger
}

// NewGenerators constructs the generator set.
func NewGenerators(client *openai.Client, tracker *usage.Tracker, logger *slog.Logger) *Generators {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generators{client: client, tracker: tracker, logger: logger}
}

// GenerateScript produces the episode script from the source text.
func (g *Generators) GenerateScript(ctx context.Context, sourceText, podcastName, language string) (string, error) {
	prompt := fmt.Sprintf(scriptPrompt, podcastName, language, sourceText)
	completion, err := g.client.Complete(ctx, prompt, scriptMaxTokens)
	if err != nil {
		return "", services.Wrap(services.ErrGeneration, "script", "chat completion", "", err)
	}
	g.recordChatUsage(completion.Usage)
	return completion.Text, nil
}

// GenerateDescription produces the directory description from the script.
func (g *Generators) GenerateDescription(ctx context.Context, script, language string) (string, error) {
	prompt := fmt.Sprintf(descriptionPrompt, language, script)
	completion, err := g.client.Complete(ctx, prompt, derivativeMaxTokens)
	if err != nil {
		return "", services.Wrap(services.ErrGeneration, "description", "chat completion", "", err)
	}
	g.recordChatUsage(completion.Usage)
	return completion.Text, nil
}

// GenerateSocialPosts produces one post per platform from the script.
func (g *Generators) GenerateSocialPosts(ctx context.Context, script, language string) (SocialPosts, error) {
	var posts SocialPosts
	prompt := fmt.Sprintf(socialPostsPrompt, language, script)
	completion, err := g.client.CompleteJSON(ctx, prompt, derivativeMaxTokens)
	if err != nil {
		return posts, services.Wrap(services.ErrGeneration, "social posts", "chat completion", "", err)
	}
	g.recordChatUsage(completion.Usage)
	if err := openai.DecodeModelJSON(completion.Text, &posts); err != nil {
		return SocialPosts{}, services.Wrap(services.ErrGeneration, "social posts", "decode payload", "", err)
	}
	return posts, nil
}

// GenerateAudio narrates the script with the given voice. Failures are
// logged and yield nil bytes rather than an error.
func (g *Generators) GenerateAudio(ctx context.Context, script, voice string) []byte {
	audio, err := g.client.Speech(ctx, script, voice)
	if err != nil {
		g.logger.Error("audio generation failed", logging.Error(err))
		return nil
	}
	g.tracker.AddAudioCharacters(int64(utf8.RuneCountInString(script)))
	return audio
}

// GenerateCoverImage rewrites the script into a safe image prompt and
// generates the cover from it. Failures are logged and yield nil bytes
// rather than an error.
func (g *Generators) GenerateCoverImage(ctx context.Context, script string) []byte {
	prompt := fmt.Sprintf(coverPreparationPrompt, script)
	completion, err := g.client.Complete(ctx, prompt, derivativeMaxTokens)
	if err != nil {
		g.logger.Error("cover prompt generation failed", logging.Error(err))
		return nil
	}
	g.recordChatUsage(completion.Usage)

	image, err := g.client.Image(ctx, completion.Text)
	if err != nil {
		g.logger.Error("cover image generation failed", logging.Error(err))
		return nil
	}
	g.tracker.MarkImageProduced()
	return image
}

func (g *Generators) recordChatUsage(u openai.Usage) {
	if g.tracker == nil {
		return
	}
	g.tracker.AddChatInputTokens(int64(u.PromptTokens))
	g.tracker.AddChatOutputTokens(int64(u.CompletionTokens))
}
