package config

const (
	defaultBaseURL        = "https://api.openai.com/v1"
	defaultChatModel      = "gpt-4o-mini"
	defaultAudioModel     = "tts-1"
	defaultImageModel     = "dall-e-3"
	defaultTimeoutSeconds = 300
	defaultStateDir       = "~/.local/share/podcastr"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// SupportedLanguages lists the languages an episode can be produced in.
var SupportedLanguages = []string{
	"German",
	"English",
	"French",
	"Spanish",
}

// SupportedVoices lists the narration voices accepted by the speech
// endpoint. Stored lowercase because that is what the API expects;
// display code title-cases them.
var SupportedVoices = []string{
	"alloy",
	"echo",
	"fable",
	"onyx",
	"nova",
	"shimmer",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		OpenAI: OpenAI{
			BaseURL:        defaultBaseURL,
			ChatModel:      defaultChatModel,
			AudioModel:     defaultAudioModel,
			ImageModel:     defaultImageModel,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
