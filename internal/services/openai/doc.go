// Package openai implements a minimal client for an OpenAI-compatible
// chat, speech, and image API.
//
// The client issues one request per call and reports the billed usage of
// chat completions to the caller. Retries are intentionally absent: a
// failed generative call is terminal for the current pipeline run.
package openai
