package usage

import "sync/atomic"

// Tracker accumulates the billed units of one pipeline run. It is owned
// by the CLI and handed into each generator, never reached through
// package-level state.
//
// The parallel derivative stages write concurrently, so additions use
// fetch-and-add; reads only happen after the join point.
type Tracker struct {
	chatInputTokens  atomic.Int64
	chatOutputTokens atomic.Int64
	audioCharacters  atomic.Int64
	imageProduced    atomic.Bool
}

// Snapshot is a point-in-time copy of the accumulated counters.
type Snapshot struct {
	ChatInputTokens  int64
	ChatOutputTokens int64
	AudioCharacters  int64
	ImageProduced    bool
}

// NewTracker returns a zeroed tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// AddChatInputTokens records prompt tokens billed by a chat call.
func (t *Tracker) AddChatInputTokens(n int64) {
	if n > 0 {
		t.chatInputTokens.Add(n)
	}
}

// AddChatOutputTokens records completion tokens billed by a chat call.
func (t *Tracker) AddChatOutputTokens(n int64) {
	if n > 0 {
		t.chatOutputTokens.Add(n)
	}
}

// AddAudioCharacters records input characters billed by a speech call.
func (t *Tracker) AddAudioCharacters(n int64) {
	if n > 0 {
		t.audioCharacters.Add(n)
	}
}

// MarkImageProduced flags that the image stage yielded a non-empty result.
func (t *Tracker) MarkImageProduced() {
	t.imageProduced.Store(true)
}

// Reset zeroes all counters. Called at the start of every run.
func (t *Tracker) Reset() {
	t.chatInputTokens.Store(0)
	t.chatOutputTokens.Store(0)
	t.audioCharacters.Store(0)
	t.imageProduced.Store(false)
}

// Snapshot returns the current counter values.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		ChatInputTokens:  t.chatInputTokens.Load(),
		ChatOutputTokens: t.chatOutputTokens.Load(),
		AudioCharacters:  t.audioCharacters.Load(),
		ImageProduced:    t.imageProduced.Load(),
	}
}
