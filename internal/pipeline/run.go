package pipeline

import "podcastr/internal/archive"

// Request carries the operator's inputs for one episode.
type Request struct {
	ContentURL  string
	PodcastName string
	Language    string
	Voice       string
}

// Run is the transient state of one pipeline iteration. It is owned
// exclusively by the orchestrator and discarded at loop end; the usage
// tracker is the only state that outlives it, and that is reset at the
// start of every run.
type Run struct {
	ID string
	Request

	SourceText  string
	Script      string
	Description string
	Social      SocialPosts
	Audio       []byte
	CoverImage  []byte
}

// Manifest lists the generated artifacts in archive order.
func (r *Run) Manifest() []archive.Entry {
	return []archive.Entry{
		{Name: "podcast-script.txt", Text: r.Script},
		{Name: "podcast-description.txt", Text: r.Description},
		{Name: "podcast-socialmediaposts-linkedin.txt", Text: r.Social.LinkedIn},
		{Name: "podcast-socialmediaposts-facebook.txt", Text: r.Social.Facebook},
		{Name: "podcast-socialmediaposts-twitter.txt", Text: r.Social.Twitter},
		{Name: "podcast-audio.mp3", Bytes: r.Audio},
		{Name: "podcast-image.png", Bytes: r.CoverImage},
	}
}
