// Command podcastr is the interactive CLI that turns a web article into a
// podcast episode: script, description, social media posts, narrated
// audio, and a cover image, packaged into a zip archive with a cost
// report at the end.
package main
