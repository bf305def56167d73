package pipeline

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"podcastr/internal/archive"
	"podcastr/internal/services"
	"podcastr/internal/usage"
)

type stubSource struct {
	text string
	urls []string
}

func (s *stubSource) Fetch(_ context.Context, url string) string {
	s.urls = append(s.urls, url)
	return s.text
}

type stubGenerators struct {
	mu sync.Mutex

	scriptFn       func(call int) (string, error)
	description    string
	descriptionErr error
	social         SocialPosts
	socialErr      error
	audio          []byte
	image          []byte

	scriptCalls      int
	descriptionCalls int
	socialCalls      int
	audioCalls       int
	imageCalls       int
}

func (g *stubGenerators) GenerateScript(_ context.Context, _, _, _ string) (string, error) {
	g.mu.Lock()
	g.scriptCalls++
	call := g.scriptCalls
	g.mu.Unlock()
	if g.scriptFn != nil {
		return g.scriptFn(call)
	}
	return "generated script", nil
}

func (g *stubGenerators) GenerateDescription(_ context.Context, _, _ string) (string, error) {
	g.mu.Lock()
	g.descriptionCalls++
	g.mu.Unlock()
	return g.description, g.descriptionErr
}

func (g *stubGenerators) GenerateSocialPosts(_ context.Context, _, _ string) (SocialPosts, error) {
	g.mu.Lock()
	g.socialCalls++
	g.mu.Unlock()
	return g.social, g.socialErr
}

func (g *stubGenerators) GenerateAudio(_ context.Context, _, _ string) []byte {
	g.mu.Lock()
	g.audioCalls++
	g.mu.Unlock()
	return g.audio
}

func (g *stubGenerators) GenerateCoverImage(_ context.Context, _ string) []byte {
	g.mu.Lock()
	g.imageCalls++
	g.mu.Unlock()
	return g.image
}

func newHappyGenerators() *stubGenerators {
	return &stubGenerators{
		description: "an engaging episode",
		social: SocialPosts{
			LinkedIn: "professional post",
			Twitter:  "snappy post",
			Facebook: "story post",
		},
		audio: []byte("mp3 bytes"),
		image: []byte("png bytes"),
	}
}

type stubArchiver struct {
	buildErr error
	writeErr error
	path     string
	builds   [][]archive.Entry
}

func (a *stubArchiver) Build(entries []archive.Entry) ([]byte, error) {
	a.builds = append(a.builds, entries)
	if a.buildErr != nil {
		return nil, a.buildErr
	}
	return []byte("zip blob"), nil
}

func (a *stubArchiver) Write([]byte) (string, error) {
	if a.writeErr != nil {
		return "", a.writeErr
	}
	return a.path, nil
}

type scriptedPrompter struct {
	requests      []Request
	restarts      []bool
	repeats       []bool
	restartLabels []string
	notices       []string
}

func (p *scriptedPrompter) RequestEpisode() (Request, error) {
	if len(p.requests) == 0 {
		return Request{}, io.EOF
	}
	request := p.requests[0]
	p.requests = p.requests[1:]
	return request, nil
}

func (p *scriptedPrompter) ConfirmRestart(stageLabel string) bool {
	p.restartLabels = append(p.restartLabels, stageLabel)
	if len(p.restarts) == 0 {
		return false
	}
	answer := p.restarts[0]
	p.restarts = p.restarts[1:]
	return answer
}

func (p *scriptedPrompter) ConfirmRepeat() bool {
	if len(p.repeats) == 0 {
		return false
	}
	answer := p.repeats[0]
	p.repeats = p.repeats[1:]
	return answer
}

func (p *scriptedPrompter) Notify(message string) {
	p.notices = append(p.notices, message)
}

type stubReporter struct {
	snapshots []usage.Snapshot
}

func (r *stubReporter) Render(snapshot usage.Snapshot) {
	r.snapshots = append(r.snapshots, snapshot)
}

func testRequest() Request {
	return Request{
		ContentURL:  "https://example.com/article",
		PodcastName: "Tech Weekly",
		Language:    "English",
		Voice:       "nova",
	}
}

func newTestOrchestrator(t *testing.T, source *stubSource, generators *stubGenerators, archiver *stubArchiver, prompter *scriptedPrompter, reporter *stubReporter, tracker *usage.Tracker) *Orchestrator {
	t.Helper()
	orchestrator, err := New(Options{
		Source:     source,
		Generators: generators,
		Archiver:   archiver,
		Prompter:   prompter,
		Reporter:   reporter,
		Tracker:    tracker,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return orchestrator
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("New() with no collaborators should fail")
	}
}

func TestRunSuccessBuildsManifestAndReports(t *testing.T) {
	source := &stubSource{text: "article body"}
	generators := newHappyGenerators()
	archiver := &stubArchiver{path: "/tmp/output/run.zip"}
	prompter := &scriptedPrompter{requests: []Request{testRequest()}}
	reporter := &stubReporter{}

	orchestrator := newTestOrchestrator(t, source, generators, archiver, prompter, reporter, usage.NewTracker())
	if err := orchestrator.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(source.urls) != 1 || source.urls[0] != "https://example.com/article" {
		t.Errorf("fetched urls = %v", source.urls)
	}
	if len(archiver.builds) != 1 {
		t.Fatalf("archive built %d times, want 1", len(archiver.builds))
	}

	wantNames := []string{
		"podcast-script.txt",
		"podcast-description.txt",
		"podcast-socialmediaposts-linkedin.txt",
		"podcast-socialmediaposts-facebook.txt",
		"podcast-socialmediaposts-twitter.txt",
		"podcast-audio.mp3",
		"podcast-image.png",
	}
	entries := archiver.builds[0]
	if len(entries) != len(wantNames) {
		t.Fatalf("manifest has %d entries, want %d", len(entries), len(wantNames))
	}
	for i, name := range wantNames {
		if entries[i].Name != name {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Name, name)
		}
	}

	if len(prompter.notices) != 1 || prompter.notices[0] != "Archive saved to /tmp/output/run.zip" {
		t.Errorf("notices = %v", prompter.notices)
	}
	if len(reporter.snapshots) != 1 {
		t.Errorf("reported %d snapshots, want 1", len(reporter.snapshots))
	}
	if len(prompter.restartLabels) != 0 {
		t.Errorf("success should not prompt for restart, got %v", prompter.restartLabels)
	}
}

func TestRunFetchFailureNeverReachesScript(t *testing.T) {
	source := &stubSource{text: ""}
	generators := newHappyGenerators()
	prompter := &scriptedPrompter{requests: []Request{testRequest()}}
	reporter := &stubReporter{}

	orchestrator := newTestOrchestrator(t, source, generators, &stubArchiver{}, prompter, reporter, usage.NewTracker())
	if err := orchestrator.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if generators.scriptCalls != 0 {
		t.Errorf("script generated %d times after fetch failure", generators.scriptCalls)
	}
	if len(prompter.restartLabels) != 1 || prompter.restartLabels[0] != "Loading content" {
		t.Errorf("restart prompts = %v", prompter.restartLabels)
	}
	if len(reporter.snapshots) != 0 {
		t.Error("failed run should not report usage")
	}
}

func TestRunRestartRetriesWholeRun(t *testing.T) {
	source := &stubSource{text: "article body"}
	generators := newHappyGenerators()
	generators.scriptFn = func(call int) (string, error) {
		if call == 1 {
			return "", services.Wrap(services.ErrGeneration, "script", "chat completion", "", errors.New("overloaded"))
		}
		return "generated script", nil
	}
	archiver := &stubArchiver{path: "/tmp/output/run.zip"}
	prompter := &scriptedPrompter{
		requests: []Request{testRequest(), testRequest()},
		restarts: []bool{true},
	}
	reporter := &stubReporter{}

	orchestrator := newTestOrchestrator(t, source, generators, archiver, prompter, reporter, usage.NewTracker())
	if err := orchestrator.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if generators.scriptCalls != 2 {
		t.Errorf("script calls = %d, want 2", generators.scriptCalls)
	}
	if len(source.urls) != 2 {
		t.Errorf("restart should refetch, fetched %d times", len(source.urls))
	}
	if len(archiver.builds) != 1 {
		t.Errorf("archive built %d times, want 1", len(archiver.builds))
	}
	if len(reporter.snapshots) != 1 {
		t.Errorf("reported %d snapshots, want 1", len(reporter.snapshots))
	}
}

func TestRunAudioFailureStillComputesImage(t *testing.T) {
	generators := newHappyGenerators()
	generators.audio = nil
	source := &stubSource{text: "article body"}
	archiver := &stubArchiver{}
	prompter := &scriptedPrompter{requests: []Request{testRequest()}}

	orchestrator := newTestOrchestrator(t, source, generators, archiver, prompter, &stubReporter{}, usage.NewTracker())
	if err := orchestrator.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if generators.imageCalls != 1 {
		t.Errorf("image branch should run despite audio failure, calls = %d", generators.imageCalls)
	}
	if len(prompter.restartLabels) != 1 || prompter.restartLabels[0] != "Podcast audio generation" {
		t.Errorf("restart prompts = %v", prompter.restartLabels)
	}
	if len(archiver.builds) != 0 {
		t.Error("failed run should not build an archive")
	}
}

func TestRunValidationOrderShortCircuits(t *testing.T) {
	generators := newHappyGenerators()
	generators.description = ""
	generators.audio = nil
	source := &stubSource{text: "article body"}
	prompter := &scriptedPrompter{requests: []Request{testRequest()}}

	orchestrator := newTestOrchestrator(t, source, generators, &stubArchiver{}, prompter, &stubReporter{}, usage.NewTracker())
	if err := orchestrator.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(prompter.restartLabels) != 1 || prompter.restartLabels[0] != "Podcast description generation" {
		t.Errorf("first failing stage should prompt alone, got %v", prompter.restartLabels)
	}
}

func TestRunArchiveBuildFailurePromptsRestart(t *testing.T) {
	archiver := &stubArchiver{buildErr: errors.New("disk full")}
	prompter := &scriptedPrompter{requests: []Request{testRequest()}}
	reporter := &stubReporter{}

	orchestrator := newTestOrchestrator(t, &stubSource{text: "article body"}, newHappyGenerators(), archiver, prompter, reporter, usage.NewTracker())
	if err := orchestrator.Run(context.Background()); err != nil {
		t.Fatalf("archive failure should be contained, got %v", err)
	}

	if len(prompter.restartLabels) != 1 || prompter.restartLabels[0] != "Creating archive" {
		t.Errorf("restart prompts = %v", prompter.restartLabels)
	}
	if len(prompter.notices) != 0 {
		t.Errorf("failed archive should not announce a path, got %v", prompter.notices)
	}
	if len(reporter.snapshots) != 0 {
		t.Error("failed run should not report usage")
	}
}

func TestRunArchiveWriteFailurePromptsRestart(t *testing.T) {
	archiver := &stubArchiver{writeErr: errors.New("read-only file system")}
	prompter := &scriptedPrompter{requests: []Request{testRequest()}}
	reporter := &stubReporter{}

	orchestrator := newTestOrchestrator(t, &stubSource{text: "article body"}, newHappyGenerators(), archiver, prompter, reporter, usage.NewTracker())
	if err := orchestrator.Run(context.Background()); err != nil {
		t.Fatalf("archive write failure should be contained, got %v", err)
	}

	if len(archiver.builds) != 1 {
		t.Fatalf("archive built %d times, want 1", len(archiver.builds))
	}
	if len(prompter.restartLabels) != 1 || prompter.restartLabels[0] != "Creating archive" {
		t.Errorf("restart prompts = %v", prompter.restartLabels)
	}
	if len(prompter.notices) != 0 {
		t.Errorf("failed write should not announce a path, got %v", prompter.notices)
	}
	if len(reporter.snapshots) != 0 {
		t.Error("failed run should not report usage")
	}
}

func TestRunNonGenerationErrorAborts(t *testing.T) {
	cause := errors.New("tracker wiring broken")
	generators := newHappyGenerators()
	generators.descriptionErr = cause
	source := &stubSource{text: "article body"}
	reporter := &stubReporter{}

	orchestrator := newTestOrchestrator(t, source, generators, &stubArchiver{}, &scriptedPrompter{requests: []Request{testRequest()}}, reporter, usage.NewTracker())
	err := orchestrator.Run(context.Background())
	if !errors.Is(err, cause) {
		t.Fatalf("Run() error = %v, want %v", err, cause)
	}
	if len(reporter.snapshots) != 0 {
		t.Error("aborted run should not report usage")
	}
}

func TestRunResetsTrackerPerRun(t *testing.T) {
	tracker := usage.NewTracker()
	tracker.AddChatInputTokens(500)

	source := &stubSource{text: "article body"}
	reporter := &stubReporter{}
	prompter := &scriptedPrompter{requests: []Request{testRequest()}}

	orchestrator := newTestOrchestrator(t, source, newHappyGenerators(), &stubArchiver{path: "/tmp/run.zip"}, prompter, reporter, tracker)
	if err := orchestrator.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(reporter.snapshots) != 1 {
		t.Fatalf("reported %d snapshots, want 1", len(reporter.snapshots))
	}
	if got := reporter.snapshots[0].ChatInputTokens; got != 0 {
		t.Errorf("stale counters survived reset, input tokens = %d", got)
	}
}

func TestRunRepeatLoopsUntilDeclined(t *testing.T) {
	source := &stubSource{text: "article body"}
	archiver := &stubArchiver{path: "/tmp/run.zip"}
	prompter := &scriptedPrompter{
		requests: []Request{testRequest(), testRequest()},
		repeats:  []bool{true, false},
	}
	reporter := &stubReporter{}

	orchestrator := newTestOrchestrator(t, source, newHappyGenerators(), archiver, prompter, reporter, usage.NewTracker())
	if err := orchestrator.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(archiver.builds) != 2 {
		t.Errorf("archive built %d times, want 2", len(archiver.builds))
	}
	if len(reporter.snapshots) != 2 {
		t.Errorf("reported %d snapshots, want 2", len(reporter.snapshots))
	}
}
