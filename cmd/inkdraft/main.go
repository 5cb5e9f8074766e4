// Command inkdraft runs an editing session against a terminal surface: typed
// lines become input events, colon-commands switch panes and submit, and the
// preview is rendered by the in-process markdown converter.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"

	"github.com/inkdraft/inkdraft/internal/config"
	"github.com/inkdraft/inkdraft/internal/draft"
	"github.com/inkdraft/inkdraft/internal/logger"
	"github.com/inkdraft/inkdraft/internal/post"
	"github.com/inkdraft/inkdraft/internal/renderer"
	"github.com/inkdraft/inkdraft/internal/session"
	"github.com/inkdraft/inkdraft/internal/submit"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	postID := flag.Int("id", 0, "identity of the post to edit (0 for a new post)")
	visibility := flag.Int("visibility", int(post.VisibilityPrivate), "post visibility (0 private, 1 unlisted, 2 public)")
	urlKey := flag.String("url-key", "", "url key of an existing post")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file loaded")
	}

	if err := config.LoadConfig(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.AppConfig

	log := logger.New(cfg.Logging.Level)
	config.SetLogger(logger.For(log, "config"))
	draft.SetLogger(logger.For(log, "drafts"))
	renderer.SetLogger(logger.For(log, "renderer"))

	if !post.Visibility(*visibility).Valid() {
		log.Warn().Int("visibility", *visibility).Msg("Unknown visibility, submitting as-is")
	}

	var store draft.Store
	switch {
	case cfg.Editor.Demo:
		store = draft.Discard{}
	case cfg.Drafts.Path != "":
		s, err := draft.NewSQLiteStore(cfg.Drafts.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open draft store")
		}
		defer s.Close()
		store = s
	default:
		store = draft.NewMemoryStore()
	}

	// The converter initializes off the main flow, like the page it models;
	// the session polls for it during Start and blocks until it appears.
	var converter atomic.Pointer[renderer.Markdown]
	go func() {
		converter.Store(renderer.NewMarkdown(cfg.Editor.Renderer, cfg.Editor.SyntaxTheme))
	}()
	awaiter := renderer.Poll(func() (renderer.Gateway, bool) {
		if g := converter.Load(); g != nil {
			return g, true
		}
		return nil, false
	}, time.Duration(cfg.Editor.PollIntervalMs)*time.Millisecond)

	surface := newTermSurface(os.Stdout, *postID, *visibility, *urlKey)
	if cfg.Editor.Demo {
		surface.SetText(session.DemoSeed)
	}

	ctrl := session.New(session.Config{
		Surface:   surface,
		Drafts:    store,
		Renderer:  awaiter,
		Submitter: submit.NewPipeline(cfg.Submit.Endpoint, logger.For(log, "submit")),
		Confirm:   confirmOnTerminal,
		PostID:    *postID,
	}, log)

	ctx := context.Background()
	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := ctrl.Start(startCtx); err != nil {
		log.Fatal().Err(err).Msg("Session startup failed")
	}

	fmt.Println("Type markdown lines. Commands: :title <t>, :preview, :edit, :submit, :quit")

	scanner := bufio.NewScanner(os.Stdin)
	for ctrl.State() != session.StateTerminal && scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == ":quit":
			return
		case line == ":preview":
			ctrl.ShowPreview()
		case line == ":edit":
			ctrl.ShowEditor()
		case line == ":submit":
			if err := ctrl.Submit(ctx); err != nil {
				fmt.Println("Submission failed, draft kept. Edit and :submit to retry.")
			}
		case strings.HasPrefix(line, ":title "):
			surface.SetTitle(strings.TrimPrefix(line, ":title "))
			ctrl.InputChanged()
		default:
			surface.AppendLine(line)
			ctrl.InputChanged()
		}
	}
}

func confirmOnTerminal(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	r := bufio.NewReader(os.Stdin)
	answer, err := r.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}

// termSurface renders the page contract onto a terminal: the preview pane is
// printed when visible, navigation prints the destination and ends the
// session loop.
type termSurface struct {
	out *os.File

	title      string
	text       strings.Builder
	preview    string
	previewing bool

	id         int
	visibility int
	urlKey     string
}

func newTermSurface(out *os.File, id, visibility int, urlKey string) *termSurface {
	return &termSurface{out: out, id: id, visibility: visibility, urlKey: urlKey}
}

func (s *termSurface) Title() string         { return s.title }
func (s *termSurface) SetTitle(title string) { s.title = title }

func (s *termSurface) Text() string { return s.text.String() }

func (s *termSurface) SetText(text string) {
	s.text.Reset()
	s.text.WriteString(text)
}

func (s *termSurface) AppendLine(line string) {
	s.text.WriteString(line)
	s.text.WriteString("\n")
}

func (s *termSurface) SetPreview(html string) {
	s.preview = html
	if s.previewing {
		fmt.Fprintln(s.out, s.preview)
	}
}

func (s *termSurface) ShowEditorPane() {
	s.previewing = false
	fmt.Fprintln(s.out, s.text.String())
}

func (s *termSurface) ShowPreviewPane() {
	s.previewing = true
	fmt.Fprintln(s.out, s.preview)
}

func (s *termSurface) FormState() submit.FormState {
	return submit.FormState{
		Title:      s.title,
		Text:       s.text.String(),
		Visibility: strconv.Itoa(s.visibility),
		ID:         strconv.Itoa(s.id),
		URLKey:     s.urlKey,
	}
}

func (s *termSurface) Navigate(location string) {
	fmt.Fprintf(s.out, "Published: %s\n", location)
}
