// Package session implements the editor session state machine.
//
// One Controller owns one editing session: it seeds the form from a saved
// draft, keeps the preview pane in lockstep with the input, persists a draft
// on every change, and drives submission through to navigation. Events
// arrive one at a time; the machine suspends only while awaiting converter
// readiness during startup and while a submission is in flight.
package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkdraft/inkdraft/internal/draft"
	"github.com/inkdraft/inkdraft/internal/renderer"
	"github.com/inkdraft/inkdraft/internal/submit"
)

type State int

const (
	StateInit State = iota
	StateEditing
	StateSubmitting
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	case StateTerminal:
		return "terminal"
	}
	return "unknown"
}

const restorePrompt = "Load saved draft?"

// Submitter sends a finished post to the remote API.
type Submitter interface {
	Submit(ctx context.Context, f submit.FormState) (submit.Outcome, error)
}

// Config wires a Controller's collaborators.
type Config struct {
	Surface   Surface
	Drafts    draft.Store
	Renderer  renderer.Awaiter
	Submitter Submitter
	Confirm   ConfirmFunc

	// PostID is the identity of the post being edited; 0 means a new,
	// unsaved post.
	PostID int
}

type Controller struct {
	surface   Surface
	drafts    draft.Store
	awaiter   renderer.Awaiter
	gateway   renderer.Gateway
	submitter Submitter
	confirm   ConfirmFunc

	key   string
	state State
	mode  ViewMode

	logger zerolog.Logger
}

func New(cfg Config, l zerolog.Logger) *Controller {
	return &Controller{
		surface:   cfg.Surface,
		drafts:    cfg.Drafts,
		awaiter:   cfg.Renderer,
		submitter: cfg.Submitter,
		confirm:   cfg.Confirm,
		key:       draft.Key(cfg.PostID),
		state:     StateInit,
		mode:      ModeEditing,
		logger: l.With().
			Str("session", uuid.New().String()).
			Str("draft_key", draft.Key(cfg.PostID)).
			Logger(),
	}
}

func (c *Controller) State() State {
	return c.state
}

// Start runs the INIT sequence: wait for the converter, offer to restore a
// saved draft, then render the initial preview and enter EDITING.
//
// A found draft only overwrites the server-provided title and text when the
// confirm callback accepts; declining keeps the form as served.
func (c *Controller) Start(ctx context.Context) error {
	g, err := c.awaiter.Await(ctx)
	if err != nil {
		return err
	}
	c.gateway = g

	if d, ok := c.drafts.Load(c.key); ok {
		if c.confirm != nil && c.confirm(restorePrompt) {
			c.surface.SetTitle(d.Title)
			c.surface.SetText(d.Text)
			c.logger.Info().Msg("Draft restored")
		} else {
			c.logger.Info().Msg("Draft found but not restored")
		}
	}

	c.surface.SetPreview(c.gateway.Render(c.surface.Text()))
	c.state = StateEditing
	return nil
}

// InputChanged handles one input event. The preview is re-rendered from the
// current text before anything else happens; the draft save that follows is
// best effort and never delays or reorders the render.
func (c *Controller) InputChanged() {
	if c.state != StateEditing {
		c.logger.Debug().Str("state", c.state.String()).Msg("Input event outside EDITING ignored")
		return
	}

	c.surface.SetPreview(c.gateway.Render(c.surface.Text()))

	d := draft.Draft{Title: c.surface.Title(), Text: c.surface.Text()}
	if err := c.drafts.Save(c.key, d); err != nil {
		c.logger.Warn().Err(err).Msg("Draft save failed")
	}
}

// Submit drives one submission attempt. The host must have suppressed the
// form's default navigation before calling.
//
// On success the draft is cleared and the surface navigates to the returned
// location; the session is then terminal. Any failure leaves the draft
// intact and returns the session to EDITING so the user can retry.
func (c *Controller) Submit(ctx context.Context) error {
	if c.state != StateEditing {
		c.logger.Debug().Str("state", c.state.String()).Msg("Submit outside EDITING ignored")
		return nil
	}
	c.state = StateSubmitting

	out, err := c.submitter.Submit(ctx, c.surface.FormState())
	if err != nil {
		c.state = StateEditing
		c.logger.Error().Err(err).Msg("Submission failed")
		return err
	}
	if !out.OK {
		c.state = StateEditing
		c.logger.Warn().Int("status", out.Status).Msg("Submission not accepted, draft kept")
		return nil
	}

	if err := c.drafts.Clear(c.key); err != nil {
		// The post is stored; a leftover draft must not block navigation.
		c.logger.Warn().Err(err).Msg("Draft clear failed after successful submission")
	}

	c.logger.Info().Str("location", out.Location).Msg("Post submitted")
	c.surface.Navigate(out.Location)
	c.state = StateTerminal
	return nil
}
