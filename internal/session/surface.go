package session

import "github.com/inkdraft/inkdraft/internal/submit"

// Surface is the page the session controls: the input and title fields, the
// preview pane, the two tab panes, and navigation. The surrounding markup is
// a fixed contract; the controller only ever talks to it through this
// interface, which keeps the state machine testable without a real page.
type Surface interface {
	Title() string
	SetTitle(title string)

	Text() string
	SetText(text string)

	// SetPreview replaces the preview pane content with rendered markup.
	SetPreview(html string)

	ShowEditorPane()
	ShowPreviewPane()

	// FormState snapshots the raw submit fields, numeric fields included,
	// as strings.
	FormState() submit.FormState

	// Navigate replaces the current page with location. Not reversible.
	Navigate(location string)
}

// ConfirmFunc answers a yes/no question for the user. The draft-restore
// decision during startup goes through this instead of a blocking prompt.
type ConfirmFunc func(prompt string) bool
