package session

// ViewMode selects which of the two panes is visible. It is purely
// presentational: switching modes touches neither form state nor drafts.
type ViewMode int

const (
	ModeEditing ViewMode = iota
	ModePreviewing
)

func (m ViewMode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	case ModePreviewing:
		return "previewing"
	}
	return "unknown"
}

// ShowEditor makes the editor pane visible from any mode.
func (c *Controller) ShowEditor() {
	c.mode = ModeEditing
	c.surface.ShowEditorPane()
}

// ShowPreview makes the preview pane visible from any mode.
func (c *Controller) ShowPreview() {
	c.mode = ModePreviewing
	c.surface.ShowPreviewPane()
}

func (c *Controller) Mode() ViewMode {
	return c.mode
}
