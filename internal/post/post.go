// Package post holds the post model shared between the editor session and
// the submission payload.
package post

import (
	"fmt"
)

type Visibility int

const (
	VisibilityPrivate  Visibility = 0
	VisibilityUnlisted Visibility = 1
	VisibilityPublic   Visibility = 2
)

func (v Visibility) Label() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityUnlisted:
		return "unlisted"
	case VisibilityPublic:
		return "public"
	}
	return "unknown"
}

func (v Visibility) Valid() bool {
	return v >= VisibilityPrivate && v <= VisibilityPublic
}

type Post struct {
	ID         int        `json:"id"`
	URLKey     string     `json:"url_key"`
	Title      string     `json:"title"`
	Text       string     `json:"text"`
	Visibility Visibility `json:"visibility"`
}

// URL returns the public path of the post, segmented by visibility.
func (p *Post) URL() (string, error) {
	switch p.Visibility {
	case VisibilityPublic:
		return fmt.Sprintf("/posts/public/%s", p.URLKey), nil
	case VisibilityUnlisted:
		return fmt.Sprintf("/posts/unlisted/%s", p.URLKey), nil
	case VisibilityPrivate:
		return fmt.Sprintf("/posts/private/%s", p.URLKey), nil
	}
	return "", fmt.Errorf("unknown visibility: %d", p.Visibility)
}

// EditURL returns the path of the editor page for an existing post.
func (p *Post) EditURL() string {
	return fmt.Sprintf("/edit/post/%d", p.ID)
}
