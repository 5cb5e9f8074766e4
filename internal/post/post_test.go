package post

import "testing"

func TestVisibilityLabel(t *testing.T) {
	tests := []struct {
		v        Visibility
		expected string
	}{
		{VisibilityPrivate, "private"},
		{VisibilityUnlisted, "unlisted"},
		{VisibilityPublic, "public"},
		{Visibility(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.v.Label(); got != tt.expected {
			t.Errorf("Expected label %q for %d, got %q", tt.expected, tt.v, got)
		}
	}
}

func TestVisibilityValid(t *testing.T) {
	if !VisibilityUnlisted.Valid() {
		t.Error("Expected unlisted to be valid")
	}
	if Visibility(-1).Valid() || Visibility(3).Valid() {
		t.Error("Expected out-of-range visibility to be invalid")
	}
}

func TestPostURL(t *testing.T) {
	t.Run("by visibility", func(t *testing.T) {
		tests := []struct {
			v        Visibility
			expected string
		}{
			{VisibilityPublic, "/posts/public/abc"},
			{VisibilityUnlisted, "/posts/unlisted/abc"},
			{VisibilityPrivate, "/posts/private/abc"},
		}

		for _, tt := range tests {
			p := &Post{URLKey: "abc", Visibility: tt.v}
			got, err := p.URL()
			if err != nil {
				t.Fatalf("URL failed for %s: %v", tt.v.Label(), err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		}
	})

	t.Run("unknown visibility is an error", func(t *testing.T) {
		p := &Post{URLKey: "abc", Visibility: Visibility(9)}
		if _, err := p.URL(); err == nil {
			t.Error("Expected an error for unknown visibility")
		}
	})
}

func TestEditURL(t *testing.T) {
	p := &Post{ID: 42}
	if got := p.EditURL(); got != "/edit/post/42" {
		t.Errorf("Expected /edit/post/42, got %q", got)
	}
}
