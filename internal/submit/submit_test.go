package submit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.Disabled)
}

func TestParseFields(t *testing.T) {
	tests := []struct {
		name     string
		form     FormState
		expected Payload
	}{
		{
			name: "all fields numeric",
			form: FormState{Title: "T", Text: "X", Visibility: "2", ID: "7", URLKey: "abc"},
			expected: Payload{
				Visibility: 2, Text: "X", Title: "T", ID: 7, URLKey: "abc",
			},
		},
		{
			name:     "non-numeric id parses to zero",
			form:     FormState{Visibility: "1", ID: "garbage"},
			expected: Payload{Visibility: 1, ID: 0},
		},
		{
			name:     "empty numeric fields parse to zero",
			form:     FormState{Title: "t"},
			expected: Payload{Title: "t"},
		},
		{
			name:     "non-numeric visibility parses to zero",
			form:     FormState{Visibility: "private", ID: "3"},
			expected: Payload{Visibility: 0, ID: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseFields(tt.form); got != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestSubmitSuccess(t *testing.T) {
	var received Payload
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &received)
		w.Write([]byte(`{"location":"/posts/42"}`))
	}))
	defer server.Close()

	p := NewPipeline(server.URL, testLogger())
	out, err := p.Submit(context.Background(), FormState{
		Title: "", Text: "Hello", Visibility: "1", ID: "0", URLKey: "",
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if !out.OK {
		t.Error("Expected a successful outcome")
	}
	if out.Location != "/posts/42" {
		t.Errorf("Expected location /posts/42, got %q", out.Location)
	}
	if contentType != "application/json" {
		t.Errorf("Expected JSON content type, got %q", contentType)
	}
	expected := Payload{Visibility: 1, Text: "Hello", Title: "", ID: 0, URLKey: ""}
	if received != expected {
		t.Errorf("Expected payload %+v, got %+v", expected, received)
	}
}

func TestSubmitRedirectIsFailure(t *testing.T) {
	followed := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/elsewhere" {
			followed = true
			w.Write([]byte(`{"location":"/should/not/see"}`))
			return
		}
		http.Redirect(w, r, "/elsewhere", http.StatusFound)
	}))
	defer server.Close()

	p := NewPipeline(server.URL, testLogger())
	out, err := p.Submit(context.Background(), FormState{Text: "x"})
	if err != nil {
		t.Fatalf("Expected a failed outcome, not an error: %v", err)
	}

	if out.OK {
		t.Error("Expected redirect to count as failure")
	}
	if out.Status != http.StatusFound {
		t.Errorf("Expected status 302, got %d", out.Status)
	}
	if followed {
		t.Error("Expected the redirect not to be followed")
	}
}

func TestSubmitNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p := NewPipeline(server.URL, testLogger())
	out, err := p.Submit(context.Background(), FormState{})
	if err != nil {
		t.Fatalf("Expected a failed outcome, not an error: %v", err)
	}
	if out.OK {
		t.Error("Expected a 500 to count as failure")
	}
	if out.Status != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", out.Status)
	}
}

func TestSubmitMalformedSuccessBody(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>surprise</html>"))
		}))
		defer server.Close()

		p := NewPipeline(server.URL, testLogger())
		out, err := p.Submit(context.Background(), FormState{})
		if err == nil {
			t.Fatal("Expected an error for an unparseable success body")
		}
		if out.OK {
			t.Error("Expected no successful outcome on a garbled body")
		}
	})

	t.Run("missing location", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		p := NewPipeline(server.URL, testLogger())
		if _, err := p.Submit(context.Background(), FormState{}); err == nil {
			t.Fatal("Expected an error when the body carries no location")
		}
	})
}

func TestSubmitUnreachableEndpoint(t *testing.T) {
	p := NewPipeline("http://127.0.0.1:1/nope", testLogger())
	if _, err := p.Submit(context.Background(), FormState{}); err == nil {
		t.Fatal("Expected an error for an unreachable endpoint")
	}
}
