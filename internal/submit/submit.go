// Package submit sends finished posts to the remote storage API.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strconv"

	"github.com/rs/zerolog"
)

// FormState is the raw string state of the editor form fields. Numeric
// fields stay strings here; parsing happens once, leniently, when the
// payload is built.
type FormState struct {
	Title      string
	Text       string
	Visibility string
	ID         string
	URLKey     string
}

// Payload is the JSON body of a post submission.
type Payload struct {
	Visibility int    `json:"visibility"`
	Text       string `json:"text"`
	Title      string `json:"title"`
	ID         int    `json:"id"`
	URLKey     string `json:"url_key"`
}

// ParseFields builds the request payload from raw form state. Numeric fields
// that fail to parse become 0; the form layer never raises on bad numbers.
func ParseFields(f FormState) Payload {
	return Payload{
		Visibility: atoiLenient(f.Visibility),
		Text:       f.Text,
		Title:      f.Title,
		ID:         atoiLenient(f.ID),
		URLKey:     f.URLKey,
	}
}

func atoiLenient(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Outcome is the result of one submission attempt. OK implies Location is
// the path the session should navigate to.
type Outcome struct {
	OK       bool
	Status   int
	Location string
}

type locationResponse struct {
	Location string `json:"location"`
}

// Pipeline posts the serialized form to the configured endpoint. Redirects
// are never followed; any redirect status counts as a failed submission so
// the caller keeps its draft and the user can retry.
type Pipeline struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

func NewPipeline(endpoint string, logger zerolog.Logger) *Pipeline {
	// The jar carries the session cookies the API authenticates with.
	jar, _ := cookiejar.New(nil)
	return &Pipeline{
		endpoint: endpoint,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}
}

// NewPipelineWithClient wires a caller-supplied client, used by tests and by
// hosts that manage their own cookie state.
func NewPipelineWithClient(endpoint string, client *http.Client, logger zerolog.Logger) *Pipeline {
	return &Pipeline{endpoint: endpoint, client: client, logger: logger}
}

// Submit sends the form state and interprets the response.
//
// A non-2xx status (redirects included) reports a failed Outcome with a nil
// error: the submission did not happen, nothing else changed, retry is up to
// the user. A 2xx response whose body does not carry a location is an error:
// the post may have been stored but the session cannot complete the action,
// and it must not navigate on guesswork.
func (p *Pipeline) Submit(ctx context.Context, f FormState) (Outcome, error) {
	payload := ParseFields(f)

	body, err := json.Marshal(payload)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to encode submission payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("submission request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		p.logger.Warn().Int("status", res.StatusCode).Msg("Submission rejected")
		return Outcome{OK: false, Status: res.StatusCode}, nil
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		p.logger.Error().Err(err).Msg("Failed to read submission response")
		return Outcome{Status: res.StatusCode}, fmt.Errorf("failed to read submission response: %w", err)
	}

	var loc locationResponse
	if err := json.Unmarshal(resBody, &loc); err != nil {
		p.logger.Error().Err(err).Msg("Submission response is not valid JSON")
		return Outcome{Status: res.StatusCode}, fmt.Errorf("failed to parse submission response: %w", err)
	}
	if loc.Location == "" {
		p.logger.Error().Msg("Submission response has no location")
		return Outcome{Status: res.StatusCode}, fmt.Errorf("submission response has no location")
	}

	return Outcome{OK: true, Status: res.StatusCode, Location: loc.Location}, nil
}
