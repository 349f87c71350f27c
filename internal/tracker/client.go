// Package tracker is a thin JSON client for the Pivotal Tracker web API.
// One client call maps to one HTTP request; failures surface as *APIError
// carrying the service's error strings.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// DefaultBaseURL is the hosted Tracker API endpoint.
const DefaultBaseURL = "https://www.pivotaltracker.com/services/v5"

// DefaultTimeout bounds a single request when the config doesn't override it.
const DefaultTimeout = 30 * time.Second

// API is the set of remote operations the CLI performs. Commands depend on
// this interface so tests can substitute a fake.
type API interface {
	GetProject(ctx context.Context, projectID int) (*Project, error)
	GetStory(ctx context.Context, projectID, storyID int) (*Story, error)
	AllStories(ctx context.Context, projectID int) ([]Story, error)
	Search(ctx context.Context, projectID int, filter string) ([]Story, error)
	CreateStory(ctx context.Context, projectID int, req StoryRequest) (*Story, error)
	UpdateStory(ctx context.Context, projectID, storyID int, req StoryRequest) (*Story, error)
	DeleteStory(ctx context.Context, projectID, storyID int) (string, error)
	AddNote(ctx context.Context, projectID, storyID int, text string) (*Note, error)
}

// Client talks to the Tracker API over HTTP.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.SugaredLogger
}

// NewClient creates a client for the given endpoint and API token. A zero
// timeout falls back to DefaultTimeout; a nil logger disables logging.
func NewClient(baseURL, token string, timeout time.Duration, log *zap.SugaredLogger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// GetProject fetches project metadata.
func (c *Client) GetProject(ctx context.Context, projectID int) (*Project, error) {
	var p Project
	path := fmt.Sprintf("/projects/%d", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetStory fetches a single story.
func (c *Client) GetStory(ctx context.Context, projectID, storyID int) (*Story, error) {
	var s Story
	path := fmt.Sprintf("/projects/%d/stories/%d", projectID, storyID)
	if err := c.do(ctx, http.MethodGet, path, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// AllStories fetches every story in the project.
func (c *Client) AllStories(ctx context.Context, projectID int) ([]Story, error) {
	var stories []Story
	path := fmt.Sprintf("/projects/%d/stories", projectID)
	if err := c.do(ctx, http.MethodGet, path, nil, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// Search fetches the stories matching the service-side filter expression.
func (c *Client) Search(ctx context.Context, projectID int, filter string) ([]Story, error) {
	var stories []Story
	path := fmt.Sprintf("/projects/%d/stories?filter=%s", projectID, url.QueryEscape(filter))
	if err := c.do(ctx, http.MethodGet, path, nil, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// CreateStory creates a story from the supplied fields.
func (c *Client) CreateStory(ctx context.Context, projectID int, req StoryRequest) (*Story, error) {
	var s Story
	path := fmt.Sprintf("/projects/%d/stories", projectID)
	if err := c.do(ctx, http.MethodPost, path, req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateStory applies the supplied fields to an existing story. Absent fields
// are not sent.
func (c *Client) UpdateStory(ctx context.Context, projectID, storyID int, req StoryRequest) (*Story, error) {
	var s Story
	path := fmt.Sprintf("/projects/%d/stories/%d", projectID, storyID)
	if err := c.do(ctx, http.MethodPut, path, req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteStory deletes a story and returns the service's message text.
func (c *Client) DeleteStory(ctx context.Context, projectID, storyID int) (string, error) {
	path := fmt.Sprintf("/projects/%d/stories/%d", projectID, storyID)
	body, err := c.doRaw(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return "", err
	}
	if msg := gjson.GetBytes(body, "message"); msg.Exists() {
		return msg.String(), nil
	}
	return "Story deleted.", nil
}

// AddNote attaches a note to a story, returning the created note.
func (c *Client) AddNote(ctx context.Context, projectID, storyID int, text string) (*Note, error) {
	var n Note
	path := fmt.Sprintf("/projects/%d/stories/%d/notes", projectID, storyID)
	payload := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, path, payload, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// do performs a request and decodes a JSON response into out (skipped when
// out is nil).
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	body, err := c.doRaw(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-TrackerToken", c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debugw("tracker request", "method", method, "url", req.URL.String())
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	c.log.Debugw("tracker response", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromBody(resp.StatusCode, body)
	}
	return body, nil
}

// errorFromBody extracts the service's error strings from a failure body.
// The shape varies across endpoints, so it is probed rather than unmarshalled
// into a fixed struct.
func errorFromBody(status int, body []byte) *APIError {
	var errs []string
	if v := gjson.GetBytes(body, "errors"); v.IsArray() {
		for _, e := range v.Array() {
			errs = append(errs, e.String())
		}
	}
	for _, key := range []string{"error", "general_problem", "possible_fix"} {
		if v := gjson.GetBytes(body, key); v.Exists() && v.String() != "" {
			errs = append(errs, v.String())
		}
	}
	if len(errs) == 0 {
		errs = []string{fmt.Sprintf("%d %s", status, http.StatusText(status))}
	}
	return &APIError{Errors: errs}
}
