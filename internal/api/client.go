package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Client is a thin HTTP client for the platform's REST API. It handles
// Bearer token authentication, the `{ "data": { ... } }` response
// envelope, and pre-submission payload validation so invalid input
// never reaches the wire.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate

	mu    sync.RWMutex
	token string
}

// Error is a failed REST operation, carrying the backend's
// human-readable message when one was returned.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// envelope is the wire shape of every backend response: a data
// payload, plus a token on auth endpoints and a message on errors.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token,omitempty"`
	Message string          `json:"message,omitempty"`
}

// NewClient creates a client for the API rooted at baseURL
// (e.g., http://localhost:5000/api/v1).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		validate:   validator.New(),
	}
}

// SetToken installs the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken drops the bearer token.
func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// get performs a GET request and unmarshals the envelope's data
// payload into result.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	_, err := c.do(ctx, http.MethodGet, path, nil, result)
	return err
}

// post performs a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body, result interface{}) error {
	_, err := c.do(ctx, http.MethodPost, path, body, result)
	return err
}

// patch performs a PATCH request with a JSON body.
func (c *Client) patch(ctx context.Context, path string, body, result interface{}) error {
	_, err := c.do(ctx, http.MethodPatch, path, body, result)
	return err
}

// delete performs a DELETE request.
func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// do is the core HTTP method: it builds the request, attaches auth,
// surfaces backend error messages, and unwraps the response envelope.
// The raw envelope is returned for callers that need the token field.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) (*envelope, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return nil, fmt.Errorf("reading response body: %w", readErr)
	}

	var env envelope
	if len(respBody) > 0 {
		// Tolerate empty or non-JSON bodies on errors; the envelope
		// stays zero and the status text is used instead.
		_ = json.Unmarshal(respBody, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return nil, fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
		}
	}

	return &env, nil
}

// validateInput runs struct validation on an outbound payload before
// any request is made.
func (c *Client) validateInput(in interface{}) error {
	if err := c.validate.Struct(in); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	return nil
}
