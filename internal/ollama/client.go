package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultHost is where a stock Ollama install listens.
const DefaultHost = "http://localhost:11434"

// maxErrorBody bounds how much of a failed response body is kept in errors.
const maxErrorBody = 512

// Options are the sampling options sent with a generate request.
type Options struct {
	Temperature float64 `json:"temperature"`
	TopK        int     `json:"top_k"`
}

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	Stream  bool    `json:"stream"`
	Options Options `json:"options"`
}

type generateResponse struct {
	Model    string  `json:"model"`
	Response *string `json:"response"`
	Done     bool    `json:"done"`
}

// Model describes one installed model from GET /api/tags.
type Model struct {
	Name       string `json:"name"`
	Model      string `json:"model,omitempty"`
	Size       int64  `json:"size,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
}

type tagsResponse struct {
	Models []Model `json:"models"`
}

// Client talks to a single Ollama host.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for host. An empty host means DefaultHost.
func New(host string) *Client {
	return &Client{
		baseURL: NormalizeHost(host),
		// No Timeout: generation on CPU can take minutes and the caller
		// owns cancellation through ctx.
		client: &http.Client{},
	}
}

// NormalizeHost strips trailing slashes and known API suffixes from host.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		host = DefaultHost
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	host = strings.TrimRight(host, "/")
	host = strings.TrimSuffix(host, "/api/generate")
	host = strings.TrimSuffix(host, "/api/tags")
	host = strings.TrimSuffix(host, "/api")
	return host
}

// BaseURL returns the normalized host the client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

// Generate sends one non-streaming generate request and returns the raw
// "response" text.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	req.Stream = false

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := c.baseURL + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	respBody, err := c.do(httpReq)
	if err != nil {
		return "", err
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &MalformedResponseError{Reason: "invalid JSON", Err: err}
	}
	if result.Response == nil || *result.Response == "" {
		return "", &MalformedResponseError{Reason: "no response field in output"}
	}
	return *result.Response, nil
}

// ListModels returns the models installed on the host.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	url := c.baseURL + "/api/tags"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	respBody, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var result tagsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &MalformedResponseError{Reason: "invalid JSON", Err: err}
	}
	return result.Models, nil
}

// do performs the round trip and maps transport and status failures to
// typed errors. The returned body belongs to a 2xx response.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		return nil, &ServiceUnavailableError{URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &ServiceError{Status: resp.StatusCode, Body: msg}
	}
	return body, nil
}
