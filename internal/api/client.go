// Package api provides the HTTP client for the interview-prep backend:
// question generation (one-shot and streaming), load-more, favorites, and
// document text extraction.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/interview-prep/internal/types"
)

// DefaultTimeout is the request timeout for one-shot calls. Streaming calls
// are bounded only by their context; a hung stream is the transport layer's
// problem to time out.
const DefaultTimeout = 120 * time.Second

// Client talks to one backend deployment.
type Client struct {
	baseURL    string
	httpClient *http.Client
	streaming  *http.Client
}

// Options configures the client.
type Options struct {
	Timeout time.Duration
}

// NewClient creates a client for the backend at baseURL (e.g.
// "http://localhost:8080/api").
func NewClient(baseURL string, opts *Options) *Client {
	timeout := DefaultTimeout
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		streaming:  &http.Client{}, // no client-side timeout on chunked reads
	}
}

// GenerateQuestions issues the one-shot generation call. On success the
// returned response replaces the caller's entire result set; on failure the
// caller's prior state is untouched.
func (c *Client) GenerateQuestions(ctx context.Context, jobDescription string) (*types.GenerateQuestionsResponse, error) {
	req := types.GenerateQuestionsRequest{JobDescription: jobDescription}
	if err := req.Validate(); err != nil {
		return nil, &Error{Endpoint: "generate-questions", Message: "invalid request", Cause: err}
	}

	var resp types.GenerateQuestionsResponse
	if err := c.postJSON(ctx, "/generate-questions", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Open starts the streaming generation call and returns the chunked response
// body. It satisfies stream.Transport. A connection failure or non-success
// status is returned as an error with no body.
func (c *Client) Open(ctx context.Context, jobDescription string) (io.ReadCloser, error) {
	payload, err := json.Marshal(types.GenerateQuestionsRequest{JobDescription: jobDescription})
	if err != nil {
		return nil, &Error{Endpoint: "generate-questions/stream", Message: "marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-questions/stream", bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Endpoint: "generate-questions/stream", Message: "create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.streaming.Do(req)
	if err != nil {
		return nil, &Error{Endpoint: "generate-questions/stream", Message: "request failed", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, c.errorFromResponse("generate-questions/stream", resp)
	}
	return resp.Body, nil
}

// LoadMore requests additional questions for one category. An empty Questions
// slice means the backend has no more unique results; that is not an error
// and is surfaced to the user as a distinct notice.
func (c *Client) LoadMore(ctx context.Context, req types.LoadMoreRequest) (*types.LoadMoreResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, &Error{Endpoint: "load-more", Message: "invalid request", Cause: err}
	}

	var resp types.LoadMoreResponse
	if err := c.postJSON(ctx, "/load-more", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListFavorites returns all persisted favorites, newest first.
func (c *Client) ListFavorites(ctx context.Context) ([]types.Question, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/favorites", nil)
	if err != nil {
		return nil, &Error{Endpoint: "favorites", Message: "create request", Cause: err}
	}

	var favorites []types.Question
	if err := c.do(httpReq, "favorites", &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddFavorite persists one question as a favorite and returns the created record.
func (c *Client) AddFavorite(ctx context.Context, req types.AddFavoriteRequest) (*types.Question, error) {
	if err := req.Validate(); err != nil {
		return nil, &Error{Endpoint: "favorites", Message: "invalid request", Cause: err}
	}

	var created types.Question
	if err := c.postJSON(ctx, "/favorites", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetFavorite returns one persisted favorite by ID.
func (c *Client) GetFavorite(ctx context.Context, id string) (*types.Question, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/favorites/"+id, nil)
	if err != nil {
		return nil, &Error{Endpoint: "favorites", Message: "create request", Cause: err}
	}

	var favorite types.Question
	if err := c.do(httpReq, "favorites", &favorite); err != nil {
		return nil, err
	}
	return &favorite, nil
}

// RemoveFavorite deletes one favorite by ID.
func (c *Client) RemoveFavorite(ctx context.Context, id string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/favorites/"+id, nil)
	if err != nil {
		return &Error{Endpoint: "favorites", Message: "create request", Cause: err}
	}
	return c.do(httpReq, "favorites", nil)
}

// ExtractText uploads a document (PDF, DOCX, image) and returns the text the
// backend extracted from it, used to prefill the job-description input.
func (c *Client) ExtractText(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", &Error{Endpoint: "extract-text", Message: "create form file", Cause: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", &Error{Endpoint: "extract-text", Message: "read file", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return "", &Error{Endpoint: "extract-text", Message: "finalize form", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract-text", &body)
	if err != nil {
		return "", &Error{Endpoint: "extract-text", Message: "create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	var resp types.ExtractTextResponse
	if err := c.do(httpReq, "extract-text", &resp); err != nil {
		return "", err
	}
	return resp.ExtractedText, nil
}

// ExtractTextBase64 extracts text from a base64-encoded image.
func (c *Client) ExtractTextBase64(ctx context.Context, imageBase64 string) (string, error) {
	req := types.ExtractTextBase64Request{ImageBase64: imageBase64}
	if err := req.Validate(); err != nil {
		return "", &Error{Endpoint: "extract-text-base64", Message: "invalid request", Cause: err}
	}

	var resp types.ExtractTextResponse
	if err := c.postJSON(ctx, "/extract-text-base64", req, &resp); err != nil {
		return "", err
	}
	return resp.ExtractedText, nil
}

// postJSON issues a POST with a JSON body and decodes a JSON response into out.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	endpoint := strings.TrimLeft(path, "/")

	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Endpoint: endpoint, Message: "marshal request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Endpoint: endpoint, Message: "create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(httpReq, endpoint, out)
}

// do executes a request and decodes the response into out (skipped when nil).
func (c *Client) do(req *http.Request, endpoint string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Endpoint: endpoint, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(endpoint, resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Endpoint: endpoint, Message: "decode response", Cause: err}
	}
	return nil
}

// errorFromResponse builds an Error from a non-success response, preferring
// the backend's own error message when the body carries one.
func (c *Client) errorFromResponse(endpoint string, resp *http.Response) error {
	apiErr := &Error{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8192))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			apiErr.Message = payload.Error
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Detail != "":
			apiErr.Message = payload.Detail
		}
	}
	return apiErr
}
