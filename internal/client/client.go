package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://aniversario-back.onrender.com"

	confirmPath = "/api/confirmar-presenca"
	uploadPath  = "/api/fotos/upload"
)

// Client calls the remote confirmation and photo endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for baseURL. A zero timeout leaves requests unbounded.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewWithHTTPClient is like New but reuses an existing http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL, 0)
	if hc != nil {
		c.http = hc
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ConfirmPresence posts a confirmation. A non-2xx status is not an error:
// the caller inspects the result to map rejections onto fields.
func (c *Client) ConfirmPresence(ctx context.Context, req ConfirmRequest) (*ConfirmResult, error) {
	var body ConfirmResponse
	status, err := c.postJSON(ctx, confirmPath, req, &body)
	if err != nil {
		return nil, err
	}
	log.Printf("remote_confirm status=%d success=%t companions=%d", status, body.Success, len(req.Companions))
	return &ConfirmResult{StatusCode: status, Body: body}, nil
}

// UploadPhoto posts a compressed photo.
func (c *Client) UploadPhoto(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	var body UploadResponse
	status, err := c.postJSON(ctx, uploadPath, req, &body)
	if err != nil {
		return nil, err
	}
	log.Printf("remote_upload status=%d success=%t file=%q bytes=%d", status, body.Success, req.FileName, len(req.ImageData))
	return &UploadResult{StatusCode: status, Body: body}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) (int, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decode %s response (status %d): %v", ErrUnreachable, path, resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}
