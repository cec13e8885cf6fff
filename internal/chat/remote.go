package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/saharah/saharah/internal/i18n"
)

const (
	// ChatPath and HealthPath are the assistant backend endpoints.
	ChatPath   = "/chat"
	HealthPath = "/health"

	// DefaultTimeout bounds one backend request.
	DefaultTimeout = 30 * time.Second

	noResponse = "No response received"
)

// SetHeaders sets the headers every backend request carries. The ngrok header skips the
// tunnel's browser interstitial page.
func SetHeaders(req *http.Request) {
	req.Header.Set("ngrok-skip-browser-warning", "true")
	if req.Method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
	Message  string `json:"message"`
	Reply    string `json:"reply"`
	Error    string `json:"error"`
}

// RemoteClient forwards messages to an assistant backend.
type RemoteClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// RemoteOption configures a RemoteClient.
type RemoteOption func(*RemoteClient)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *RemoteClient) { r.client = c }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) RemoteOption {
	return func(r *RemoteClient) { r.logger = l }
}

// NewRemoteClient returns a client for the backend at baseURL.
func NewRemoteClient(baseURL string, opts ...RemoteOption) *RemoteClient {
	r := &RemoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BaseURL returns the backend base URL without a trailing slash.
func (r *RemoteClient) BaseURL() string {
	return r.baseURL
}

// Reply implements Responder; the backend chooses its own reply language.
func (r *RemoteClient) Reply(ctx context.Context, _ i18n.Language, message string) (string, error) {
	return r.Send(ctx, message)
}

// Send posts message to the backend and returns its reply text.
func (r *RemoteClient) Send(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+ChatPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	SetHeaders(req)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("assistant backend unreachable", zap.String("url", req.URL.String()), zap.Error(err))
		return "", fmt.Errorf("send chat message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}
	var data chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if data.Error != "" {
		return "", errors.New(data.Error)
	}
	for _, s := range []string{data.Response, data.Message, data.Reply} {
		if s != "" {
			return s, nil
		}
	}
	return noResponse, nil
}

// Health reports whether the backend health endpoint answers with a 2xx status.
func (r *RemoteClient) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+HealthPath, nil)
	if err != nil {
		return false
	}
	SetHeaders(req)
	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Debug("assistant health check failed", zap.Error(err))
		return false
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}
