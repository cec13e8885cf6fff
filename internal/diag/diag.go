// Package diag probes the assistant backend connection.
package diag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/saharah/saharah/internal/chat"
)

// ProbeMessage is the question sent to check the chat endpoint.
const ProbeMessage = "What are my inheritance rights?"

// maxBody bounds how much of a response body a check keeps.
const maxBody = 4096

// Check is the outcome of one probe request.
type Check struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Status int    `json:"status,omitempty"`
	Body   string `json:"body,omitempty"`
	Err    string `json:"error,omitempty"`
}

// OK reports whether the request got a 2xx answer.
func (c Check) OK() bool {
	return c.Err == "" && c.Status >= 200 && c.Status <= 299
}

// Report is the result of a full probe.
type Report struct {
	BaseURL string  `json:"base_url"`
	Checks  []Check `json:"checks"`
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	for _, c := range r.Checks {
		if !c.OK() {
			return false
		}
	}
	return len(r.Checks) > 0
}

// String renders the report one line per check.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Base URL: %s\n", r.BaseURL)
	for _, c := range r.Checks {
		mark := "ok"
		if !c.OK() {
			mark = "FAIL"
		}
		fmt.Fprintf(&b, "[%s] %s %s", mark, c.Name, c.URL)
		if c.Status != 0 {
			fmt.Fprintf(&b, " -> %d %s", c.Status, http.StatusText(c.Status))
		}
		if c.Err != "" {
			fmt.Fprintf(&b, " (%s)", c.Err)
		}
		b.WriteByte('\n')
		if c.Body != "" {
			fmt.Fprintf(&b, "    %s\n", c.Body)
		}
	}
	return b.String()
}

// Probe runs the connectivity, health and chat checks against baseURL in order.
// Every check runs even when an earlier one fails.
func Probe(ctx context.Context, client *http.Client, baseURL string) *Report {
	if client == nil {
		client = &http.Client{Timeout: chat.DefaultTimeout}
	}
	base := strings.TrimRight(baseURL, "/")
	body, _ := json.Marshal(map[string]string{"message": ProbeMessage})

	r := &Report{BaseURL: base}
	r.Checks = append(r.Checks,
		run(ctx, client, "connectivity", http.MethodGet, base, nil, false),
		run(ctx, client, "health", http.MethodGet, base+chat.HealthPath, nil, true),
		run(ctx, client, "chat", http.MethodPost, base+chat.ChatPath, body, true),
	)
	return r
}

func run(ctx context.Context, client *http.Client, name, method, url string, body []byte, keepBody bool) Check {
	c := Check{Name: name, URL: url}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		c.Err = err.Error()
		return c
	}
	chat.SetHeaders(req)
	resp, err := client.Do(req)
	if err != nil {
		c.Err = err.Error()
		return c
	}
	defer resp.Body.Close()
	c.Status = resp.StatusCode
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if keepBody && resp.StatusCode != http.StatusNotFound {
		c.Body = strings.TrimSpace(string(data))
	}
	return c
}
