package diag

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe_AllPass(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.Header.Get("ngrok-skip-browser-warning"))
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte("root"))
		case "/health":
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
		case "/chat":
			var req map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, ProbeMessage, req["message"])
			_, _ = w.Write([]byte(`{"response":"ok"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	rep := Probe(context.Background(), srv.Client(), srv.URL+"/")
	require.Len(t, rep.Checks, 3)
	assert.True(t, rep.OK())
	assert.Equal(t, []string{"connectivity", "health", "chat"},
		[]string{rep.Checks[0].Name, rep.Checks[1].Name, rep.Checks[2].Name})
	assert.Empty(t, rep.Checks[0].Body)
	assert.Equal(t, `{"status":"healthy"}`, rep.Checks[1].Body)
	assert.Equal(t, `{"response":"ok"}`, rep.Checks[2].Body)
	assert.Equal(t, srv.URL+"/chat", rep.Checks[2].URL)
}

func TestProbe_ContinuesAfterFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/chat" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rep := Probe(context.Background(), srv.Client(), srv.URL)
	require.Len(t, rep.Checks, 3)
	assert.False(t, rep.OK())
	assert.True(t, rep.Checks[1].OK())
	assert.Equal(t, http.StatusNotFound, rep.Checks[2].Status)
	assert.Empty(t, rep.Checks[2].Body, "404 bodies are not kept")
	assert.Contains(t, rep.String(), "[FAIL] chat")
}

func TestProbe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	rep := Probe(context.Background(), nil, url)
	require.Len(t, rep.Checks, 3)
	for _, c := range rep.Checks {
		assert.NotEmpty(t, c.Err, c.Name)
		assert.False(t, c.OK())
	}
	assert.True(t, strings.HasPrefix(rep.String(), "Base URL: "+url))
}
