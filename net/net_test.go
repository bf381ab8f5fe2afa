package net

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/goccy/go-json"
	"kselect/config"
)

func TestPostReport(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	Init(&config.NetConfig{Webhook: srv.URL, TimeoutSeconds: 1})
	err := PostReport(map[string]any{"algorithm": "select", "k": 3})
	assert.Equal(t, err, nil)
	assert.Equal(t, received["algorithm"], "select")
	assert.Equal(t, received["k"], float64(3))
}

func TestPostReport_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	Init(&config.NetConfig{Webhook: srv.URL})
	assert.NotEqual(t, PostReport(map[string]any{}), nil)
}

func TestPostReport_NoWebhook(t *testing.T) {
	Init(&config.NetConfig{})
	assert.Equal(t, PostReport(map[string]any{}), nil)
}
