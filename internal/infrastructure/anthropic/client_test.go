package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReply(t *testing.T) {
	var gotReq messagesRequest
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"Hi there!"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "claude-sonnet-4-20250514")
	text, err := c.Reply(context.Background(), "hello", "2024-01-01 08:17", "Africa/Nairobi")
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", text)

	assert.Equal(t, "test-key", gotHeaders.Get("x-api-key"))
	assert.Equal(t, apiVersion, gotHeaders.Get("anthropic-version"))

	assert.Equal(t, "claude-sonnet-4-20250514", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "hello", gotReq.Messages[0].Content)
	assert.Contains(t, gotReq.System, "2024-01-01 08:17")
	assert.Contains(t, gotReq.System, "Africa/Nairobi")
	assert.Contains(t, gotReq.System, "REMINDER_JSON")
}

func TestReplyErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "claude-sonnet-4-20250514")
	_, err := c.Reply(context.Background(), "hello", "now", "UTC")
	assert.Error(t, err)
}

func TestReplyEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "claude-sonnet-4-20250514")
	_, err := c.Reply(context.Background(), "hello", "now", "UTC")
	assert.Error(t, err)
}
