package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelegramClient_SendMessage(t *testing.T) {
	var gotPath, gotRawQuery string
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		gotPath = r.URL.Path
		gotRawQuery = r.URL.RawQuery
		q := r.URL.Query()
		gotQuery = map[string]string{
			"chat_id":    q.Get("chat_id"),
			"parse_mode": q.Get("parse_mode"),
			"text":       q.Get("text"),
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewTelegramClient(srv.URL+"/", "123:abc", "5505853", 0)
	require.NoError(t, c.SendMessage(context.Background(), "Iteration 1 of 3 complete!"))

	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, map[string]string{
		"chat_id":    "5505853",
		"parse_mode": "Markdown",
		"text":       "Iteration 1 of 3 complete!",
	}, gotQuery)
	assert.True(t, strings.HasSuffix(gotRawQuery, "text=Iteration+1+of+3+complete%21"), gotRawQuery)
}

func TestTelegramClient_NotifySwallowsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewTelegramClient(url, "t", "c", 0)
	assert.Error(t, c.SendMessage(context.Background(), "x"))
	assert.NotPanics(t, func() { c.Notify(context.Background(), "x") })
}

func TestTelegramClient_Disabled(t *testing.T) {
	c := NewTelegramClient("", "", "", 0)
	assert.False(t, c.Enabled())
	assert.Equal(t, "https://api.telegram.org", c.BaseURL)
	assert.Error(t, c.SendMessage(context.Background(), "x"))
}

func TestTelegramClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewTelegramClient(srv.URL, "t", "c", 0)
	assert.Error(t, c.SendMessage(context.Background(), "x"))
}
