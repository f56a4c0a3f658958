package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestContentClient(baseURL string) *ContentClient {
	return NewContentClientWithHTTPClient(baseURL, "", 5*time.Second, 0, discardLogger(), http.DefaultClient)
}

func TestContentClient_NodeURL(t *testing.T) {
	c := newTestContentClient("http://cms.local/")
	assert.Equal(t, "http://cms.local/contentasjson/node/123", c.NodeURL("123"))
	assert.Equal(t, "http://cms.local/contentasjson/node/a%2Fb", c.NodeURL("a/b"))

	custom := NewContentClient("http://cms.local", "api/node", 0, 0, nil)
	assert.Equal(t, "http://cms.local/api/node/9", custom.NodeURL("9"))
}

func TestContentClient_FetchNode(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/contentasjson/node/42", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"title":"Hello","body":{"und":[{"value":"<p>World</p>"}]}}`)
	}))
	defer backend.Close()

	article, err := newTestContentClient(backend.URL).FetchNode(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", article.NodeID)
	assert.Equal(t, "Hello", article.Title)
	assert.Equal(t, "<p>World</p>", article.Body)
}

func TestContentClient_FetchNode_TextPlainStringDocument(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, `"{\"title\":\"T\",\"body\":{\"und\":[{\"value\":\"B\"}]}}"`)
	}))
	defer backend.Close()

	article, err := newTestContentClient(backend.URL).FetchNode(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "T", article.Title)
	assert.Equal(t, "B", article.Body)
}

func TestContentClient_FetchNode_SanitizesBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"title":"T","body":{"und":[{"value":"<p onmouseover=\"x()\">ok</p><script>bad()</script>"}]}}`)
	}))
	defer backend.Close()

	article, err := newTestContentClient(backend.URL).FetchNode(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "<p>ok</p>", article.Body)
}

func TestContentClient_FetchNode_UnboundedLimit(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"title":"T","body":{"und":[{"value":"B"}]}}`)
	}))
	defer backend.Close()

	client := NewContentClient(backend.URL, "", 0, math.MaxInt64, discardLogger())
	article, err := client.FetchNode(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "T", article.Title)
	assert.Equal(t, "B", article.Body)
}

func TestContentClient_FetchNode_UpstreamStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer backend.Close()

	article, err := newTestContentClient(backend.URL).FetchNode(context.Background(), "404")
	assert.Nil(t, article)
	assert.ErrorIs(t, err, ErrUpstream)

	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusNotFound, ue.StatusCode)
	assert.True(t, strings.HasSuffix(ue.URL, "/contentasjson/node/404"))
}

func TestContentClient_FetchNode_Malformed(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"title":"T","body":{}}`)
	}))
	defer backend.Close()

	_, err := newTestContentClient(backend.URL).FetchNode(context.Background(), "1")
	assert.ErrorIs(t, err, ErrMalformedContent)
}

func TestContentClient_FetchNode_BodyLimit(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"title":"`+strings.Repeat("x", 64)+`","body":{"und":[{"value":"B"}]}}`)
	}))
	defer backend.Close()

	c := NewContentClientWithHTTPClient(backend.URL, "", time.Second, 32, discardLogger(), http.DefaultClient)
	_, err := c.FetchNode(context.Background(), "1")
	assert.ErrorIs(t, err, ErrMalformedContent)
}

func TestContentClient_FetchNode_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer backend.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := newTestContentClient(backend.URL).FetchNode(ctx, "1")
		errCh <- err
	}()
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("fetch did not abort after cancel")
	}
}

func TestContentClient_FetchNode_Timeout(t *testing.T) {
	release := make(chan struct{})
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer backend.Close()
	defer close(release)

	c := NewContentClientWithHTTPClient(backend.URL, "", 50*time.Millisecond, 0, discardLogger(), http.DefaultClient)
	_, err := c.FetchNode(context.Background(), "1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
