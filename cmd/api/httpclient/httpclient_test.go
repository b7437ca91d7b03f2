package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-showcase/cmd/api/trace"
)

func TestNewRequestJoinsPathAndQuery(t *testing.T) {
	c := NewBaseClient("https://example.com/api/")

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/blogs/7", url.Values{"page": {"2"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/api/blogs/7?page=2", req.URL.String())
}

func TestNewRequestRejectsQueryInPath(t *testing.T) {
	c := NewBaseClient("https://example.com")

	_, err := c.NewRequest(context.Background(), http.MethodGet, "/blogs?page=1", nil, nil)
	assert.Error(t, err)
}

func TestRoundTripperPropagatesTraceHeaders(t *testing.T) {
	var gotRequestID, gotSpanID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(trace.HeaderRequestID)
		gotSpanID = r.Header.Get(trace.HeaderSpanID)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewBaseClientWithClient(New(Config{Name: "test"}), srv.URL)
	ctx := trace.WithRequestAndSpan(context.Background(), "req-abc", 0)

	for want := 1; want <= 2; want++ {
		req, err := c.NewRequest(ctx, http.MethodGet, "/", nil, nil)
		require.NoError(t, err)
		resp, err := c.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, "req-abc", gotRequestID)
		assert.Equal(t, []string{"1", "2"}[want-1], gotSpanID)
	}
}

func TestRoundTripperGeneratesRequestIDOutsideMiddleware(t *testing.T) {
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(trace.HeaderRequestID)
	}))
	defer srv.Close()

	resp, err := NewDefault().Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.NotEmpty(t, gotRequestID)
}
