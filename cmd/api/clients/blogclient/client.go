package blogclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"blog-showcase/cmd/api/httpclient"
	"blog-showcase/cmd/api/metrics"
)

var (
	// ErrNotFound 는 upstream 에 해당 id 의 레코드가 없을 때 반환된다.
	ErrNotFound = errors.New("resource not found")
	// ErrUpstreamUnavailable 은 upstream 조회 자체가 실패했을 때(전송 오류, 비정상 상태, 디코딩 실패) 감싸서 반환된다.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Source 는 원본 블로그 레코드를 제공하는 upstream 추상화다.
// Client 와 CachedClient 가 구현한다.
type Source interface {
	ListBlogs(ctx context.Context) ([]RawPost, error)
	GetBlog(ctx context.Context, id string) (RawPost, error)
}

// Client는 upstream 목 API(GET /blogs, GET /blogs/{id})를 호출하는 얇은 클라이언트다.
// 재시도는 하지 않으며, 실패는 즉시 호출자에게 보고한다.
type Client struct {
	base    *httpclient.BaseClient
	metrics *metrics.Metrics
}

// New 는 baseURL(예: https://xxxx.mockapi.io)과 http.Client 로 Client 를 생성한다.
// httpClient 가 nil 이면 기본 클라이언트를 사용한다.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		base: httpclient.NewBaseClientWithClient(httpClient, baseURL),
	}
}

// WithMetrics 는 upstream 호출 결과를 m 에 기록하도록 설정한다.
func (c *Client) WithMetrics(m *metrics.Metrics) *Client {
	c.metrics = m
	return c
}

func (c *Client) observe(operation string, err error) {
	switch {
	case err == nil:
		c.metrics.ObserveUpstream(operation, "ok")
	case errors.Is(err, ErrNotFound):
		c.metrics.ObserveUpstream(operation, "not_found")
	default:
		c.metrics.ObserveUpstream(operation, "error")
	}
}

// ListBlogs 는 전체 레코드 목록을 조회한다.
func (c *Client) ListBlogs(ctx context.Context) (posts []RawPost, err error) {
	defer func() { c.observe("list", err) }()

	req, err := c.base.NewRequest(ctx, http.MethodGet, "/blogs", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("blogclient ListBlogs: %v: %w", err, ErrUpstreamUnavailable)
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return nil, fmt.Errorf("blogclient ListBlogs: %v: %w", err, ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("blogclient ListBlogs: status=%d body=%s: %w", resp.StatusCode, string(body), ErrUpstreamUnavailable)
	}

	var out []RawPost
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("blogclient ListBlogs: decode: %v: %w", err, ErrUpstreamUnavailable)
	}
	return out, nil
}

// GetBlog 는 단일 레코드를 조회한다.
// 존재하지 않으면 ErrNotFound 를 반환한다.
func (c *Client) GetBlog(ctx context.Context, id string) (post RawPost, err error) {
	defer func() { c.observe("get", err) }()

	if !validID(id) {
		return RawPost{}, ErrNotFound
	}
	req, err := c.base.NewRequest(ctx, http.MethodGet, path.Join("/blogs", id), nil, nil)
	if err != nil {
		return RawPost{}, fmt.Errorf("blogclient GetBlog: %v: %w", err, ErrUpstreamUnavailable)
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return RawPost{}, fmt.Errorf("blogclient GetBlog: %v: %w", err, ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		var out RawPost
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return RawPost{}, fmt.Errorf("blogclient GetBlog: decode: %v: %w", err, ErrUpstreamUnavailable)
		}
		return out, nil
	case resp.StatusCode == http.StatusNotFound:
		return RawPost{}, ErrNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return RawPost{}, fmt.Errorf("blogclient GetBlog: status=%d body=%s: %w", resp.StatusCode, string(body), ErrUpstreamUnavailable)
	}
}

// validID 는 경로 조작이 가능한 id 를 upstream 호출 전에 걸러낸다.
func validID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, "/?#")
}
