package blogclient

import (
	"context"
	"encoding/json"

	"blog-showcase/cmd/api/cache"
	"blog-showcase/cmd/api/metrics"
)

const listCacheKey = "blogs"

// CachedClient 는 upstream 의 성공 응답(원본 레코드)만 store 에 보관한다.
// 실패와 not found 는 캐시하지 않는다.
type CachedClient struct {
	source  Source
	store   cache.Store
	metrics *metrics.Metrics
}

func NewCachedClient(source Source, store cache.Store, m *metrics.Metrics) *CachedClient {
	return &CachedClient{source: source, store: store, metrics: m}
}

func (c *CachedClient) ListBlogs(ctx context.Context) ([]RawPost, error) {
	var cached []RawPost
	if c.lookup(ctx, listCacheKey, &cached) {
		return cached, nil
	}

	posts, err := c.source.ListBlogs(ctx)
	if err != nil {
		return nil, err
	}
	c.save(ctx, listCacheKey, posts)
	return posts, nil
}

func (c *CachedClient) GetBlog(ctx context.Context, id string) (RawPost, error) {
	key := listCacheKey + "/" + id
	var cached RawPost
	if c.lookup(ctx, key, &cached) {
		return cached, nil
	}

	post, err := c.source.GetBlog(ctx, id)
	if err != nil {
		return RawPost{}, err
	}
	c.save(ctx, key, post)
	return post, nil
}

func (c *CachedClient) lookup(ctx context.Context, key string, out any) bool {
	b, ok := c.store.Get(ctx, key)
	if ok && json.Unmarshal(b, out) != nil {
		ok = false
	}
	c.metrics.ObserveCache(ok)
	return ok
}

func (c *CachedClient) save(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.store.Set(ctx, key, b)
}
