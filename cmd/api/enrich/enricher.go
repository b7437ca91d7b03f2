// Package enrich turns raw upstream blog records into display posts.
//
// Only id, title, description, excerpt and content are derived from the record.
// Author, avatar, reading time, date, category, tags and the featured flag are
// synthesized from the injected random source on every call, so the same record
// yields different metadata each time unless the source is seeded identically.
package enrich

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"blog-showcase/cmd/api/clients/blogclient"
	"blog-showcase/cmd/api/dto"
	"blog-showcase/cmd/api/metrics"
	"blog-showcase/cmd/internal/logger"
)

// DefaultFallbackImage is served whenever the record's own image fails validation.
const DefaultFallbackImage = "https://picsum.photos/id/237/200/300"

// dateRangeStart is the earliest synthesized publication date.
var dateRangeStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

type Enricher struct {
	validator     ImageValidator
	fallbackImage string
	concurrency   int
	now           func() time.Time
	metrics       *metrics.Metrics

	// rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Enricher)

// WithFallbackImage overrides DefaultFallbackImage. Empty values are ignored.
func WithFallbackImage(rawURL string) Option {
	return func(e *Enricher) {
		if rawURL != "" {
			e.fallbackImage = rawURL
		}
	}
}

// WithClock sets the upper bound used for synthesized dates.
func WithClock(now func() time.Time) Option {
	return func(e *Enricher) {
		if now != nil {
			e.now = now
		}
	}
}

// WithConcurrency caps simultaneous image validations in EnrichMany; n <= 0 means unbounded.
func WithConcurrency(n int) Option {
	return func(e *Enricher) {
		e.concurrency = n
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Enricher) {
		e.metrics = m
	}
}

// New builds an Enricher that draws all synthetic metadata from rng.
func New(validator ImageValidator, rng *rand.Rand, opts ...Option) *Enricher {
	e := &Enricher{
		validator:     validator,
		fallbackImage: DefaultFallbackImage,
		now:           time.Now,
		rng:           rng,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewDefault builds an Enricher with a randomly seeded source.
func NewDefault(validator ImageValidator, opts ...Option) *Enricher {
	return New(validator, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), opts...)
}

// synthetic holds every randomly drawn field of a display post.
type synthetic struct {
	author       string
	authorAvatar string
	readTime     string
	date         string
	category     string
	tags         []string
	featured     bool
}

func (e *Enricher) draw() synthetic {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.rng
	s := synthetic{
		author:       Authors[r.IntN(len(Authors))],
		authorAvatar: fmt.Sprintf(avatarURLFormat, r.IntN(maxAvatarID)+1),
		readTime:     fmt.Sprintf("%d min read", r.IntN(maxReadMinutes-minReadMinutes+1)+minReadMinutes),
		date:         e.randomDate(),
		category:     Categories[r.IntN(len(Categories))],
	}

	n := r.IntN(maxTags-minTags+1) + minTags
	s.tags = make([]string, 0, n)
	for _, idx := range r.Perm(len(Tags))[:n] {
		s.tags = append(s.tags, Tags[idx])
	}

	s.featured = r.Float64() > featuredThreshold
	return s
}

// randomDate picks an instant between dateRangeStart and now. Caller holds mu.
func (e *Enricher) randomDate() string {
	end := e.now().UTC()
	if !end.After(dateRangeStart) {
		return dateRangeStart.Format(time.DateOnly)
	}
	span := end.Sub(dateRangeStart)
	offset := time.Duration(e.rng.Int64N(int64(span) + 1))
	return dateRangeStart.Add(offset).Format(time.DateOnly)
}

func (e *Enricher) build(ctx context.Context, raw blogclient.RawPost, s synthetic) dto.PostDTO {
	image := raw.Image
	fallback := e.validator == nil || !e.validator.IsImageValid(ctx, raw.Image)
	if fallback {
		logger.DebugWithFields("image replaced with fallback", logger.Fields{
			"post_id": string(raw.ID),
			"image":   raw.Image,
		})
		image = e.fallbackImage
	}
	e.metrics.ObserveEnrichment(fallback)

	return dto.PostDTO{
		ID:           string(raw.ID),
		Title:        raw.Title,
		Excerpt:      Excerpt(raw.Description),
		Description:  raw.Description,
		Content:      Content(raw.Title, raw.Description),
		Image:        image,
		Author:       s.author,
		AuthorAvatar: s.authorAvatar,
		Time:         s.readTime,
		Date:         s.date,
		Category:     s.category,
		Tags:         s.tags,
		Featured:     s.featured,
	}
}

// EnrichOne decorates a single record. It never fails; an image that does not
// validate is replaced with the fallback image.
func (e *Enricher) EnrichOne(ctx context.Context, raw blogclient.RawPost) dto.PostDTO {
	return e.build(ctx, raw, e.draw())
}

// EnrichMany decorates every record concurrently. The result is index-aligned
// with raws regardless of the order in which image validations complete.
// Metadata is drawn in input order before validation starts, so a seeded source
// gives the same output for the same input.
func (e *Enricher) EnrichMany(ctx context.Context, raws []blogclient.RawPost) []dto.PostDTO {
	drawn := make([]synthetic, len(raws))
	for i := range raws {
		drawn[i] = e.draw()
	}

	out := make([]dto.PostDTO, len(raws))
	var g errgroup.Group
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}
	for i := range raws {
		g.Go(func() error {
			out[i] = e.build(ctx, raws[i], drawn[i])
			return nil
		})
	}
	_ = g.Wait()
	return out
}
