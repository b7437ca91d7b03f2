package services

import (
	"context"
	"strings"

	"blog-showcase/cmd/api/clients/blogclient"
	"blog-showcase/cmd/api/dto"
	"blog-showcase/cmd/api/enrich"
)

const (
	// AllCategories disables the category filter.
	AllCategories = "All"

	DefaultRecentLimit = 6
	maxFeaturedOthers  = 5
)

// PostService fetches raw records from the upstream source and hands out
// freshly enriched display posts. Nothing is kept between calls.
type PostService struct {
	source   blogclient.Source
	enricher *enrich.Enricher
}

func NewPostService(source blogclient.Source, enricher *enrich.Enricher) *PostService {
	return &PostService{source: source, enricher: enricher}
}

type ListPostsInput struct {
	Query    string // case-insensitive substring of title, excerpt, category or a tag
	Category string // exact category; empty or "All" means every category
}

// all loads and enriches the whole upstream collection.
func (s *PostService) all(ctx context.Context) ([]dto.PostDTO, error) {
	raws, err := s.source.ListBlogs(ctx)
	if err != nil {
		return nil, err
	}
	return s.enricher.EnrichMany(ctx, raws), nil
}

// List returns the enriched collection narrowed by search query and category.
func (s *PostService) List(ctx context.Context, in ListPostsInput) ([]dto.PostDTO, error) {
	posts, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPosts(posts, in), nil
}

// GetByID enriches a single record. blogclient.ErrNotFound is passed through.
func (s *PostService) GetByID(ctx context.Context, id string) (*dto.PostDTO, error) {
	raw, err := s.source.GetBlog(ctx, id)
	if err != nil {
		return nil, err
	}
	post := s.enricher.EnrichOne(ctx, raw)
	return &post, nil
}

// Featured picks the hero post (first featured, else the first post) and up to
// five other featured posts. query only narrows the other posts, by title,
// excerpt or category.
func (s *PostService) Featured(ctx context.Context, query string) (dto.FeaturedPostsDTO, error) {
	posts, err := s.all(ctx)
	if err != nil {
		return dto.FeaturedPostsDTO{}, err
	}
	return SelectFeatured(posts, query), nil
}

// SelectFeatured is the selection behind Featured.
func SelectFeatured(posts []dto.PostDTO, query string) dto.FeaturedPostsDTO {
	out := dto.FeaturedPostsDTO{Others: []dto.PostDTO{}}
	if len(posts) == 0 {
		return out
	}

	lead := posts[0]
	for _, p := range posts {
		if p.Featured {
			lead = p
			break
		}
	}
	out.Featured = &lead

	for _, p := range posts {
		if len(out.Others) == maxFeaturedOthers {
			break
		}
		if p.Featured && p.ID != lead.ID {
			out.Others = append(out.Others, p)
		}
	}
	out.Others = filterHero(out.Others, query)
	return out
}

// Recent returns the first limit non-featured posts, then applies query.
func (s *PostService) Recent(ctx context.Context, query string, limit int) ([]dto.PostDTO, error) {
	posts, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return SelectRecent(posts, query, limit), nil
}

// SelectRecent is the selection behind Recent.
func SelectRecent(posts []dto.PostDTO, query string, limit int) []dto.PostDTO {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	recent := make([]dto.PostDTO, 0, min(limit, len(posts)))
	for _, p := range posts {
		if len(recent) == limit {
			break
		}
		if !p.Featured {
			recent = append(recent, p)
		}
	}
	return FilterPosts(recent, ListPostsInput{Query: query})
}

// FilterPosts keeps posts matching both the query and the category, preserving order.
func FilterPosts(posts []dto.PostDTO, in ListPostsInput) []dto.PostDTO {
	query := strings.ToLower(strings.TrimSpace(in.Query))
	category := strings.TrimSpace(in.Category)
	if category == AllCategories {
		category = ""
	}

	out := make([]dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		if category != "" && p.Category != category {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// filterHero narrows the hero section's other posts. Tags are not searched there.
func filterHero(posts []dto.PostDTO, query string) []dto.PostDTO {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return posts
	}
	out := make([]dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		if matchesText(p, query) {
			out = append(out, p)
		}
	}
	return out
}

// matchesText checks title, excerpt and category against an already lower-cased query.
func matchesText(p dto.PostDTO, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Excerpt), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

// matchesQuery expects query already lower-cased.
func matchesQuery(p dto.PostDTO, query string) bool {
	if matchesText(p, query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
