package services

import (
	"context"

	"blog-showcase/cmd/api/dto"
)

// FilterService builds category and tag filter options from one enrichment pass.
// Because metadata is synthesized per request, counts describe that pass only.
type FilterService struct {
	posts *PostService
}

// NewFilterService creates a new FilterService instance
func NewFilterService(posts *PostService) *FilterService {
	return &FilterService{posts: posts}
}

// GetCategoryFilters returns "All" plus every category in order of first appearance, with counts.
func (s *FilterService) GetCategoryFilters(ctx context.Context) (dto.CategoryFilterDTO, error) {
	posts, err := s.posts.all(ctx)
	if err != nil {
		return dto.CategoryFilterDTO{}, err
	}

	names := []string{AllCategories}
	items := []dto.FilterItem{}
	index := map[string]int{}
	for _, p := range posts {
		i, ok := index[p.Category]
		if !ok {
			i = len(items)
			index[p.Category] = i
			names = append(names, p.Category)
			items = append(items, dto.FilterItem{Name: p.Category})
		}
		items[i].Count++
	}

	return dto.CategoryFilterDTO{Names: names, Items: items}, nil
}

// GetTagFilters retrieves tag counts, optionally restricted to one category.
func (s *FilterService) GetTagFilters(ctx context.Context, category string) (dto.TagFilterDTO, error) {
	posts, err := s.posts.all(ctx)
	if err != nil {
		return dto.TagFilterDTO{}, err
	}
	posts = FilterPosts(posts, ListPostsInput{Category: category})

	items := []dto.FilterItem{}
	index := map[string]int{}
	for _, p := range posts {
		for _, tag := range p.Tags {
			i, ok := index[tag]
			if !ok {
				i = len(items)
				index[tag] = i
				items = append(items, dto.FilterItem{Name: tag})
			}
			items[i].Count++
		}
	}

	return dto.TagFilterDTO{Items: items}, nil
}
