package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-showcase/cmd/api/clients/blogclient"
	"blog-showcase/cmd/api/dto"
	"blog-showcase/cmd/api/enrich"
)

type fakeSource struct {
	posts   []blogclient.RawPost
	listErr error
}

func (f *fakeSource) ListBlogs(context.Context) ([]blogclient.RawPost, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.posts, nil
}

func (f *fakeSource) GetBlog(_ context.Context, id string) (blogclient.RawPost, error) {
	for _, p := range f.posts {
		if string(p.ID) == id {
			return p, nil
		}
	}
	return blogclient.RawPost{}, blogclient.ErrNotFound
}

func newService(source blogclient.Source) *PostService {
	valid := enrich.ImageValidatorFunc(func(context.Context, string) bool { return true })
	return NewPostService(source, enrich.New(valid, rand.New(rand.NewPCG(1, 2))))
}

func rawPosts(n int) []blogclient.RawPost {
	out := make([]blogclient.RawPost, n)
	for i := range out {
		out[i] = blogclient.RawPost{
			ID:          blogclient.PostID(fmt.Sprint(i + 1)),
			Title:       fmt.Sprintf("Post %d", i+1),
			Description: "description",
			Image:       fmt.Sprintf("https://img.example/%d.png", i+1),
		}
	}
	return out
}

func TestPostServiceList(t *testing.T) {
	svc := newService(&fakeSource{posts: rawPosts(4)})

	got, err := svc.List(context.Background(), ListPostsInput{})
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i, p := range got {
		assert.Equal(t, fmt.Sprint(i+1), p.ID)
	}
}

func TestPostServiceListSearch(t *testing.T) {
	svc := newService(&fakeSource{posts: rawPosts(12)})

	got, err := svc.List(context.Background(), ListPostsInput{Query: "post 1"})
	require.NoError(t, err)

	ids := []string{}
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "10", "11", "12"}, ids)
}

func TestPostServiceListUpstreamError(t *testing.T) {
	svc := newService(&fakeSource{listErr: blogclient.ErrUpstreamUnavailable})

	_, err := svc.List(context.Background(), ListPostsInput{})
	assert.ErrorIs(t, err, blogclient.ErrUpstreamUnavailable)

	_, err = svc.Featured(context.Background(), "")
	assert.ErrorIs(t, err, blogclient.ErrUpstreamUnavailable)

	_, err = svc.Recent(context.Background(), "", 0)
	assert.ErrorIs(t, err, blogclient.ErrUpstreamUnavailable)
}

func TestPostServiceGetByID(t *testing.T) {
	svc := newService(&fakeSource{posts: rawPosts(3)})

	got, err := svc.GetByID(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "Post 2", got.Title)

	_, err = svc.GetByID(context.Background(), "99")
	assert.True(t, errors.Is(err, blogclient.ErrNotFound))
}

func post(id, title, category string, featured bool, tags ...string) dto.PostDTO {
	return dto.PostDTO{ID: id, Title: title, Excerpt: title + " excerpt", Category: category, Featured: featured, Tags: tags}
}

func TestFilterPosts(t *testing.T) {
	posts := []dto.PostDTO{
		post("1", "Grid layouts", "Design", false, "UI Design"),
		post("2", "Scaling teams", "Business", false, "Performance"),
		post("3", "Hooks in depth", "Development", false, "React", "TypeScript"),
		post("4", "Color theory", "Design", false),
	}

	testCases := []struct {
		name string
		in   ListPostsInput
		want []string
	}{
		{name: "no filter", in: ListPostsInput{}, want: []string{"1", "2", "3", "4"}},
		{name: "all category", in: ListPostsInput{Category: "All"}, want: []string{"1", "2", "3", "4"}},
		{name: "category", in: ListPostsInput{Category: "Design"}, want: []string{"1", "4"}},
		{name: "title match case insensitive", in: ListPostsInput{Query: "HOOKS"}, want: []string{"3"}},
		{name: "excerpt match", in: ListPostsInput{Query: "theory excerpt"}, want: []string{"4"}},
		{name: "category match", in: ListPostsInput{Query: "busi"}, want: []string{"2"}},
		{name: "tag match", in: ListPostsInput{Query: "typescript"}, want: []string{"3"}},
		{name: "query and category", in: ListPostsInput{Query: "ui", Category: "Design"}, want: []string{"1"}},
		{name: "no match", in: ListPostsInput{Query: "kubernetes"}, want: []string{}},
		{name: "unknown category", in: ListPostsInput{Category: "Cooking"}, want: []string{}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := FilterPosts(posts, testCase.in)
			ids := []string{}
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, testCase.want, ids)
		})
	}
}

func TestSelectFeatured(t *testing.T) {
	posts := []dto.PostDTO{
		post("1", "one", "Design", false),
		post("2", "two", "Design", true),
		post("3", "three", "Business", true),
		post("4", "four", "Design", true),
		post("5", "five", "Design", true),
		post("6", "six", "Design", true),
		post("7", "seven", "Design", true),
		post("8", "eight", "Design", true),
	}

	got := SelectFeatured(posts, "")
	require.NotNil(t, got.Featured)
	assert.Equal(t, "2", got.Featured.ID)
	require.Len(t, got.Others, 5)
	assert.Equal(t, "3", got.Others[0].ID)
	assert.Equal(t, "7", got.Others[4].ID)

	got = SelectFeatured(posts, "business")
	assert.Equal(t, "2", got.Featured.ID)
	require.Len(t, got.Others, 1)
	assert.Equal(t, "3", got.Others[0].ID)
}

func TestSelectFeaturedWithoutFeaturedPosts(t *testing.T) {
	got := SelectFeatured([]dto.PostDTO{post("1", "one", "Design", false), post("2", "two", "Design", false)}, "")
	require.NotNil(t, got.Featured)
	assert.Equal(t, "1", got.Featured.ID)
	assert.Empty(t, got.Others)

	got = SelectFeatured(nil, "")
	assert.Nil(t, got.Featured)
	assert.NotNil(t, got.Others)
}

func TestSelectRecent(t *testing.T) {
	posts := []dto.PostDTO{}
	for i := 1; i <= 10; i++ {
		posts = append(posts, post(fmt.Sprint(i), fmt.Sprintf("title %d", i), "Design", i%3 == 0))
	}

	got := SelectRecent(posts, "", 0)
	ids := []string{}
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "2", "4", "5", "7", "8"}, ids)

	got = SelectRecent(posts, "title 8", 3)
	assert.Empty(t, got)

	got = SelectRecent(posts, "title 4", 3)
	require.Len(t, got, 1)
	assert.Equal(t, "4", got[0].ID)
}

func TestSelectFeaturedQueryIgnoresTags(t *testing.T) {
	posts := []dto.PostDTO{
		post("1", "Lead story", "Design", true),
		post("2", "Component libraries", "Development", true, "React"),
		post("3", "React server rendering", "Development", true),
	}

	got := SelectFeatured(posts, "react")
	require.Len(t, got.Others, 1)
	assert.Equal(t, "3", got.Others[0].ID)

	// 목록 검색은 태그도 본다
	assert.Len(t, FilterPosts(posts, ListPostsInput{Query: "react"}), 2)
}

func TestSelectRecentLimitBounds(t *testing.T) {
	posts := []dto.PostDTO{
		post("1", "one", "Design", false),
		post("2", "two", "Design", true),
		post("3", "three", "Design", false),
	}

	var got []dto.PostDTO
	require.NotPanics(t, func() { got = SelectRecent(posts, "", 1<<40) })
	assert.Len(t, got, 2)
	assert.LessOrEqual(t, cap(got), len(posts))

	got = SelectRecent(posts, "", -5)
	assert.Len(t, got, 2)

	got = SelectRecent(posts, "", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}
