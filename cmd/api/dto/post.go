package dto

// PostDTO is the UI-ready display post served to the front-end.
// id, title and description are copied from the upstream record; everything
// else is derived or synthesized by the enrichment step.
type PostDTO struct {
	ID           string   `json:"id" example:"5"`
	Title        string   `json:"title"`
	Excerpt      string   `json:"excerpt"`
	Description  string   `json:"description"`
	Content      string   `json:"content"`
	Image        string   `json:"image" example:"https://picsum.photos/id/237/200/300"`
	Author       string   `json:"author" example:"Lisa Park"`
	AuthorAvatar string   `json:"authorAvatar" example:"https://i.pravatar.cc/200?img=12"`
	Time         string   `json:"time" example:"4 min read"`
	Date         string   `json:"date" example:"2024-06-17"`
	Category     string   `json:"category" example:"Design"`
	Tags         []string `json:"tags"`
	Featured     bool     `json:"featured"`
}

// FeaturedPostsDTO backs the hero section: one lead post plus other featured posts.
type FeaturedPostsDTO struct {
	Featured *PostDTO  `json:"featured"`
	Others   []PostDTO `json:"others"`
}
