package dto

// FilterItem represents a single filter option with its count
type FilterItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryFilterDTO represents the response for category filters.
// Names starts with "All" followed by categories in order of first appearance.
type CategoryFilterDTO struct {
	Names []string     `json:"names"`
	Items []FilterItem `json:"items"`
}

// TagFilterDTO represents the response for tag filters
type TagFilterDTO struct {
	Items []FilterItem `json:"items"`
}
