package models

// PageRequest represents the request to scaffold a page
type PageRequest struct {
	Title string `json:"title"`
	Path  string `json:"path"`
	// BodyHTML replaces the placeholder paragraph when set.
	BodyHTML string `json:"-"`
}

// PageResult describes a written page
type PageResult struct {
	Path  string `json:"path"`
	Title string `json:"title"`
	Date  string `json:"date"`
}
