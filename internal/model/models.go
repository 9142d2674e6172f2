// internal/model/models.go
package model

// Repository represents the cached metadata of a GitHub repository.
// Stars is exposed as "stars" rather than GitHub's "stargazers_count".
type Repository struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	FullName    string  `json:"full_name"`
	Stars       int     `json:"stars"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	Language    *string `json:"language"`
}

// RepositoryPage is the list response envelope.
type RepositoryPage struct {
	Pagination Pagination   `json:"pagination"`
	Data       []Repository `json:"data"`
}
