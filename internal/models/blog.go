package models

// Blog is a dev.to article reshaped for the front end
type Blog struct {
	ID                 int      `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	URL                string   `json:"url"`
	CoverImage         string   `json:"coverImage,omitempty"`
	PublishedAt        string   `json:"publishedAt"`
	ReadingTimeMinutes int      `json:"readingTimeMinutes"`
	Tags               []string `json:"tags"`
	Reactions          int      `json:"reactions"`
	Comments           int      `json:"comments"`
}
