package upstream

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
)

// DefaultDevToURL is the public dev.to API.
const DefaultDevToURL = "https://dev.to/api"

// DevToPageSize is the fixed number of articles requested.
const DevToPageSize = 10

// DevToArticle is the subset of /articles entries we use.
type DevToArticle struct {
	ID                     int     `json:"id"`
	Title                  string  `json:"title"`
	Description            string  `json:"description"`
	URL                    string  `json:"url"`
	CoverImage             string  `json:"cover_image"`
	PublishedAt            string  `json:"published_at"`
	ReadingTimeMinutes     int     `json:"reading_time_minutes"`
	TagList                TagList `json:"tag_list"`
	PositiveReactionsCount int     `json:"positive_reactions_count"`
	CommentsCount          int     `json:"comments_count"`
}

// TagList accepts either a JSON array or a comma separated string; the
// listing endpoint and the single article endpoint disagree.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	out := make([]string, 0)
	for _, tag := range strings.Split(joined, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	*t = out
	return nil
}

// DevToClient talks to the dev.to API.
type DevToClient struct {
	http fastshot.ClientHttpMethods
}

// NewDevToClient creates a client.
func NewDevToClient(baseURL string, timeout time.Duration) *DevToClient {
	if baseURL == "" {
		baseURL = DefaultDevToURL
	}
	return &DevToClient{http: newClient(baseURL, timeout, "")}
}

const devtoService = "devto"

// Articles lists the user's published articles, newest first.
func (c *DevToClient) Articles(ctx context.Context, username string) ([]DevToArticle, error) {
	start := time.Now()
	resp, err := c.http.GET("/articles").
		Context().Set(ctx).
		Query().AddParam("username", username).
		Query().AddParam("per_page", strconv.Itoa(DevToPageSize)).
		Send()

	var articles []DevToArticle
	if err := decode(devtoService, start, resp, err, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}
