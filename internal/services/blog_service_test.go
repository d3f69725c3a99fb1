package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio.dev/internal/upstream"
)

type fakeDevTo struct {
	articles []upstream.DevToArticle
	err      error
}

func (f *fakeDevTo) Articles(context.Context, string) ([]upstream.DevToArticle, error) {
	return f.articles, f.err
}

func articles(n int) []upstream.DevToArticle {
	out := make([]upstream.DevToArticle, n)
	for i := range out {
		out[i] = upstream.DevToArticle{
			ID:                     i + 1,
			Title:                  fmt.Sprintf("Post %d", i+1),
			CoverImage:             "https://img/1.png",
			ReadingTimeMinutes:     3,
			PositiveReactionsCount: 7,
			CommentsCount:          2,
		}
	}
	return out
}

func TestBlogService_Reshape(t *testing.T) {
	api := &fakeDevTo{articles: articles(1)}
	api.articles[0].TagList = upstream.TagList{"go"}

	blogs, err := NewBlogService(api, nil, 0).Latest(context.Background(), "ben", 0)
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	b := blogs[0]
	assert.Equal(t, "https://img/1.png", b.CoverImage)
	assert.Equal(t, 3, b.ReadingTimeMinutes)
	assert.Equal(t, 7, b.Reactions)
	assert.Equal(t, 2, b.Comments)
	assert.Equal(t, []string{"go"}, b.Tags)
}

func TestBlogService_NilTagsBecomeEmpty(t *testing.T) {
	blogs, err := NewBlogService(&fakeDevTo{articles: articles(1)}, nil, 0).Latest(context.Background(), "ben", 0)
	require.NoError(t, err)
	assert.NotNil(t, blogs[0].Tags)
}

func TestBlogService_Limit(t *testing.T) {
	svc := NewBlogService(&fakeDevTo{articles: articles(10)}, nil, 0)
	tests := []struct {
		limit, want int
	}{
		{0, DefaultBlogLimit},
		{-5, 1},
		{3, 3},
		{10, 10},
		{50, MaxBlogLimit},
	}
	for _, tt := range tests {
		blogs, err := svc.Latest(context.Background(), "ben", tt.limit)
		require.NoError(t, err)
		assert.Len(t, blogs, tt.want, "limit %d", tt.limit)
	}
}

func TestBlogService_Errors(t *testing.T) {
	_, err := NewBlogService(&fakeDevTo{}, nil, 0).Latest(context.Background(), " ", 0)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))

	api := &fakeDevTo{err: &upstream.StatusError{Service: "devto", StatusCode: 404}}
	_, err = NewBlogService(api, nil, 0).Latest(context.Background(), "ghost", 0)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
	assert.Contains(t, err.Error(), "dev.to user not found")

	api = &fakeDevTo{err: &upstream.StatusError{Service: "devto", StatusCode: 429, RateLimited: true}}
	_, err = NewBlogService(api, nil, 0).Latest(context.Background(), "ben", 0)
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(err))
}
