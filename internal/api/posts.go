package api

import (
	"context"

	"github.com/htran/lms-console/internal/model"
)

// CreatePostInput is the payload for a feed announcement.
type CreatePostInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// CreateQuizInput is the payload for creating a quiz.
type CreateQuizInput struct {
	Title    string `json:"title" validate:"required"`
	LessonID string `json:"lesson,omitempty"`
}

// ListPosts returns the announcement feed.
func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	var wrapper struct {
		Posts []model.Post `json:"posts"`
	}
	if err := c.get(ctx, "/posts", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Posts, nil
}

// CreatePost publishes a new announcement.
func (c *Client) CreatePost(ctx context.Context, in CreatePostInput) (*model.Post, error) {
	if err := c.validateInput(in); err != nil {
		return nil, err
	}
	var wrapper struct {
		Post model.Post `json:"post"`
	}
	if err := c.post(ctx, "/posts", in, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Post, nil
}

// DeletePost removes an announcement.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.delete(ctx, "/posts/"+id)
}

// ListQuizzes returns every quiz.
func (c *Client) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	var wrapper struct {
		Quizzes []model.Quiz `json:"quizzes"`
	}
	if err := c.get(ctx, "/quizzes", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Quizzes, nil
}

// CreateQuiz creates a new quiz.
func (c *Client) CreateQuiz(ctx context.Context, in CreateQuizInput) (*model.Quiz, error) {
	if err := c.validateInput(in); err != nil {
		return nil, err
	}
	var wrapper struct {
		Quiz model.Quiz `json:"quiz"`
	}
	if err := c.post(ctx, "/quizzes", in, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Quiz, nil
}

// DeleteQuiz removes a quiz.
func (c *Client) DeleteQuiz(ctx context.Context, id string) error {
	return c.delete(ctx, "/quizzes/"+id)
}

// GetDashboardStats returns the aggregate counters for the home screen.
func (c *Client) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var wrapper struct {
		Stats model.DashboardStats `json:"stats"`
	}
	if err := c.get(ctx, "/dashboard/stats", &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Stats, nil
}
