package api

import (
	"context"

	"github.com/htran/lms-console/internal/model"
)

// CreateLessonInput is the payload for publishing a lesson.
type CreateLessonInput struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category,omitempty"`
}

// CommentInput is the payload for commenting on a lesson.
type CommentInput struct {
	Text string `json:"text" validate:"required"`
}

// ListLessons returns the course catalog.
func (c *Client) ListLessons(ctx context.Context) ([]model.Lesson, error) {
	var wrapper struct {
		Lessons []model.Lesson `json:"lessons"`
	}
	if err := c.get(ctx, "/lessons", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Lessons, nil
}

// GetLesson returns a single lesson by id.
func (c *Client) GetLesson(ctx context.Context, id string) (*model.Lesson, error) {
	var wrapper struct {
		Lesson model.Lesson `json:"lesson"`
	}
	if err := c.get(ctx, "/lessons/"+id, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Lesson, nil
}

// CreateLesson publishes a new lesson. The backend fans the event out
// on the realtime channel to every connected user.
func (c *Client) CreateLesson(ctx context.Context, in CreateLessonInput) (*model.Lesson, error) {
	if err := c.validateInput(in); err != nil {
		return nil, err
	}
	var wrapper struct {
		Lesson model.Lesson `json:"lesson"`
	}
	if err := c.post(ctx, "/lessons", in, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Lesson, nil
}

// DeleteLesson removes a lesson.
func (c *Client) DeleteLesson(ctx context.Context, id string) error {
	return c.delete(ctx, "/lessons/"+id)
}

// LikeLesson toggles the current user's like on a lesson and returns
// the updated lesson.
func (c *Client) LikeLesson(ctx context.Context, id string) (*model.Lesson, error) {
	var wrapper struct {
		Lesson model.Lesson `json:"lesson"`
	}
	if err := c.patch(ctx, "/lessons/"+id+"/like", nil, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Lesson, nil
}

// ListLessonComments returns the discussion thread for a lesson.
func (c *Client) ListLessonComments(ctx context.Context, id string) ([]model.LessonComment, error) {
	var wrapper struct {
		Comments []model.LessonComment `json:"comments"`
	}
	if err := c.get(ctx, "/lessons/"+id+"/comments", &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Comments, nil
}

// AddLessonComment posts a comment on a lesson.
func (c *Client) AddLessonComment(ctx context.Context, id string, in CommentInput) (*model.LessonComment, error) {
	if err := c.validateInput(in); err != nil {
		return nil, err
	}
	var wrapper struct {
		Comment model.LessonComment `json:"comment"`
	}
	if err := c.post(ctx, "/lessons/"+id+"/comments", in, &wrapper); err != nil {
		return nil, err
	}
	return &wrapper.Comment, nil
}

// DeleteLessonComment removes a comment from a lesson.
func (c *Client) DeleteLessonComment(ctx context.Context, lessonID, commentID string) error {
	return c.delete(ctx, "/lessons/"+lessonID+"/comments/"+commentID)
}
