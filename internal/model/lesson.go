package model

import "time"

// Lesson is a published course unit.
type Lesson struct {
	// ID is the server-issued identifier.
	ID string `json:"_id"`

	// Title is the lesson headline.
	Title string `json:"title"`

	// Instructor is the display name of the lesson's author.
	Instructor string `json:"instructor"`

	// Content is the lesson body.
	Content string `json:"content,omitempty"`

	// Category is an optional subject grouping.
	Category string `json:"category,omitempty"`

	// Likes counts the accounts that liked this lesson.
	Likes int `json:"likes,omitempty"`

	// CreatedAt is when the lesson was published.
	CreatedAt time.Time `json:"createdAt"`
}

// LessonComment is a single comment on a lesson.
type LessonComment struct {
	ID        string    `json:"_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
