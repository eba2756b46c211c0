package model

import "time"

// Post is an announcement or blog entry on the platform feed.
type Post struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Quiz is an assessment attached to the course catalog.
type Quiz struct {
	ID            string    `json:"_id"`
	Title         string    `json:"title"`
	LessonID      string    `json:"lesson,omitempty"`
	QuestionCount int       `json:"questionCount,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DashboardStats is the aggregate counters shown on the home screen.
type DashboardStats struct {
	Users   int `json:"users"`
	Lessons int `json:"lessons"`
	Posts   int `json:"posts"`
	Quizzes int `json:"quizzes"`
}
