package models

import "time"

// ExamAttempt is the database row shape for one completed exam session.
type ExamAttempt struct {
	ID              string    `db:"id"`
	SessionID       string    `db:"session_id"`
	PackageID       string    `db:"package_id"`
	CorrectCount    int       `db:"correct_count"`
	IncorrectCount  int       `db:"incorrect_count"`
	UnansweredCount int       `db:"unanswered_count"`
	TotalQuestions  int       `db:"total_questions"`
	BandScore       float64   `db:"band_score"`
	EndReason       string    `db:"end_reason"`
	StartedAt       time.Time `db:"started_at"`
	EndedAt         time.Time `db:"ended_at"`
	CreatedAt       time.Time `db:"created_at"`
}
