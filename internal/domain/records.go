package domain

import "time"

// AnswerRecord tracks a candidate's answer to one question. One record
// exists per question for the lifetime of a session; UserAnswer is nil until
// the candidate answers and is overwritten in place on every change.
type AnswerRecord struct {
	QuestionID string    `json:"question_id"`
	UserAnswer *string   `json:"user_answer"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewAnswerRecord creates an unanswered record for a question.
func NewAnswerRecord(questionID string) *AnswerRecord {
	return &AnswerRecord{
		QuestionID: questionID,
		Timestamp:  time.Now(),
	}
}

// Answered reports whether a non-empty answer has been recorded.
func (r *AnswerRecord) Answered() bool {
	return r.UserAnswer != nil && *r.UserAnswer != ""
}

// HighlightRecord is one entry in the append-only highlight audit log.
// Removal actions are logged with an empty color and Removal set, never
// dropped.
type HighlightRecord struct {
	SelectionRange string    `json:"selection_range"`
	Color          string    `json:"color,omitempty"`
	Removal        bool      `json:"removal,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
