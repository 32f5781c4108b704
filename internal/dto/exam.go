package dto

import "github.com/sinataee/ielts-reading-app/internal/evaluation"

// CreateExamRequest opens a new exam session over a stored package.
type CreateExamRequest struct {
	PackageID string `json:"package_id"`
}

// ExamResponse describes the observable state of one exam session.
type ExamResponse struct {
	SessionID        string `json:"session_id"`
	PackageID        string `json:"package_id"`
	State            string `json:"state"`
	RemainingSeconds int    `json:"remaining_seconds"`
	EndReason        string `json:"end_reason,omitempty"`
}

// RecordAnswerRequest overwrites the candidate's answer to one question.
type RecordAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// RecordHighlightRequest logs one highlight action. A null color logs the
// removal of a highlight annotation.
type RecordHighlightRequest struct {
	SelectionRange string  `json:"selection_range"`
	Color          *string `json:"color"`
}

// FeedbackItemResponse is the per-question outcome in an exported report.
type FeedbackItemResponse struct {
	QuestionID    string  `json:"question_id"`
	IsCorrect     bool    `json:"is_correct"`
	CorrectAnswer string  `json:"correct_answer"`
	UserAnswer    *string `json:"user_answer"`
}

// EvaluationReport is the exported evaluation result for an ended session.
// Reports are generated on demand and never persisted automatically.
type EvaluationReport struct {
	SessionID           string                      `json:"session_id"`
	PackageID           string                      `json:"package_id"`
	CorrectCount        int                         `json:"correct_count"`
	IncorrectCount      int                         `json:"incorrect_count"`
	UnansweredCount     int                         `json:"unanswered_count"`
	TotalQuestions      int                         `json:"total_questions"`
	BandScore           float64                     `json:"band_score"`
	Interpretation      string                      `json:"interpretation"`
	EndReason           string                      `json:"end_reason"`
	PerQuestionFeedback []FeedbackItemResponse      `json:"per_question_feedback"`
	TypeStatistics      []evaluation.TypeStatistics `json:"type_statistics"`
}
