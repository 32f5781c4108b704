package domain

// FeedbackItem is the per-question outcome of an evaluation.
type FeedbackItem struct {
	QuestionID    string  `json:"question_id"`
	IsCorrect     bool    `json:"is_correct"`
	CorrectAnswer string  `json:"correct_answer"`
	UserAnswer    *string `json:"user_answer"`
}

// EvaluationResult aggregates per-question feedback with the derived band
// score. Results are computed fresh on every evaluation call and never
// mutated afterwards.
type EvaluationResult struct {
	CorrectCount        int            `json:"correct_count"`
	IncorrectCount      int            `json:"incorrect_count"`
	UnansweredCount     int            `json:"unanswered_count"`
	TotalQuestions      int            `json:"total_questions"`
	BandScore           float64        `json:"band_score"`
	PerQuestionFeedback []FeedbackItem `json:"per_question_feedback"`
}
