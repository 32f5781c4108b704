package dto

import (
	"time"

	"github.com/sinataee/ielts-reading-app/internal/domain"
)

// ParagraphRequest is one authored passage section.
type ParagraphRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// QuestionRequest is one authored question with its expected answer.
type QuestionRequest struct {
	Text   string `json:"text"`
	Answer string `json:"answer"`
}

// QuestionGroupRequest is one authored question group.
type QuestionGroupRequest struct {
	Explanation    string                 `json:"explanation"`
	Type           string                 `json:"type"`
	Questions      []QuestionRequest      `json:"questions"`
	AdditionalData *domain.AdditionalData `json:"additional_data,omitempty"`
}

// CreatePackageRequest assembles a complete reading package.
type CreatePackageRequest struct {
	Explanation    string                 `json:"explanation"`
	Title          string                 `json:"title"`
	Paragraphs     []ParagraphRequest     `json:"paragraphs"`
	QuestionGroups []QuestionGroupRequest `json:"question_groups"`
}

// PackageResponse summarizes a stored package.
type PackageResponse struct {
	PackageID      string    `json:"package_id"`
	Title          string    `json:"title"`
	GroupCount     int       `json:"group_count"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}
