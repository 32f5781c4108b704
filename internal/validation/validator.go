package validation

import (
	"regexp"
	"strings"

	"github.com/sinataee/ielts-reading-app/internal/domain"
	"github.com/sinataee/ielts-reading-app/internal/dto"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreateExamRequest validates the create exam request
func (v *Validator) ValidateCreateExamRequest(req *dto.CreateExamRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.PackageID) == "" {
		errs = append(errs, domain.NewMissingFieldError("package_id"))
	} else if !isValidULID(req.PackageID) {
		errs = append(errs, domain.NewInvalidFormatError("package_id", req.PackageID))
	}

	return errs
}

// ValidateRecordAnswerRequest validates the record answer request
func (v *Validator) ValidateRecordAnswerRequest(req *dto.RecordAnswerRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.QuestionID) == "" {
		errs = append(errs, domain.NewMissingFieldError("question_id"))
	}
	if len(req.Answer) > 2000 {
		errs = append(errs, domain.NewOutOfRangeError("answer", len(req.Answer), 0, 2000))
	}

	return errs
}

// ValidateRecordHighlightRequest validates the record highlight request.
// A null color is legal: it logs the removal of a highlight.
func (v *Validator) ValidateRecordHighlightRequest(req *dto.RecordHighlightRequest) domain.ValidationErrors {
	var errs domain.ValidationErrors

	if strings.TrimSpace(req.SelectionRange) == "" {
		errs = append(errs, domain.NewMissingFieldError("selection_range"))
	}
	if req.Color != nil && len(*req.Color) > 32 {
		errs = append(errs, domain.NewOutOfRangeError("color", len(*req.Color), 0, 32))
	}

	return errs
}

var ulidPattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

func isValidULID(s string) bool {
	return ulidPattern.MatchString(s)
}
