package validation

import (
	"strings"
	"testing"

	"github.com/sinataee/ielts-reading-app/internal/dto"

	"github.com/stretchr/testify/assert"
)

func TestValidateCreateExamRequest(t *testing.T) {
	v := NewValidator()

	t.Run("valid ULID", func(t *testing.T) {
		errs := v.ValidateCreateExamRequest(&dto.CreateExamRequest{PackageID: "01ARZ3NDEKTSV4RRFFQ69G5FAV"})
		assert.Empty(t, errs)
	})

	t.Run("missing package id", func(t *testing.T) {
		errs := v.ValidateCreateExamRequest(&dto.CreateExamRequest{})
		assert.Len(t, errs, 1)
		assert.Equal(t, "package_id", errs[0].Field)
	})

	t.Run("whitespace package id", func(t *testing.T) {
		errs := v.ValidateCreateExamRequest(&dto.CreateExamRequest{PackageID: "   "})
		assert.Len(t, errs, 1)
	})

	t.Run("malformed package id", func(t *testing.T) {
		errs := v.ValidateCreateExamRequest(&dto.CreateExamRequest{PackageID: "not-a-ulid"})
		assert.Len(t, errs, 1)
		assert.Equal(t, "package_id", errs[0].Field)
	})

	t.Run("lowercase ulid rejected", func(t *testing.T) {
		errs := v.ValidateCreateExamRequest(&dto.CreateExamRequest{PackageID: "01arz3ndektsv4rrffq69g5fav"})
		assert.Len(t, errs, 1)
	})
}

func TestValidateRecordAnswerRequest(t *testing.T) {
	v := NewValidator()

	t.Run("valid", func(t *testing.T) {
		errs := v.ValidateRecordAnswerRequest(&dto.RecordAnswerRequest{QuestionID: "PKG_qg0_q0", Answer: "Paris"})
		assert.Empty(t, errs)
	})

	t.Run("empty answer is legal", func(t *testing.T) {
		// Clearing an answer is a valid action.
		errs := v.ValidateRecordAnswerRequest(&dto.RecordAnswerRequest{QuestionID: "PKG_qg0_q0"})
		assert.Empty(t, errs)
	})

	t.Run("missing question id", func(t *testing.T) {
		errs := v.ValidateRecordAnswerRequest(&dto.RecordAnswerRequest{Answer: "Paris"})
		assert.Len(t, errs, 1)
		assert.Equal(t, "question_id", errs[0].Field)
	})

	t.Run("oversized answer", func(t *testing.T) {
		errs := v.ValidateRecordAnswerRequest(&dto.RecordAnswerRequest{
			QuestionID: "PKG_qg0_q0",
			Answer:     strings.Repeat("a", 2001),
		})
		assert.Len(t, errs, 1)
		assert.Equal(t, "answer", errs[0].Field)
	})
}

func TestValidateRecordHighlightRequest(t *testing.T) {
	v := NewValidator()
	yellow := "yellow"

	t.Run("valid", func(t *testing.T) {
		errs := v.ValidateRecordHighlightRequest(&dto.RecordHighlightRequest{SelectionRange: "p1:10-25", Color: &yellow})
		assert.Empty(t, errs)
	})

	t.Run("null color is a removal", func(t *testing.T) {
		errs := v.ValidateRecordHighlightRequest(&dto.RecordHighlightRequest{SelectionRange: "p1:10-25"})
		assert.Empty(t, errs)
	})

	t.Run("missing selection range", func(t *testing.T) {
		errs := v.ValidateRecordHighlightRequest(&dto.RecordHighlightRequest{Color: &yellow})
		assert.Len(t, errs, 1)
		assert.Equal(t, "selection_range", errs[0].Field)
	})

	t.Run("oversized color", func(t *testing.T) {
		long := strings.Repeat("x", 33)
		errs := v.ValidateRecordHighlightRequest(&dto.RecordHighlightRequest{SelectionRange: "p1:0-5", Color: &long})
		assert.Len(t, errs, 1)
	})
}
