// Package evaluation scores a candidate's submitted answers against a
// reading package. Evaluation is a pure function of its inputs: no I/O, and
// repeated calls on the same package and records yield identical results.
package evaluation

import (
	"strings"

	"github.com/sinataee/ielts-reading-app/internal/domain"
)

var punctuationStripper = strings.NewReplacer(
	".", "", ",", "", "!", "", "?", "", ";", "", ":", "",
)

// Normalize prepares an answer for comparison: lower-case, trim surrounding
// whitespace, and strip sentence punctuation in any position. The same form
// is applied to stored answers and candidate answers of every variant.
func Normalize(answer string) string {
	return punctuationStripper.Replace(strings.ToLower(strings.TrimSpace(answer)))
}

// Evaluate walks every question in package order, compares the candidate's
// recorded answer in normalized form, and derives the band score from the
// raw correct count. A missing record or an absent/empty answer counts as
// unanswered, not as an error.
func Evaluate(pkg *domain.ReadingPackage, records []*domain.AnswerRecord) *domain.EvaluationResult {
	lookup := make(map[string]*domain.AnswerRecord, len(records))
	for _, rec := range records {
		lookup[rec.QuestionID] = rec
	}

	result := &domain.EvaluationResult{}
	for _, question := range pkg.AllQuestions() {
		feedback := domain.FeedbackItem{
			QuestionID:    question.QuestionID,
			CorrectAnswer: question.Answer,
		}

		rec, ok := lookup[question.QuestionID]
		if ok {
			feedback.UserAnswer = rec.UserAnswer
		}
		if !ok || !rec.Answered() {
			result.UnansweredCount++
		} else if Normalize(*rec.UserAnswer) == Normalize(question.Answer) {
			feedback.IsCorrect = true
			result.CorrectCount++
		} else {
			result.IncorrectCount++
		}

		result.TotalQuestions++
		result.PerQuestionFeedback = append(result.PerQuestionFeedback, feedback)
	}

	result.BandScore = BandScore(result.CorrectCount)
	return result
}

// TypeStatistics aggregates total and correct counts per question type.
type TypeStatistics struct {
	Type    domain.QuestionType `json:"type"`
	Total   int                 `json:"total"`
	Correct int                 `json:"correct"`
}

// StatisticsByType breaks an evaluation down by question type, in package
// group order.
func StatisticsByType(pkg *domain.ReadingPackage, result *domain.EvaluationResult) []TypeStatistics {
	correct := make(map[string]bool, len(result.PerQuestionFeedback))
	for _, fb := range result.PerQuestionFeedback {
		correct[fb.QuestionID] = fb.IsCorrect
	}

	index := make(map[domain.QuestionType]int)
	var stats []TypeStatistics
	for _, group := range pkg.QuestionGroups {
		i, ok := index[group.Type]
		if !ok {
			i = len(stats)
			index[group.Type] = i
			stats = append(stats, TypeStatistics{Type: group.Type})
		}
		for _, q := range group.Questions {
			stats[i].Total++
			if correct[q.QuestionID] {
				stats[i].Correct++
			}
		}
	}
	return stats
}
