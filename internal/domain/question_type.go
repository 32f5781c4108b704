package domain

// QuestionType identifies one of the eleven IELTS Reading question formats.
// The string values are the exact labels persisted in package files.
type QuestionType string

const (
	TypeMultipleChoice          QuestionType = "Multiple Choice"
	TypeTrueFalseNotGiven       QuestionType = "True/False/Not Given"
	TypeYesNoNotGiven           QuestionType = "Yes/No/Not Given"
	TypeMatchingInformation     QuestionType = "Matching Information"
	TypeMatchingHeadings        QuestionType = "Matching Headings"
	TypeMatchingFeatures        QuestionType = "Matching Features"
	TypeMatchingSentenceEndings QuestionType = "Matching Sentence Endings"
	TypeSentenceCompletion      QuestionType = "Sentence Completion"
	TypeSummaryCompletion       QuestionType = "Summary/Table/Flow-chart Completion"
	TypeDiagramLabelCompletion  QuestionType = "Diagram Label Completion"
	TypeShortAnswer             QuestionType = "Short Answer Questions"
)

// AllQuestionTypes lists every supported question type in presentation order.
var AllQuestionTypes = []QuestionType{
	TypeMultipleChoice,
	TypeTrueFalseNotGiven,
	TypeYesNoNotGiven,
	TypeMatchingInformation,
	TypeMatchingHeadings,
	TypeMatchingFeatures,
	TypeMatchingSentenceEndings,
	TypeSentenceCompletion,
	TypeSummaryCompletion,
	TypeDiagramLabelCompletion,
	TypeShortAnswer,
}

// ParseQuestionType resolves a persisted type label to a QuestionType.
func ParseQuestionType(label string) (QuestionType, error) {
	for _, qt := range AllQuestionTypes {
		if string(qt) == label {
			return qt, nil
		}
	}
	return "", NewValidationFailedError("unknown question type: " + label)
}

// IsValid reports whether the type is one of the eleven known variants.
func (qt QuestionType) IsValid() bool {
	for _, known := range AllQuestionTypes {
		if qt == known {
			return true
		}
	}
	return false
}

// FixedTokens returns the closed answer token set for token-based variants,
// or nil when the variant accepts letters or free text instead.
func (qt QuestionType) FixedTokens() []string {
	switch qt {
	case TypeTrueFalseNotGiven:
		return []string{"TRUE", "FALSE", "NOT GIVEN"}
	case TypeYesNoNotGiven:
		return []string{"YES", "NO", "NOT GIVEN"}
	default:
		return nil
	}
}

// IsMatching reports whether answers are option tokens drawn from an
// additional-input option list.
func (qt QuestionType) IsMatching() bool {
	switch qt {
	case TypeMatchingInformation, TypeMatchingHeadings, TypeMatchingFeatures, TypeMatchingSentenceEndings:
		return true
	}
	return false
}

// IsFreeText reports whether answers are free-form candidate text.
func (qt QuestionType) IsFreeText() bool {
	switch qt {
	case TypeSentenceCompletion, TypeSummaryCompletion, TypeDiagramLabelCompletion, TypeShortAnswer:
		return true
	}
	return false
}
