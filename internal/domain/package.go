package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const (
	// MinGroupQuestions and MaxGroupQuestions bound a valid question group.
	MinGroupQuestions = 2
	MaxGroupQuestions = 10
)

// Paragraph is one titled section of a reading passage.
type Paragraph struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ReadingContent is the passage a candidate reads during the exam.
type ReadingContent struct {
	Explanation string      `json:"explanation"`
	Title       string      `json:"title"`
	Paragraphs  []Paragraph `json:"paragraphs"`
}

// Question is a single question with its expected answer. QuestionID is
// assigned once when the owning group is appended to a package and is the
// join key for answer records and feedback.
type Question struct {
	Text       string `json:"text"`
	Answer     string `json:"answer"`
	QuestionID string `json:"question_id"`
}

// IsValid reports whether the question carries both text and an answer.
func (q *Question) IsValid() bool {
	return strings.TrimSpace(q.Text) != "" && strings.TrimSpace(q.Answer) != ""
}

// QuestionInput is raw authoring input for one question, before
// canonicalization and blank filtering.
type QuestionInput struct {
	Text   string
	Answer string
}

// QuestionGroup is a set of questions sharing one type and optional
// auxiliary material.
type QuestionGroup struct {
	Explanation      string           `json:"explanation"`
	Type             QuestionType     `json:"type"`
	Questions        []Question       `json:"questions"`
	AdditionalInputs *AdditionalInput `json:"additional_inputs"`
}

// NewQuestionGroup builds a group from raw authoring input. Questions with
// blank text or blank answer are silently excluded; the surviving set must
// still hold 2-10 questions or construction fails. Answers are stored in the
// canonical form of the group's type.
func NewQuestionGroup(explanation string, qt QuestionType, inputs []QuestionInput, ai *AdditionalInput) (*QuestionGroup, error) {
	if !qt.IsValid() {
		return nil, NewValidationFailedError(fmt.Sprintf("unknown question type: %s", qt))
	}
	if ai != nil && !ai.MatchesType(qt) {
		return nil, NewValidationFailedError(fmt.Sprintf("additional input payload does not match question type %s", qt))
	}

	group := &QuestionGroup{
		Explanation:      explanation,
		Type:             qt,
		AdditionalInputs: ai,
	}
	for _, in := range inputs {
		text := strings.TrimSpace(in.Text)
		answer := strings.TrimSpace(in.Answer)
		if text == "" || answer == "" {
			continue
		}
		canonical, err := canonicalAnswer(qt, answer)
		if err != nil {
			return nil, err
		}
		group.Questions = append(group.Questions, Question{Text: text, Answer: canonical})
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}
	return group, nil
}

// canonicalAnswer converts an authored answer to the stored form of its
// variant: upper-cased letter for multiple choice, one of the fixed tokens
// for TFNG/YNNG, the bare option token for matching types, and the exact
// string for free-text types.
func canonicalAnswer(qt QuestionType, answer string) (string, error) {
	switch {
	case qt == TypeMultipleChoice:
		up := strings.ToUpper(answer)
		if len([]rune(up)) != 1 || !unicode.IsLetter([]rune(up)[0]) {
			return "", NewValidationFailedError(fmt.Sprintf("multiple choice answer must be a single letter, got %q", answer))
		}
		return up, nil
	case qt.FixedTokens() != nil:
		up := strings.ToUpper(answer)
		for _, token := range qt.FixedTokens() {
			if up == token {
				return token, nil
			}
		}
		return "", NewValidationFailedError(fmt.Sprintf("answer %q is not a valid %s token", answer, qt))
	default:
		// Matching answers are already the bare token; free text is stored
		// exactly as authored.
		return answer, nil
	}
}

// Validate checks the group invariants: known type, 2-10 valid questions,
// and an additional-input payload matching the type.
func (g *QuestionGroup) Validate() error {
	if !g.Type.IsValid() {
		return NewValidationFailedError(fmt.Sprintf("unknown question type: %s", g.Type))
	}
	if n := len(g.Questions); n < MinGroupQuestions || n > MaxGroupQuestions {
		return NewValidationFailedError(fmt.Sprintf("question group must have %d-%d valid questions, got %d", MinGroupQuestions, MaxGroupQuestions, n))
	}
	for _, q := range g.Questions {
		if !q.IsValid() {
			return NewValidationFailedError("question text and answer are required")
		}
	}
	if g.AdditionalInputs != nil && !g.AdditionalInputs.MatchesType(g.Type) {
		return NewValidationFailedError(fmt.Sprintf("additional input payload does not match question type %s", g.Type))
	}
	return nil
}

// ReadingPackage is the unit of authoring and persistence: one passage plus
// its ordered question groups.
type ReadingPackage struct {
	PackageID      string          `json:"package_id"`
	ReadingContent ReadingContent  `json:"reading_content"`
	QuestionGroups []QuestionGroup `json:"question_groups"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewReadingPackage creates an empty package with the given identifier.
func NewReadingPackage(packageID string) *ReadingPackage {
	return &ReadingPackage{
		PackageID: packageID,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// AppendGroup validates the group, assigns stable question identifiers from
// the package id and ordinals, and appends it. Identifiers never change
// after this point.
func (p *ReadingPackage) AppendGroup(group *QuestionGroup) error {
	if err := group.Validate(); err != nil {
		return err
	}
	ordinal := len(p.QuestionGroups)
	for i := range group.Questions {
		group.Questions[i].QuestionID = fmt.Sprintf("%s_qg%d_q%d", p.PackageID, ordinal, i)
	}
	p.QuestionGroups = append(p.QuestionGroups, *group)
	return nil
}

// Validate checks the package and every group it owns.
func (p *ReadingPackage) Validate() error {
	if strings.TrimSpace(p.PackageID) == "" {
		return NewValidationFailedError("package ID is required")
	}
	for i := range p.QuestionGroups {
		if err := p.QuestionGroups[i].Validate(); err != nil {
			return NewValidationFailedError(fmt.Sprintf("question group %d: %v", i, err))
		}
	}
	return nil
}

// AllQuestions returns every question in package order.
func (p *ReadingPackage) AllQuestions() []Question {
	var questions []Question
	for _, g := range p.QuestionGroups {
		questions = append(questions, g.Questions...)
	}
	return questions
}

// TotalQuestions counts the questions across all groups.
func (p *ReadingPackage) TotalQuestions() int {
	total := 0
	for _, g := range p.QuestionGroups {
		total += len(g.Questions)
	}
	return total
}
