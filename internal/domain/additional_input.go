package domain

import (
	"regexp"
	"strings"
)

// gapMarker matches the [BLANK] and [1], [2], ... gap markers used by
// summary, table and flow-chart completion material.
var gapMarker = regexp.MustCompile(`\[(?:\d+|BLANK)\]`)

// arrowSplit splits a flow-chart line on → or -> arrows.
var arrowSplit = regexp.MustCompile(`\s*(?:→|->)\s*`)

// TableData is a 2-D grid of cell strings for table completion material.
type TableData struct {
	Rows    int        `json:"rows"`
	Cols    int        `json:"cols"`
	Content [][]string `json:"content"`
}

// Validate checks that the declared dimensions match the cell grid.
func (t *TableData) Validate() error {
	if t.Rows <= 0 || t.Cols <= 0 {
		return NewValidationFailedError("table dimensions must be positive")
	}
	if len(t.Content) != t.Rows {
		return NewValidationFailedError("table content row count does not match declared rows")
	}
	for _, row := range t.Content {
		if len(row) != t.Cols {
			return NewValidationFailedError("table content column count does not match declared cols")
		}
	}
	return nil
}

// AdditionalData carries the variant-specific payload of an AdditionalInput.
// Exactly one field group is populated, keyed by the owning group's type.
type AdditionalData struct {
	InfoList           []string   `json:"infoList,omitempty"`
	HeadingList        []string   `json:"headingList,omitempty"`
	FeatureList        []string   `json:"featureList,omitempty"`
	SentenceEndingList []string   `json:"sentenceEndingList,omitempty"`
	SummaryData        string     `json:"summaryData,omitempty"`
	TableData          *TableData `json:"tableData,omitempty"`
	FlowchartData      string     `json:"flowchartData,omitempty"`
	DiagramImage       string     `json:"diagramImage,omitempty"`
}

// AdditionalInput is optional auxiliary material attached to a question group.
type AdditionalInput struct {
	InputType string         `json:"input_type"`
	Data      AdditionalData `json:"data"`
}

// NewAdditionalInput tags the payload with the owning group's type label.
func NewAdditionalInput(qt QuestionType, data AdditionalData) *AdditionalInput {
	return &AdditionalInput{InputType: string(qt), Data: data}
}

// MatchesType reports whether the populated payload shape is legal for the
// given question type. Summary/Table/Flow-chart completion accepts any one of
// its three payloads; types without auxiliary material accept none.
func (ai *AdditionalInput) MatchesType(qt QuestionType) bool {
	if ai == nil {
		return true
	}
	d := ai.Data
	switch qt {
	case TypeMatchingInformation:
		return len(d.InfoList) > 0 && d.onlyPopulated("infoList")
	case TypeMatchingHeadings:
		return len(d.HeadingList) > 0 && d.onlyPopulated("headingList")
	case TypeMatchingFeatures:
		return len(d.FeatureList) > 0 && d.onlyPopulated("featureList")
	case TypeMatchingSentenceEndings:
		return len(d.SentenceEndingList) > 0 && d.onlyPopulated("sentenceEndingList")
	case TypeSummaryCompletion:
		switch {
		case d.SummaryData != "":
			return d.onlyPopulated("summaryData")
		case d.TableData != nil:
			return d.onlyPopulated("tableData") && d.TableData.Validate() == nil
		case d.FlowchartData != "":
			return d.onlyPopulated("flowchartData")
		}
		return false
	case TypeDiagramLabelCompletion:
		return d.DiagramImage != "" && d.onlyPopulated("diagramImage")
	default:
		return d.populatedKeys() == nil
	}
}

// ForType returns the input when its shape matches qt, nil otherwise.
// Consumers treat a mismatched payload as absent rather than guessing.
func (ai *AdditionalInput) ForType(qt QuestionType) *AdditionalInput {
	if ai == nil || !ai.MatchesType(qt) {
		return nil
	}
	return ai
}

func (d AdditionalData) populatedKeys() []string {
	var keys []string
	if len(d.InfoList) > 0 {
		keys = append(keys, "infoList")
	}
	if len(d.HeadingList) > 0 {
		keys = append(keys, "headingList")
	}
	if len(d.FeatureList) > 0 {
		keys = append(keys, "featureList")
	}
	if len(d.SentenceEndingList) > 0 {
		keys = append(keys, "sentenceEndingList")
	}
	if d.SummaryData != "" {
		keys = append(keys, "summaryData")
	}
	if d.TableData != nil {
		keys = append(keys, "tableData")
	}
	if d.FlowchartData != "" {
		keys = append(keys, "flowchartData")
	}
	if d.DiagramImage != "" {
		keys = append(keys, "diagramImage")
	}
	return keys
}

func (d AdditionalData) onlyPopulated(key string) bool {
	keys := d.populatedKeys()
	return len(keys) == 1 && keys[0] == key
}

// OptionList returns the labeled option list for matching variants, nil for
// every other payload shape.
func (d AdditionalData) OptionList() []string {
	switch {
	case len(d.InfoList) > 0:
		return d.InfoList
	case len(d.HeadingList) > 0:
		return d.HeadingList
	case len(d.FeatureList) > 0:
		return d.FeatureList
	case len(d.SentenceEndingList) > 0:
		return d.SentenceEndingList
	}
	return nil
}

// OptionTokens extracts the bare answer token from each labeled option,
// e.g. "A. Paragraph about glaciers" yields "A". Items without a label
// separator are returned whole.
func (d AdditionalData) OptionTokens() []string {
	list := d.OptionList()
	if list == nil {
		return nil
	}
	tokens := make([]string, 0, len(list))
	for _, item := range list {
		if idx := strings.Index(item, "."); idx > 0 {
			tokens = append(tokens, strings.TrimSpace(item[:idx]))
		} else {
			tokens = append(tokens, strings.TrimSpace(item))
		}
	}
	return tokens
}

// GapCount counts the [n]/[BLANK] markers across whichever completion
// payload is populated.
func (d AdditionalData) GapCount() int {
	count := len(gapMarker.FindAllString(d.SummaryData, -1))
	count += len(gapMarker.FindAllString(d.FlowchartData, -1))
	if d.TableData != nil {
		for _, row := range d.TableData.Content {
			for _, cell := range row {
				count += len(gapMarker.FindAllString(cell, -1))
			}
		}
	}
	return count
}

// FlowchartRow is one parsed line of flow-chart material: either a sequence
// of boxes connected left to right, or a vertical connector between rows.
type FlowchartRow struct {
	Boxes     []string
	Connector bool
}

// HasGap reports whether any box in the row contains a gap marker.
func (r FlowchartRow) HasGap() bool {
	for _, box := range r.Boxes {
		if gapMarker.MatchString(box) {
			return true
		}
	}
	return false
}

// FlowchartRows parses the flow-chart mini-format line by line. Blank lines
// are skipped; ↓ / v lines become connector rows; lines containing arrows
// split into multiple boxes.
func (d AdditionalData) FlowchartRows() []FlowchartRow {
	if d.FlowchartData == "" {
		return nil
	}
	var rows []FlowchartRow
	for _, line := range strings.Split(d.FlowchartData, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "↓" || line == "v" || line == "V" {
			rows = append(rows, FlowchartRow{Connector: true})
			continue
		}
		var boxes []string
		for _, part := range arrowSplit.Split(line, -1) {
			if part = strings.TrimSpace(part); part != "" {
				boxes = append(boxes, part)
			}
		}
		if len(boxes) > 0 {
			rows = append(rows, FlowchartRow{Boxes: boxes})
		}
	}
	return rows
}
