package services

import (
	"regexp"
	"strings"

	"employee-stats/config"
	"employee-stats/models"
)

// Normalizer buckets free-text organisational fields into coarser labels.
type Normalizer struct {
	rules config.Rules
	// cut matches the first branch marker or separator and everything after it.
	cut *regexp.Regexp
}

// NewNormalizer compiles the truncation pattern for rules.
func NewNormalizer(rules config.Rules) *Normalizer {
	tokens := make([]string, 0, len(rules.BranchMarkers)+len(rules.Separators))
	for _, t := range append(append([]string{}, rules.BranchMarkers...), rules.Separators...) {
		if t != "" {
			tokens = append(tokens, regexp.QuoteMeta(t))
		}
	}

	n := &Normalizer{rules: rules}
	if len(tokens) > 0 {
		n.cut = regexp.MustCompile(`(?s)(?:` + strings.Join(tokens, "|") + `).*`)
	}
	return n
}

// Normalize returns the bucket label for value.
// "DIGITAL TECHNOLOGY - JAKARTA" becomes "DIGITAL TECHNOLOGY"; an empty value,
// or one that is empty after truncation, becomes the Others label.
func (n *Normalizer) Normalize(value string) string {
	if value == "" {
		return n.rules.OthersLabel
	}
	if n.cut != nil {
		if loc := n.cut.FindStringIndex(value); loc != nil {
			value = value[:loc[0]]
		}
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return n.rules.OthersLabel
	}
	return value
}

// NormalizeRecord returns a copy of rec with every organisational field bucketed.
func (n *Normalizer) NormalizeRecord(rec models.EmployeeRecord) models.EmployeeRecord {
	rec.Site = n.Normalize(rec.Site)
	rec.Department = n.Normalize(rec.Department)
	rec.Division = n.Normalize(rec.Division)
	rec.Directorate = n.Normalize(rec.Directorate)
	rec.Grouping = n.Normalize(rec.Grouping)
	return rec
}

// NormalizeAll buckets every record; the input slice is left untouched.
func (n *Normalizer) NormalizeAll(records []models.EmployeeRecord) []models.EmployeeRecord {
	out := make([]models.EmployeeRecord, len(records))
	for i, rec := range records {
		out[i] = n.NormalizeRecord(rec)
	}
	return out
}

// DepartmentBucket picks the department label for rec's classification:
// division for head office, department for branch, Others otherwise.
func (n *Normalizer) DepartmentBucket(rec models.EmployeeRecord) string {
	switch rec.Classification {
	case n.rules.HeadOffice:
		return rec.Division
	case n.rules.Branch:
		return rec.Department
	default:
		return n.rules.OthersLabel
	}
}
