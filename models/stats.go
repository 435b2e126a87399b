package models

import (
	"time"

	"github.com/google/uuid"
)

// Dimension names one categorical breakdown of the resolved records.
type Dimension string

const (
	DimensionDepartment  Dimension = "department"
	DimensionSite        Dimension = "site"
	DimensionDirectorate Dimension = "directorate"
	DimensionGrouping    Dimension = "grouping"
)

// Dimensions lists every dimension in report order.
var Dimensions = []Dimension{
	DimensionDepartment,
	DimensionSite,
	DimensionDirectorate,
	DimensionGrouping,
}

// Winner is the record chosen for the highest-ranked row with a store match.
// Rank is 1-based; a placeholder winner has Rank 0 and Found false.
type Winner struct {
	// Record holds the values as stored, not the bucketed labels used in the
	// distributions.
	Record EmployeeRecord `json:"record"`
	Rank   int            `json:"rank"`
	Found  bool           `json:"found"`
	// DisplayName is the name column of the rank-one row, when supplied.
	DisplayName string `json:"display_name,omitempty"`
}

// WinnerField is one entry of the winner block.
type WinnerField struct {
	Key   string
	Label string
}

// WinnerFields lists the Block keys in display order.
var WinnerFields = []WinnerField{
	{"empid", "Employee ID"},
	{"empname", "Employee Name"},
	{"department", "Department"},
	{"site", "Site"},
	{"directorate", "Directorate"},
	{"uid", "UID"},
}

// Block returns the six scalar fields shown for the winner, keyed as in WinnerFields.
func (w Winner) Block() map[string]string {
	return map[string]string{
		"empid":       w.Record.EmpID,
		"empname":     w.Record.EmpName,
		"department":  w.Record.Department,
		"site":        w.Record.Site,
		"directorate": w.Record.Directorate,
		"uid":         w.Record.UID,
	}
}

// DistributionEntry is one label of a dimension with its share of the total.
type DistributionEntry struct {
	Label      string  `json:"label"`
	Count      int     `json:"count"`
	Percentage string  `json:"percentage"`
	Percent    float64 `json:"percent"`
}

// Distribution lists entries in first-seen label order.
type Distribution []DistributionEntry

// StatsResult is the complete output of one parse-and-process run.
type StatsResult struct {
	Winner            Winner                     `json:"winner"`
	Distributions     map[Dimension]Distribution `json:"distributions"`
	TotalParsedRows   int                        `json:"total_parsed_rows"`
	TotalResolvedRows int                        `json:"total_resolved_rows"`
	Headers           []string                   `json:"headers"`
	RawRows           []RawRow                   `json:"raw_rows"`
	Records           []EmployeeRecord           `json:"records"`
	Warnings          []RowWarning               `json:"warnings,omitempty"`
}

// SessionResult is the stored unit for one session; a new run replaces it whole.
type SessionResult struct {
	RunID       uuid.UUID    `json:"run_id"`
	SessionID   string       `json:"session_id"`
	ProcessedAt time.Time    `json:"processed_at"`
	Result      *StatsResult `json:"result"`
}
