package models

// Cell sentinels. Both render as missing; they come from different stages.
const (
	// NotAvailable marks a cell the pasted text did not supply.
	NotAvailable = "N/A"
	// NotFound fills every field of the winner placeholder.
	NotFound = "N/A"
	// NoWinnerName is the display name of the winner placeholder.
	NoWinnerName = "No valid winner found"
)

// RawRow is one parsed line of pasted text, keyed by header label.
// Missing cells hold NotAvailable.
type RawRow map[string]string

// Get returns the cell for header, or NotAvailable if the row has no such field.
func (r RawRow) Get(header string) string {
	if v, ok := r[header]; ok {
		return v
	}
	return NotAvailable
}

// Table is the ordered output of the text parser.
type Table struct {
	Headers  []string
	Rows     []RawRow
	Warnings []RowWarning
}

// RowWarning describes a data line whose cell count did not match the header.
type RowWarning struct {
	Line int `json:"line"`
	Got  int `json:"got"`
	Want int `json:"want"`
}

// EmployeeRecord is a read-only row of the employees table.
// Columns that are NULL in the store read as "".
type EmployeeRecord struct {
	EmpID          string `db:"empid" json:"empid"`
	EmpName        string `db:"empname" json:"empname"`
	Classification string `db:"classification" json:"classification"`
	Division       string `db:"division" json:"division"`
	Department     string `db:"department" json:"department"`
	Site           string `db:"site" json:"site"`
	Directorate    string `db:"directorate" json:"directorate"`
	Grouping       string `db:"grouping" json:"grouping"`
	UID            string `db:"uid" json:"uid"`
}

// PlaceholderRecord is the winner used when none of the ranked rows resolve.
func PlaceholderRecord() EmployeeRecord {
	return EmployeeRecord{
		EmpID:          NotFound,
		EmpName:        NoWinnerName,
		Classification: NotFound,
		Division:       NotFound,
		Department:     NotFound,
		Site:           NotFound,
		Directorate:    NotFound,
		Grouping:       NotFound,
		UID:            NotFound,
	}
}
