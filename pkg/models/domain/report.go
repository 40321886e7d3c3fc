package domain

// Report represents a complete assessment report
type Report struct {
	Title    string
	Summary  map[string]interface{}
	Sections []ReportSection
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Details []ReportDetail
	Notes   []string
}

// ReportDetail represents a single named figure within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
