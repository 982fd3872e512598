package models

// ReportRecord describes one report artifact after it has been written.
// Exactly one of Result and FatalError is set.
type ReportRecord struct {
	// Date is the YYYY-MM-DD string printed in the report header
	Date string

	// Zone is the timezone label printed in the report header
	Zone string

	// Result is the completed run summarized by the report, nil for
	// fatal-error reports
	Result *RunResult

	// FatalError is the single message of a fatal-error report
	FatalError string

	// Path is where the report file was written
	Path string
}
