package models

// FileDecision represents the outcome recorded for one source entry
type FileDecision string

const (
	// DecisionNew indicates the file was absent in the destination and was copied
	DecisionNew FileDecision = "new"
	// DecisionOverwritten indicates the destination file was replaced
	DecisionOverwritten FileDecision = "overwritten"
	// DecisionSkipped indicates source and destination sizes matched, no write
	DecisionSkipped FileDecision = "skipped"
	// DecisionError indicates the entry failed and was recorded in the error list
	DecisionError FileDecision = "error"
)
