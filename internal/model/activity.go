package model

import "time"

// RunStatus is the outcome written to the activity log.
type RunStatus string

// Run status constants.
const (
	RunSuccess RunStatus = "success"
	RunError   RunStatus = "error"
)

// ActivityRecord is one row of the audit trail. Records are appended and never
// updated or deleted.
type ActivityRecord struct {
	Timestamp    time.Time
	RawInput     string
	Source       string
	ParsedAction Action
	ParsedTags   []string
	Destination  string
	Status       RunStatus
	ErrorMessage string
}
