package model

import "time"

// Job is a lead-generation job on the backend: a saved search that discovers
// targets and extracts leads from them.
type Job struct {
	ID          int64
	Name        string
	Status      string // "pending", "running", "completed", "failed"
	Query       string
	TargetCount int
	LeadCount   int
	CreatedAt   time.Time
}
