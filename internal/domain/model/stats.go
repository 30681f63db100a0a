package model

// Stats is the backend's aggregate counters endpoint payload.
type Stats struct {
	TotalJobs       int
	ActiveJobs      int
	TotalTargets    int
	TotalLeads      int
	OutreachReady   int
	AnalyzedContent int
}
