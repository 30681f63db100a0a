package model

// Page is the normalized pagination envelope returned by the backend for
// list endpoints. Invariant: 0 <= Page <= TotalPages, with TotalPages == 0
// only for an empty result set.
type Page struct {
	Page       int
	TotalPages int
	TotalCount int
}

// JobPage is a single page of jobs.
type JobPage struct {
	Items []Job
	Page
}

// TargetPage is a single page of targets.
type TargetPage struct {
	Items []Target
	Page
}

// LeadPage is a single page of leads.
type LeadPage struct {
	Items []Lead
	Page
}

// ContentPage is a single page of content analysis entries.
type ContentPage struct {
	Items []ContentItem
	Page
}
