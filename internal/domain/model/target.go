package model

// Target is a company or site discovered by a job.
type Target struct {
	ID       int64
	Name     string
	Domain   string
	Industry string
	Location string
	Score    float64
}
