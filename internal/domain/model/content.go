package model

// ContentItem is one analyzed page from the backend's read-only content
// analysis feed.
type ContentItem struct {
	ID      int64
	URL     string
	Title   string
	Topic   string
	Score   float64
	Summary string
}
