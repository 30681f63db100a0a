package model

// Lead is a contact extracted from a target. OutreachReady marks leads the
// backend scored high enough to contact.
type Lead struct {
	ID            int64
	Name          string
	Title         string
	Company       string
	Email         string
	Score         float64
	OutreachReady bool
}
