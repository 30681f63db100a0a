package model

// Verb is the operation encoded in an action identifier.
type Verb string

const (
	VerbList          Verb = "list"
	VerbOpen          Verb = "open"
	VerbRun           Verb = "run"
	VerbDelete        Verb = "delete"
	VerbConfirmDelete Verb = "confirmdel"
	VerbShow          Verb = "show"
	VerbBack          Verb = "back"
	VerbCancel        Verb = "cancel"
)

// Resource names a backend resource type addressable from the menu.
type Resource string

const (
	ResourceJobs    Resource = "jobs"
	ResourceTargets Resource = "targets"
	ResourceLeads   Resource = "leads"
	// ResourceReadyLeads is the outreach-ready filter variant of leads. It is
	// a distinct resource so list actions for the two views round-trip
	// without ambiguity.
	ResourceReadyLeads Resource = "ready"
	ResourceContent    Resource = "content"
	ResourceStats      Resource = "stats"
	ResourceAccount    Resource = "account"
	ResourceMenu       Resource = "menu"
)

// Action is the decoded form of an action identifier: a verb, the resource it
// concerns, and either a resource id or a page number depending on the verb.
// It doubles as the screen reference: everything needed to redraw the screen
// the action leads to is recoverable from it plus current backend data.
type Action struct {
	Verb     Verb
	Resource Resource
	ID       int64 // resource id for open/run/delete/confirmdel
	Page     int   // page number for list verbs, 1-based
}
