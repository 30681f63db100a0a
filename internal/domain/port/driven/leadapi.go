package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/leadbot/internal/domain/model"
)

// ErrMalformedResponse indicates the backend answered 2xx but the body did
// not match the expected {data, pagination} envelope.
var ErrMalformedResponse = errors.New("malformed backend response")

// LeadAPI defines the driven port for the lead-generation backend API. Every
// method authenticates with the supplied credential's bearer token against
// its base URL and returns either normalized domain data or a *model.APIError
// (wrapped ErrMalformedResponse for envelope violations). Calls carry a
// bounded timeout; on success the adapter bumps the credential's last-used
// timestamp fire-and-forget.
type LeadAPI interface {
	// Verify performs one lightweight read-only call with an unstored token.
	// Used only during onboarding; persists nothing.
	Verify(ctx context.Context, token, baseURL string) error

	ListJobs(ctx context.Context, cred *model.Credential, page int) (*model.JobPage, error)
	GetJob(ctx context.Context, cred *model.Credential, id int64) (*model.Job, error)
	// RunJob queues the job for execution and returns its refreshed state.
	RunJob(ctx context.Context, cred *model.Credential, id int64) (*model.Job, error)
	// DeleteJob removes the job. A 404 from the backend is returned as a
	// *model.APIError with NotFound() true; callers decide whether that is
	// an error (the confirmation workflow treats it as success).
	DeleteJob(ctx context.Context, cred *model.Credential, id int64) error

	ListTargets(ctx context.Context, cred *model.Credential, page int) (*model.TargetPage, error)
	GetTarget(ctx context.Context, cred *model.Credential, id int64) (*model.Target, error)

	// ListLeads returns a page of leads; onlyReady narrows to outreach-ready.
	ListLeads(ctx context.Context, cred *model.Credential, page int, onlyReady bool) (*model.LeadPage, error)
	GetLead(ctx context.Context, cred *model.Credential, id int64) (*model.Lead, error)

	ListContentAnalysis(ctx context.Context, cred *model.Credential, page int) (*model.ContentPage, error)
	GetStats(ctx context.Context, cred *model.Credential) (*model.Stats, error)
}
