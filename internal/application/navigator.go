package application

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ericfisherdev/leadbot/internal/domain/model"
	"github.com/ericfisherdev/leadbot/internal/domain/port/driven"
)

// Typed command names accepted by HandleCommand.
const (
	CommandStart         = "start"
	CommandSetToken      = "settoken"
	CommandSetURL        = "seturl"
	CommandDeleteAccount = "deleteaccount"
)

// Navigator maps inbound events (typed commands and button presses) to
// handlers and renders the resulting screen. Handlers are short-lived
// request/response units; the only shared state is the credential store.
// Every failure is converted to a screen at this boundary; nothing
// propagates to the transport as an error.
type Navigator struct {
	store          driven.CredentialStore
	api            driven.LeadAPI
	defaultBaseURL string
	logger         *slog.Logger
}

// NewNavigator creates a Navigator. defaultBaseURL is the backend root used
// for onboarding when the identity has no stored credential yet.
func NewNavigator(store driven.CredentialStore, api driven.LeadAPI, defaultBaseURL string, logger *slog.Logger) *Navigator {
	return &Navigator{
		store:          store,
		api:            api,
		defaultBaseURL: defaultBaseURL,
		logger:         logger,
	}
}

// HandleCommand dispatches a typed command with free-text args.
func (n *Navigator) HandleCommand(ctx context.Context, identity, command, args string) (screen model.Screen) {
	defer n.recoverToScreen(&screen)

	switch strings.ToLower(strings.TrimSpace(command)) {
	case CommandStart:
		return n.start(ctx, identity)
	case CommandSetToken:
		return n.setToken(ctx, identity, strings.TrimSpace(args))
	case CommandSetURL:
		return n.setBaseURL(ctx, identity, strings.TrimSpace(args))
	case CommandDeleteAccount:
		return n.requireCredential(ctx, identity, func(*model.Credential) model.Screen {
			return confirmAccountDeleteScreen()
		})
	default:
		return unknownCommandScreen()
	}
}

// HandleAction dispatches a button press carrying an action identifier.
func (n *Navigator) HandleAction(ctx context.Context, identity, actionID string) (screen model.Screen) {
	defer n.recoverToScreen(&screen)

	act, err := ParseAction(actionID)
	if err != nil {
		n.logger.Warn("unrecognized action", "identity", identity, "action", actionID)
		return unrecognizedActionScreen()
	}

	// Cancel allocates nothing and needs nothing: the proposal it abandons
	// only ever existed as buttons on the previous screen.
	if act.Verb == model.VerbCancel {
		return cancelledScreen()
	}

	// Credential deletion must not be gated on the credential still existing:
	// a repeated confirm after the row is gone is already satisfied.
	if act.Verb == model.VerbConfirmDelete && act.Resource == model.ResourceAccount {
		return n.deleteAccount(ctx, identity)
	}

	return n.requireCredential(ctx, identity, func(cred *model.Credential) model.Screen {
		return n.dispatch(ctx, cred, act)
	})
}

// requireCredential resolves the identity's credential and runs fn with it.
// Absence yields the uniform not-onboarded screen and no further work.
func (n *Navigator) requireCredential(ctx context.Context, identity string, fn func(*model.Credential) model.Screen) model.Screen {
	cred, err := n.store.Get(ctx, identity)
	if errors.Is(err, driven.ErrCredentialNotFound) {
		return notOnboardedScreen()
	}
	if err != nil {
		n.logger.Error("credential lookup failed", "identity", identity, "error", err)
		return genericFailureScreen()
	}
	return fn(cred)
}

func (n *Navigator) dispatch(ctx context.Context, cred *model.Credential, act model.Action) model.Screen {
	switch act.Verb {
	case model.VerbBack:
		return menuScreen()

	case model.VerbList:
		return n.list(ctx, cred, act.Resource, act.Page)

	case model.VerbOpen:
		return n.open(ctx, cred, act.Resource, act.ID)

	case model.VerbRun:
		job, err := n.api.RunJob(ctx, cred, act.ID)
		if err != nil {
			return n.errorScreen(err)
		}
		return jobQueuedScreen(job)

	case model.VerbDelete:
		// Propose only: no state is allocated, the confirm/cancel pair on
		// the rendered screen is the whole proposal.
		if act.Resource == model.ResourceAccount {
			return confirmAccountDeleteScreen()
		}
		return confirmJobDeleteScreen(act.ID)

	case model.VerbConfirmDelete:
		return n.deleteJob(ctx, cred, act.ID)

	case model.VerbShow:
		stats, err := n.api.GetStats(ctx, cred)
		if err != nil {
			return n.errorScreen(err)
		}
		return statsScreen(stats)
	}

	n.logger.Warn("action verb without handler", "verb", string(act.Verb))
	return unrecognizedActionScreen()
}

func (n *Navigator) list(ctx context.Context, cred *model.Credential, resource model.Resource, page int) model.Screen {
	switch resource {
	case model.ResourceJobs:
		jp, err := n.api.ListJobs(ctx, cred, page)
		if err != nil {
			return n.errorScreen(err)
		}
		return jobListScreen(jp)
	case model.ResourceTargets:
		tp, err := n.api.ListTargets(ctx, cred, page)
		if err != nil {
			return n.errorScreen(err)
		}
		return targetListScreen(tp)
	case model.ResourceLeads, model.ResourceReadyLeads:
		lp, err := n.api.ListLeads(ctx, cred, page, resource == model.ResourceReadyLeads)
		if err != nil {
			return n.errorScreen(err)
		}
		return leadListScreen(lp, resource)
	case model.ResourceContent:
		cp, err := n.api.ListContentAnalysis(ctx, cred, page)
		if err != nil {
			return n.errorScreen(err)
		}
		return contentListScreen(cp)
	}
	return unrecognizedActionScreen()
}

func (n *Navigator) open(ctx context.Context, cred *model.Credential, resource model.Resource, id int64) model.Screen {
	switch resource {
	case model.ResourceJobs:
		job, err := n.api.GetJob(ctx, cred, id)
		if err != nil {
			return n.errorScreen(err)
		}
		return jobDetailScreen(job)
	case model.ResourceTargets:
		t, err := n.api.GetTarget(ctx, cred, id)
		if err != nil {
			return n.errorScreen(err)
		}
		return targetDetailScreen(t)
	case model.ResourceLeads:
		l, err := n.api.GetLead(ctx, cred, id)
		if err != nil {
			return n.errorScreen(err)
		}
		return leadDetailScreen(l)
	}
	return unrecognizedActionScreen()
}

// deleteJob is the confirmed leg of the job deletion workflow. The backend
// delete is safe to issue twice: a 404 means the job is already gone, which
// is the outcome the user asked for.
func (n *Navigator) deleteJob(ctx context.Context, cred *model.Credential, id int64) model.Screen {
	err := n.api.DeleteJob(ctx, cred, id)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.NotFound() {
			return jobDeletedScreen(id)
		}
		return n.errorScreen(err)
	}
	return jobDeletedScreen(id)
}

// deleteAccount removes the stored credential. A zero removed count means a
// concurrent press already deleted it; both presses see success.
func (n *Navigator) deleteAccount(ctx context.Context, identity string) model.Screen {
	if _, err := n.store.Delete(ctx, identity); err != nil {
		n.logger.Error("credential delete failed", "identity", identity, "error", err)
		return genericFailureScreen()
	}
	return accountDeletedScreen()
}

func (n *Navigator) start(ctx context.Context, identity string) model.Screen {
	_, err := n.store.Get(ctx, identity)
	if errors.Is(err, driven.ErrCredentialNotFound) {
		return onboardingScreen()
	}
	if err != nil {
		n.logger.Error("credential lookup failed", "identity", identity, "error", err)
		return genericFailureScreen()
	}
	return menuScreen()
}

// setToken verifies the supplied token before persisting anything. On
// verification failure no credential record is created or modified.
func (n *Navigator) setToken(ctx context.Context, identity, token string) model.Screen {
	if token == "" {
		return model.Screen{Text: "Usage: settoken <api-token>"}
	}

	baseURL := n.defaultBaseURL
	if existing, err := n.store.Get(ctx, identity); err == nil {
		baseURL = existing.BaseURL
	}

	if err := n.api.Verify(ctx, token, baseURL); err != nil {
		n.logger.Info("token verification failed", "identity", identity, "error", err)
		return invalidCredentialScreen()
	}

	cred, err := n.store.Upsert(ctx, identity, token, baseURL)
	if err != nil {
		n.logger.Error("credential upsert failed", "identity", identity, "error", err)
		return genericFailureScreen()
	}
	return tokenSavedScreen(cred)
}

// setBaseURL re-verifies the stored token against the new URL before
// switching; a bad URL leaves the credential unchanged.
func (n *Navigator) setBaseURL(ctx context.Context, identity, raw string) model.Screen {
	u, err := url.Parse(raw)
	if raw == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return model.Screen{Text: "Usage: seturl <http(s) url>"}
	}

	return n.requireCredential(ctx, identity, func(cred *model.Credential) model.Screen {
		if err := n.api.Verify(ctx, cred.Token, raw); err != nil {
			n.logger.Info("base url verification failed", "identity", identity, "error", err)
			return model.Screen{Text: "Could not verify your token against that URL. Base URL unchanged."}
		}

		if err := n.store.UpdateBaseURL(ctx, identity, raw); err != nil {
			if errors.Is(err, driven.ErrCredentialNotFound) {
				return notOnboardedScreen()
			}
			n.logger.Error("base url update failed", "identity", identity, "error", err)
			return genericFailureScreen()
		}
		return baseURLSavedScreen(raw)
	})
}

func (n *Navigator) errorScreen(err error) model.Screen {
	var apiErr *model.APIError
	switch {
	case errors.As(err, &apiErr):
		return backendErrorScreen(apiErr)
	case errors.Is(err, driven.ErrMalformedResponse):
		n.logger.Error("malformed backend response", "error", err)
		return genericFailureScreen()
	default:
		n.logger.Error("handler failed", "error", err)
		return genericFailureScreen()
	}
}

// recoverToScreen is the top-level catch-all: any panic in a handler becomes
// a generic failure screen instead of taking down event processing.
func (n *Navigator) recoverToScreen(screen *model.Screen) {
	if v := recover(); v != nil {
		n.logger.Error("panic in handler", "panic", v)
		*screen = genericFailureScreen()
	}
}
