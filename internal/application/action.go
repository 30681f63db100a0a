// Package application contains the navigation core: action identifier
// dispatch, screen rendering, the confirmation workflow, and onboarding.
package application

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/ericfisherdev/leadbot/internal/domain/model"
)

// ErrUnrecognizedAction indicates a button press matched no registered
// action pattern.
var ErrUnrecognizedAction = errors.New("unrecognized action")

// EncodeAction renders an action as its opaque identifier. The identifier is
// round-trippable: ParseAction recovers exactly the verb, resource, and
// id/page that produced it.
func EncodeAction(a model.Action) string {
	switch a.Verb {
	case model.VerbList:
		return fmt.Sprintf("%s:list:%d", a.Resource, a.Page)
	case model.VerbOpen:
		return fmt.Sprintf("%s:open:%d", a.Resource, a.ID)
	case model.VerbRun:
		return fmt.Sprintf("%s:run:%d", a.Resource, a.ID)
	case model.VerbDelete:
		if a.Resource == model.ResourceAccount {
			return "account:delete"
		}
		return fmt.Sprintf("%s:delete:%d", a.Resource, a.ID)
	case model.VerbConfirmDelete:
		if a.Resource == model.ResourceAccount {
			return "account:confirmdel"
		}
		return fmt.Sprintf("%s:confirmdel:%d", a.Resource, a.ID)
	case model.VerbShow:
		return "stats:show"
	case model.VerbBack:
		return "menu"
	case model.VerbCancel:
		return "cancel"
	}
	return ""
}

// actionPattern pairs a compiled pattern with a decoder for its captures.
type actionPattern struct {
	re     *regexp.Regexp
	decode func(groups []string) model.Action
}

// actionPatterns is the ordered dispatch table. Resource-scoped id actions
// come before generic list/back entries so an identifier matches exactly one
// pattern; first match wins.
var actionPatterns = []actionPattern{
	{
		re: regexp.MustCompile(`^jobs:(run|delete|confirmdel):(\d+)$`),
		decode: func(g []string) model.Action {
			return model.Action{Verb: model.Verb(g[1]), Resource: model.ResourceJobs, ID: mustID(g[2])}
		},
	},
	{
		re: regexp.MustCompile(`^(jobs|targets|leads):open:(\d+)$`),
		decode: func(g []string) model.Action {
			return model.Action{Verb: model.VerbOpen, Resource: model.Resource(g[1]), ID: mustID(g[2])}
		},
	},
	{
		re: regexp.MustCompile(`^account:(delete|confirmdel)$`),
		decode: func(g []string) model.Action {
			return model.Action{Verb: model.Verb(g[1]), Resource: model.ResourceAccount}
		},
	},
	{
		re: regexp.MustCompile(`^(jobs|targets|leads|ready|content):list:(\d+)$`),
		decode: func(g []string) model.Action {
			return model.Action{Verb: model.VerbList, Resource: model.Resource(g[1]), Page: mustPage(g[2])}
		},
	},
	{
		re: regexp.MustCompile(`^stats:show$`),
		decode: func(g []string) model.Action {
			return model.Action{Verb: model.VerbShow, Resource: model.ResourceStats}
		},
	},
	{
		re: regexp.MustCompile(`^menu$`),
		decode: func(g []string) model.Action {
			return model.Action{Verb: model.VerbBack, Resource: model.ResourceMenu}
		},
	},
	{
		re: regexp.MustCompile(`^cancel$`),
		decode: func(g []string) model.Action {
			return model.Action{Verb: model.VerbCancel, Resource: model.ResourceMenu}
		},
	},
}

// ParseAction decodes an action identifier against the registered patterns.
// Returns ErrUnrecognizedAction when nothing matches.
func ParseAction(id string) (model.Action, error) {
	for _, p := range actionPatterns {
		if g := p.re.FindStringSubmatch(id); g != nil {
			return p.decode(g), nil
		}
	}
	return model.Action{}, fmt.Errorf("%w: %q", ErrUnrecognizedAction, id)
}

// mustID parses a \d+ capture. The pattern guarantees digits; overflow of a
// ludicrous id yields 0, which the backend rejects as not found.
func mustID(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

func mustPage(s string) int {
	n, _ := strconv.Atoi(s)
	if n < 1 {
		n = 1
	}
	return n
}
