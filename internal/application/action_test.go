package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/leadbot/internal/domain/model"
)

// Every action the screen catalog can emit must round-trip through the codec.
func TestActionRoundTrip(t *testing.T) {
	listable := []model.Resource{
		model.ResourceJobs,
		model.ResourceTargets,
		model.ResourceLeads,
		model.ResourceReadyLeads,
		model.ResourceContent,
	}

	var actions []model.Action
	for _, r := range listable {
		for _, page := range []int{1, 2, 99} {
			actions = append(actions, model.Action{Verb: model.VerbList, Resource: r, Page: page})
		}
	}
	for _, r := range []model.Resource{model.ResourceJobs, model.ResourceTargets, model.ResourceLeads} {
		for _, id := range []int64{1, 42, 1234567} {
			actions = append(actions, model.Action{Verb: model.VerbOpen, Resource: r, ID: id})
		}
	}
	for _, verb := range []model.Verb{model.VerbRun, model.VerbDelete, model.VerbConfirmDelete} {
		actions = append(actions, model.Action{Verb: verb, Resource: model.ResourceJobs, ID: 7})
	}
	actions = append(actions,
		model.Action{Verb: model.VerbDelete, Resource: model.ResourceAccount},
		model.Action{Verb: model.VerbConfirmDelete, Resource: model.ResourceAccount},
		model.Action{Verb: model.VerbShow, Resource: model.ResourceStats},
		model.Action{Verb: model.VerbBack, Resource: model.ResourceMenu},
		model.Action{Verb: model.VerbCancel, Resource: model.ResourceMenu},
	)

	for _, want := range actions {
		id := EncodeAction(want)
		require.NotEmpty(t, id, "action %+v did not encode", want)

		got, err := ParseAction(id)
		require.NoError(t, err, "identifier %q did not parse", id)
		assert.Equal(t, want, got, "identifier %q", id)
	}
}

// Jobs and targets share numeric ids; the resource segment keeps their
// actions distinct.
func TestActionNoCrossResourceAmbiguity(t *testing.T) {
	jobOpen, err := ParseAction("jobs:open:42")
	require.NoError(t, err)
	targetOpen, err := ParseAction("targets:open:42")
	require.NoError(t, err)

	assert.Equal(t, model.ResourceJobs, jobOpen.Resource)
	assert.Equal(t, model.ResourceTargets, targetOpen.Resource)
	assert.NotEqual(t, jobOpen, targetOpen)
}

func TestParseActionUnrecognized(t *testing.T) {
	for _, id := range []string{
		"",
		"jobs",
		"jobs:open",
		"jobs:open:abc",
		"jobs:explode:42",
		"stats:list:1",
		"account:open:1",
		"menu:1",
		"jobs:open:42:extra",
	} {
		_, err := ParseAction(id)
		assert.ErrorIs(t, err, ErrUnrecognizedAction, "identifier %q", id)
	}
}

func TestParseActionClampsZeroPage(t *testing.T) {
	act, err := ParseAction("jobs:list:0")
	require.NoError(t, err)
	assert.Equal(t, 1, act.Page)
}
