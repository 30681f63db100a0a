package application

import (
	"fmt"
	"strings"

	"github.com/ericfisherdev/leadbot/internal/domain/model"
)

// Screen construction. Every function here is pure: domain data in, rendered
// screen out. Button actions are produced exclusively through EncodeAction so
// each rendered identifier is parseable by ParseAction.

func listAction(resource model.Resource, page int) string {
	return EncodeAction(model.Action{Verb: model.VerbList, Resource: resource, Page: page})
}

func openAction(resource model.Resource, id int64) string {
	return EncodeAction(model.Action{Verb: model.VerbOpen, Resource: resource, ID: id})
}

const menuAction = "menu"

func menuScreen() model.Screen {
	return model.Screen{
		Text: "Main menu\nPick a resource to browse.",
		Buttons: [][]model.Button{
			{
				{Label: "Jobs", Action: listAction(model.ResourceJobs, 1)},
				{Label: "Targets", Action: listAction(model.ResourceTargets, 1)},
			},
			{
				{Label: "Leads", Action: listAction(model.ResourceLeads, 1)},
				{Label: "Outreach-ready", Action: listAction(model.ResourceReadyLeads, 1)},
			},
			{
				{Label: "Content analysis", Action: listAction(model.ResourceContent, 1)},
				{Label: "Stats", Action: EncodeAction(model.Action{Verb: model.VerbShow, Resource: model.ResourceStats})},
			},
		},
	}
}

func onboardingScreen() model.Screen {
	return model.Screen{
		Text: "Welcome. Connect your account first:\n\nsettoken <api-token>\n\nOptionally point at a different backend afterwards with seturl <url>.",
	}
}

func notOnboardedScreen() model.Screen {
	return model.Screen{
		Text: "You are not connected yet. Send settoken <api-token> to get started.",
	}
}

func invalidCredentialScreen() model.Screen {
	return model.Screen{
		Text: "That token could not be verified against the backend. Nothing was saved — check the token and try again.",
	}
}

func backendErrorScreen(apiErr *model.APIError) model.Screen {
	return model.Screen{
		Text:    fmt.Sprintf("Backend error: %s", apiErr.Message),
		Buttons: [][]model.Button{{{Label: "Menu", Action: menuAction}}},
	}
}

func genericFailureScreen() model.Screen {
	return model.Screen{
		Text:    "Something went wrong. Please try again.",
		Buttons: [][]model.Button{{{Label: "Menu", Action: menuAction}}},
	}
}

func unknownCommandScreen() model.Screen {
	return model.Screen{
		Text: "Unknown command. Try start, settoken <token>, seturl <url>, or deleteaccount.",
	}
}

func unrecognizedActionScreen() model.Screen {
	return model.Screen{
		Text:    "That button is no longer valid.",
		Buttons: [][]model.Button{{{Label: "Menu", Action: menuAction}}},
	}
}

func emptyListScreen(what string) model.Screen {
	return model.Screen{
		Text:    fmt.Sprintf("No %s found.", what),
		Buttons: [][]model.Button{{{Label: "Menu", Action: menuAction}}},
	}
}

// pageControls builds the shared list-screen chrome: a prev/next row when
// more than one page exists, then the back-to-menu row.
func pageControls(resource model.Resource, p model.Page) [][]model.Button {
	var rows [][]model.Button

	var nav []model.Button
	if p.Page > 1 {
		nav = append(nav, model.Button{Label: "Prev", Action: listAction(resource, p.Page-1)})
	}
	if p.Page < p.TotalPages {
		nav = append(nav, model.Button{Label: "Next", Action: listAction(resource, p.Page+1)})
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, []model.Button{{Label: "Menu", Action: menuAction}})
	return rows
}

func pageFooter(p model.Page) string {
	return fmt.Sprintf("Page %d/%d · %d total", p.Page, p.TotalPages, p.TotalCount)
}

func jobListScreen(page *model.JobPage) model.Screen {
	if len(page.Items) == 0 {
		return emptyListScreen("jobs")
	}

	var rows [][]model.Button
	for _, job := range page.Items {
		rows = append(rows, []model.Button{{
			Label:  fmt.Sprintf("%s (%s)", job.Name, job.Status),
			Action: openAction(model.ResourceJobs, job.ID),
		}})
	}
	rows = append(rows, pageControls(model.ResourceJobs, page.Page)...)

	return model.Screen{
		Text:    "Jobs\n" + pageFooter(page.Page),
		Buttons: rows,
	}
}

func jobDetailScreen(job *model.Job) model.Screen {
	var b strings.Builder
	fmt.Fprintf(&b, "Job #%d — %s\n", job.ID, job.Name)
	fmt.Fprintf(&b, "Status: %s\n", job.Status)
	if job.Query != "" {
		fmt.Fprintf(&b, "Query: %s\n", job.Query)
	}
	fmt.Fprintf(&b, "Targets: %d · Leads: %d\n", job.TargetCount, job.LeadCount)
	fmt.Fprintf(&b, "Created: %s", job.CreatedAt.Format("2006-01-02"))

	return model.Screen{
		Text: b.String(),
		Buttons: [][]model.Button{
			{
				{Label: "Run", Action: EncodeAction(model.Action{Verb: model.VerbRun, Resource: model.ResourceJobs, ID: job.ID})},
				{Label: "Delete", Action: EncodeAction(model.Action{Verb: model.VerbDelete, Resource: model.ResourceJobs, ID: job.ID})},
			},
			{
				{Label: "Back to jobs", Action: listAction(model.ResourceJobs, 1)},
			},
		},
	}
}

func jobQueuedScreen(job *model.Job) model.Screen {
	return model.Screen{
		Text:    fmt.Sprintf("Job #%d queued (status: %s).", job.ID, job.Status),
		Buttons: [][]model.Button{{{Label: "Back to jobs", Action: listAction(model.ResourceJobs, 1)}}},
	}
}

func confirmJobDeleteScreen(id int64) model.Screen {
	return model.Screen{
		Text: fmt.Sprintf("Delete job #%d? This cannot be undone.", id),
		Buttons: [][]model.Button{{
			{Label: "Yes, delete", Action: EncodeAction(model.Action{Verb: model.VerbConfirmDelete, Resource: model.ResourceJobs, ID: id})},
			{Label: "Cancel", Action: "cancel"},
		}},
	}
}

func jobDeletedScreen(id int64) model.Screen {
	return model.Screen{
		Text:    fmt.Sprintf("Job #%d deleted.", id),
		Buttons: [][]model.Button{{{Label: "Back to jobs", Action: listAction(model.ResourceJobs, 1)}}},
	}
}

func targetListScreen(page *model.TargetPage) model.Screen {
	if len(page.Items) == 0 {
		return emptyListScreen("targets")
	}

	var rows [][]model.Button
	for _, t := range page.Items {
		rows = append(rows, []model.Button{{
			Label:  fmt.Sprintf("%s — %s", t.Name, t.Domain),
			Action: openAction(model.ResourceTargets, t.ID),
		}})
	}
	rows = append(rows, pageControls(model.ResourceTargets, page.Page)...)

	return model.Screen{
		Text:    "Targets\n" + pageFooter(page.Page),
		Buttons: rows,
	}
}

func targetDetailScreen(t *model.Target) model.Screen {
	var b strings.Builder
	fmt.Fprintf(&b, "Target #%d — %s\n", t.ID, t.Name)
	fmt.Fprintf(&b, "Domain: %s\n", t.Domain)
	if t.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", t.Industry)
	}
	if t.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", t.Location)
	}
	fmt.Fprintf(&b, "Score: %.1f", t.Score)

	return model.Screen{
		Text:    b.String(),
		Buttons: [][]model.Button{{{Label: "Back to targets", Action: listAction(model.ResourceTargets, 1)}}},
	}
}

// leadListScreen renders both the full and the outreach-ready lead views;
// resource controls which list the pagination buttons reload.
func leadListScreen(page *model.LeadPage, resource model.Resource) model.Screen {
	if len(page.Items) == 0 {
		if resource == model.ResourceReadyLeads {
			return emptyListScreen("outreach-ready leads")
		}
		return emptyListScreen("leads")
	}

	title := "Leads"
	if resource == model.ResourceReadyLeads {
		title = "Outreach-ready leads"
	}

	var rows [][]model.Button
	for _, l := range page.Items {
		rows = append(rows, []model.Button{{
			Label:  fmt.Sprintf("%s — %s", l.Name, l.Company),
			Action: openAction(model.ResourceLeads, l.ID),
		}})
	}
	rows = append(rows, pageControls(resource, page.Page)...)

	return model.Screen{
		Text:    title + "\n" + pageFooter(page.Page),
		Buttons: rows,
	}
}

func leadDetailScreen(l *model.Lead) model.Screen {
	var b strings.Builder
	fmt.Fprintf(&b, "Lead #%d — %s\n", l.ID, l.Name)
	if l.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", l.Title)
	}
	fmt.Fprintf(&b, "Company: %s\n", l.Company)
	if l.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", l.Email)
	}
	fmt.Fprintf(&b, "Score: %.1f\n", l.Score)
	if l.OutreachReady {
		b.WriteString("Outreach-ready")
	} else {
		b.WriteString("Not outreach-ready")
	}

	return model.Screen{
		Text:    b.String(),
		Buttons: [][]model.Button{{{Label: "Back to leads", Action: listAction(model.ResourceLeads, 1)}}},
	}
}

// contentListScreen has no per-row actions: the content analysis feed is
// read-only with no detail endpoint, so entries render inline.
func contentListScreen(page *model.ContentPage) model.Screen {
	if len(page.Items) == 0 {
		return emptyListScreen("analyzed content")
	}

	var b strings.Builder
	b.WriteString("Content analysis\n")
	b.WriteString(pageFooter(page.Page))
	for _, item := range page.Items {
		fmt.Fprintf(&b, "\n\n%s (%.1f)\n%s", item.Title, item.Score, item.URL)
		if item.Summary != "" {
			fmt.Fprintf(&b, "\n%s", item.Summary)
		}
	}

	return model.Screen{
		Text:    b.String(),
		Buttons: pageControls(model.ResourceContent, page.Page),
	}
}

func statsScreen(s *model.Stats) model.Screen {
	var b strings.Builder
	b.WriteString("Stats\n")
	fmt.Fprintf(&b, "Jobs: %d (%d active)\n", s.TotalJobs, s.ActiveJobs)
	fmt.Fprintf(&b, "Targets: %d\n", s.TotalTargets)
	fmt.Fprintf(&b, "Leads: %d (%d outreach-ready)\n", s.TotalLeads, s.OutreachReady)
	fmt.Fprintf(&b, "Analyzed content: %d", s.AnalyzedContent)

	return model.Screen{
		Text:    b.String(),
		Buttons: [][]model.Button{{{Label: "Menu", Action: menuAction}}},
	}
}

func tokenSavedScreen(cred *model.Credential) model.Screen {
	return model.Screen{
		Text:    fmt.Sprintf("Connected. Token %s verified against %s.", cred.TokenPrefix(), cred.BaseURL),
		Buttons: [][]model.Button{{{Label: "Menu", Action: menuAction}}},
	}
}

func baseURLSavedScreen(baseURL string) model.Screen {
	return model.Screen{
		Text:    fmt.Sprintf("Backend URL updated to %s.", baseURL),
		Buttons: [][]model.Button{{{Label: "Menu", Action: menuAction}}},
	}
}

func confirmAccountDeleteScreen() model.Screen {
	return model.Screen{
		Text: "Delete your stored credential? You will need to send settoken again to reconnect.",
		Buttons: [][]model.Button{{
			{Label: "Yes, delete", Action: EncodeAction(model.Action{Verb: model.VerbConfirmDelete, Resource: model.ResourceAccount})},
			{Label: "Cancel", Action: "cancel"},
		}},
	}
}

func accountDeletedScreen() model.Screen {
	return model.Screen{
		Text: "Credential deleted. Send settoken <api-token> to reconnect.",
	}
}

func cancelledScreen() model.Screen {
	return model.Screen{
		Text:    "Cancelled. Nothing was changed.",
		Buttons: [][]model.Button{{{Label: "Menu", Action: menuAction}}},
	}
}
