package leadapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ericfisherdev/leadbot/internal/domain/model"
)

// Wire DTOs. The backend emits snake_case JSON; mapping to domain types is
// done here so the rest of the system never sees wire shapes.

type jobDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Query       string    `json:"query"`
	TargetCount int       `json:"target_count"`
	LeadCount   int       `json:"lead_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type targetDTO struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Domain   string  `json:"domain"`
	Industry string  `json:"industry"`
	Location string  `json:"location"`
	Score    float64 `json:"score"`
}

type leadDTO struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	Company       string  `json:"company"`
	Email         string  `json:"email"`
	Score         float64 `json:"score"`
	OutreachReady bool    `json:"outreach_ready"`
}

type contentDTO struct {
	ID      int64   `json:"id"`
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Topic   string  `json:"topic"`
	Score   float64 `json:"score"`
	Summary string  `json:"summary"`
}

type statsDTO struct {
	TotalJobs       int `json:"total_jobs"`
	ActiveJobs      int `json:"active_jobs"`
	TotalTargets    int `json:"total_targets"`
	TotalLeads      int `json:"total_leads"`
	OutreachReady   int `json:"outreach_ready"`
	AnalyzedContent int `json:"analyzed_content"`
}

// ListJobs fetches one page of jobs.
func (c *Client) ListJobs(ctx context.Context, cred *model.Credential, page int) (*model.JobPage, error) {
	var dtos []jobDTO
	p, err := c.authed(ctx, cred, http.MethodGet, "/jobs", pageQuery(page), &dtos, true)
	if err != nil {
		return nil, err
	}

	items := make([]model.Job, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, model.Job(d))
	}
	return &model.JobPage{Items: items, Page: *p}, nil
}

// GetJob fetches a single job by id.
func (c *Client) GetJob(ctx context.Context, cred *model.Credential, id int64) (*model.Job, error) {
	var dto jobDTO
	if _, err := c.authed(ctx, cred, http.MethodGet, fmt.Sprintf("/jobs/%d", id), nil, &dto, false); err != nil {
		return nil, err
	}
	job := model.Job(dto)
	return &job, nil
}

// RunJob queues the job for execution and returns its refreshed state.
func (c *Client) RunJob(ctx context.Context, cred *model.Credential, id int64) (*model.Job, error) {
	var dto jobDTO
	if _, err := c.authed(ctx, cred, http.MethodPost, fmt.Sprintf("/jobs/%d/run", id), nil, &dto, false); err != nil {
		return nil, err
	}
	job := model.Job(dto)
	return &job, nil
}

// DeleteJob removes the job. The backend's 404 is passed through as a typed
// APIError so the confirmation workflow can treat it as already done.
func (c *Client) DeleteJob(ctx context.Context, cred *model.Credential, id int64) error {
	_, err := c.authed(ctx, cred, http.MethodDelete, fmt.Sprintf("/jobs/%d", id), nil, nil, false)
	return err
}

// ListTargets fetches one page of targets.
func (c *Client) ListTargets(ctx context.Context, cred *model.Credential, page int) (*model.TargetPage, error) {
	var dtos []targetDTO
	p, err := c.authed(ctx, cred, http.MethodGet, "/targets", pageQuery(page), &dtos, true)
	if err != nil {
		return nil, err
	}

	items := make([]model.Target, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, model.Target(d))
	}
	return &model.TargetPage{Items: items, Page: *p}, nil
}

// GetTarget fetches a single target by id.
func (c *Client) GetTarget(ctx context.Context, cred *model.Credential, id int64) (*model.Target, error) {
	var dto targetDTO
	if _, err := c.authed(ctx, cred, http.MethodGet, fmt.Sprintf("/targets/%d", id), nil, &dto, false); err != nil {
		return nil, err
	}
	target := model.Target(dto)
	return &target, nil
}

// ListLeads fetches one page of leads; onlyReady narrows the list to
// outreach-ready leads via the backend filter.
func (c *Client) ListLeads(ctx context.Context, cred *model.Credential, page int, onlyReady bool) (*model.LeadPage, error) {
	query := pageQuery(page)
	if onlyReady {
		query.Set("outreach_ready", "true")
	}

	var dtos []leadDTO
	p, err := c.authed(ctx, cred, http.MethodGet, "/leads", query, &dtos, true)
	if err != nil {
		return nil, err
	}

	items := make([]model.Lead, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, model.Lead(d))
	}
	return &model.LeadPage{Items: items, Page: *p}, nil
}

// GetLead fetches a single lead by id.
func (c *Client) GetLead(ctx context.Context, cred *model.Credential, id int64) (*model.Lead, error) {
	var dto leadDTO
	if _, err := c.authed(ctx, cred, http.MethodGet, fmt.Sprintf("/leads/%d", id), nil, &dto, false); err != nil {
		return nil, err
	}
	lead := model.Lead(dto)
	return &lead, nil
}

// ListContentAnalysis fetches one page of the read-only content analysis feed.
func (c *Client) ListContentAnalysis(ctx context.Context, cred *model.Credential, page int) (*model.ContentPage, error) {
	var dtos []contentDTO
	p, err := c.authed(ctx, cred, http.MethodGet, "/content-analysis", pageQuery(page), &dtos, true)
	if err != nil {
		return nil, err
	}

	items := make([]model.ContentItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, model.ContentItem(d))
	}
	return &model.ContentPage{Items: items, Page: *p}, nil
}

// GetStats fetches the aggregate counters.
func (c *Client) GetStats(ctx context.Context, cred *model.Credential) (*model.Stats, error) {
	var dto statsDTO
	if _, err := c.authed(ctx, cred, http.MethodGet, "/stats", nil, &dto, false); err != nil {
		return nil, err
	}
	stats := model.Stats(dto)
	return &stats, nil
}

