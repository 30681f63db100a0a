// Package leadapi implements the LeadAPI port over the backend's JSON HTTP API.
package leadapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/ericfisherdev/leadbot/internal/domain/model"
	"github.com/ericfisherdev/leadbot/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.LeadAPI = (*Client)(nil)

// perPage is the fixed page size for all list endpoints.
const perPage = 10

// maxResponseBytes bounds how much of a backend response is read.
const maxResponseBytes = 4 << 20

// Toucher bumps a credential's last-used timestamp. Satisfied by the
// CredentialStore port; narrowed here so the client depends only on what it
// uses.
type Toucher interface {
	Touch(ctx context.Context, identity string) error
}

// Client implements the driven.LeadAPI port. The transport stack is
// httpcache's memory cache (conditional GET revalidation for the read-heavy
// list/detail endpoints) under a bounded-timeout http.Client.
type Client struct {
	http    *http.Client
	toucher Toucher
	logger  *slog.Logger
}

// NewClient creates a backend API client. timeout bounds every call end to
// end; toucher may be nil to disable last-used tracking.
func NewClient(timeout time.Duration, toucher Toucher, logger *slog.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: httpcache.NewMemoryCacheTransport(),
		},
		toucher: toucher,
		logger:  logger,
	}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination *pagination     `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// errorBody is the backend's error payload. Either field may carry the
// message depending on the endpoint.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Verify performs one lightweight read-only call with an unstored token.
// It persists nothing and records no last-used timestamp; the onboarding
// flow stores the credential only after Verify succeeds.
func (c *Client) Verify(ctx context.Context, token, baseURL string) error {
	_, err := c.do(ctx, token, baseURL, http.MethodGet, "/stats", nil, nil, false)
	return err
}

// do issues one authenticated request and normalizes the outcome. A non-nil
// out receives the unmarshaled "data" field; wantPage additionally requires
// and returns the pagination envelope. All failures surface as
// *model.APIError or a wrapped driven.ErrMalformedResponse, never as raw
// transport errors.
func (c *Client) do(ctx context.Context, token, baseURL, method, path string, query url.Values, out any, wantPage bool) (*model.Page, error) {
	u := strings.TrimRight(baseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, &model.APIError{Message: "invalid request"}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &model.APIError{Message: "request timed out"}
		}
		return nil, &model.APIError{Message: "backend unreachable"}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &model.APIError{Message: "reading response failed"}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, body)
	}

	if out == nil && !wantPage {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Data == nil {
		return nil, fmt.Errorf("%w: missing data field", driven.ErrMalformedResponse)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("%w: %v", driven.ErrMalformedResponse, err)
		}
	}

	if !wantPage {
		return nil, nil
	}
	if env.Pagination == nil {
		return nil, fmt.Errorf("%w: missing pagination envelope", driven.ErrMalformedResponse)
	}
	p := model.Page{
		Page:       env.Pagination.Page,
		TotalPages: env.Pagination.Pages,
		TotalCount: env.Pagination.Total,
	}
	if p.Page < 0 || p.Page > p.TotalPages {
		return nil, fmt.Errorf("%w: page %d of %d", driven.ErrMalformedResponse, p.Page, p.TotalPages)
	}
	return &p, nil
}

// authed wraps do for calls made with a stored credential and fires the
// best-effort last-used touch on success.
func (c *Client) authed(ctx context.Context, cred *model.Credential, method, path string, query url.Values, out any, wantPage bool) (*model.Page, error) {
	page, err := c.do(ctx, cred.Token, cred.BaseURL, method, path, query, out, wantPage)
	if err != nil {
		return nil, err
	}
	c.touchAsync(cred.Identity)
	return page, nil
}

// touchAsync bumps last_used_at in the background. Failures are logged and
// swallowed; the primary result is already determined when this runs.
func (c *Client) touchAsync(identity string) {
	if c.toucher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.toucher.Touch(ctx, identity); err != nil {
			c.logger.Debug("credential touch failed", "identity", identity, "error", err)
		}
	}()
}

// apiError converts a non-2xx response into a typed APIError, preferring the
// backend's own message when the body parses.
func apiError(status int, body []byte) *model.APIError {
	var eb errorBody
	msg := "request failed"
	if err := json.Unmarshal(body, &eb); err == nil {
		switch {
		case eb.Error != "":
			msg = eb.Error
		case eb.Message != "":
			msg = eb.Message
		}
	}
	return &model.APIError{Status: status, Message: msg}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// pageQuery builds the standard list query for a 1-based page number.
func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
}
