package application

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/leadbot/internal/adapter/driven/leadapi"
	"github.com/ericfisherdev/leadbot/internal/domain/port/driven"
)

// Full onboarding-to-deletion walk against a fake backend, with the real API
// client in the middle.
func TestScenario_OnboardBrowseDelete(t *testing.T) {
	var deleteCalls atomic.Int64
	var lastListQuery atomic.Value

	mux := http.NewServeMux()
	mux.HandleFunc("GET /stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"total_jobs": 2}}`))
	})
	mux.HandleFunc("GET /jobs", func(w http.ResponseWriter, r *http.Request) {
		lastListQuery.Store(r.URL.RawQuery)
		_, _ = w.Write([]byte(`{
			"data": [
				{"id": 7, "name": "saas-founders", "status": "completed"},
				{"id": 9, "name": "fintech-ctos", "status": "pending"}
			],
			"pagination": {"page": 1, "pages": 1, "total": 2}
		}`))
	})
	mux.HandleFunc("DELETE /jobs/7", func(w http.ResponseWriter, r *http.Request) {
		if deleteCalls.Add(1) > 1 {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error": "job not found"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := newMockStore()
	client := leadapi.NewClient(5*time.Second, store, slog.Default())
	nav := NewNavigator(store, client, srv.URL, slog.Default())
	ctx := context.Background()

	// Browsing before onboarding yields the uniform not-onboarded screen.
	screen := nav.HandleAction(ctx, "U1", "jobs:list:1")
	assert.Contains(t, screen.Text, "not connected")

	// Onboard: verification hits /stats, then the credential is stored with
	// the default base URL.
	screen = nav.HandleCommand(ctx, "U1", "settoken", "T1-secret-token")
	assert.Contains(t, screen.Text, "Connected")

	cred, err := store.Get(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, "T1-secret-token", cred.Token)
	assert.Equal(t, srv.URL, cred.BaseURL)

	// List jobs: two selectable rows plus a back control.
	screen = nav.HandleAction(ctx, "U1", "jobs:list:1")
	assert.Equal(t, "page=1&per_page=10", lastListQuery.Load())
	assert.Contains(t, screen.Text, "Page 1/1")
	assert.Contains(t, screen.Text, "2 total")
	actions := actionsOf(screen)
	assert.Contains(t, actions, "jobs:open:7")
	assert.Contains(t, actions, "jobs:open:9")
	assert.Contains(t, actions, "menu")

	// Propose then cancel: no backend delete is issued.
	nav.HandleAction(ctx, "U1", "jobs:delete:7")
	screen = nav.HandleAction(ctx, "U1", "cancel")
	assert.Contains(t, screen.Text, "Cancelled")
	assert.Equal(t, int64(0), deleteCalls.Load())

	// Propose then confirm: exactly one delete call, terminal success screen.
	nav.HandleAction(ctx, "U1", "jobs:delete:7")
	screen = nav.HandleAction(ctx, "U1", "jobs:confirmdel:7")
	assert.Contains(t, screen.Text, "Job #7 deleted")
	assert.Equal(t, int64(1), deleteCalls.Load())

	// Double-tap: the backend's 404 reads as success for the user.
	screen = nav.HandleAction(ctx, "U1", "jobs:confirmdel:7")
	assert.Contains(t, screen.Text, "Job #7 deleted")
	assert.Equal(t, int64(2), deleteCalls.Load())

	// Tear down the account; browsing requires onboarding again.
	nav.HandleAction(ctx, "U1", "account:delete")
	screen = nav.HandleAction(ctx, "U1", "account:confirmdel")
	assert.Contains(t, screen.Text, "Credential deleted")

	_, err = store.Get(ctx, "U1")
	assert.ErrorIs(t, err, driven.ErrCredentialNotFound)

	screen = nav.HandleAction(ctx, "U1", "jobs:list:1")
	assert.Contains(t, screen.Text, "not connected")
}
