package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nusacrm/internal/api"
	"nusacrm/internal/cache"
	"nusacrm/internal/models"
	"nusacrm/internal/session"
)

func newBackend(t *testing.T, handler http.HandlerFunc) (*api.Client, *cache.Cache, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	client := api.NewClient(api.Config{BaseURL: server.URL, Session: session.New(nil)})
	return client, cache.New(30 * time.Second), server.Close
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"code":    status,
		"status":  http.StatusText(status),
		"message": "ok",
		"data":    data,
	})
}

func TestDealService_CreateSendsFilteredPayload(t *testing.T) {
	var got models.CreateDealRequest
	client, c, done := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/deals", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		respond(w, http.StatusCreated, models.Deal{ID: 11, Status: models.DealDraft})
	})
	defer done()

	svc := NewDealService(client, c)
	deal, err := svc.Create(context.Background(), models.CreateDealRequest{
		LeadID: 5,
		Items: []models.CreateDealItem{
			{},
			{ProductID: 3, Quantity: 2, AgreedPrice: 150000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 11, deal.ID)
	assert.Equal(t, 5, got.LeadID)
	require.Len(t, got.Items, 1, "placeholder rows must not reach the wire")
	assert.Equal(t, 3, got.Items[0].ProductID)
}

func TestDealService_CreateWithoutItemsSkipsNetwork(t *testing.T) {
	calls := 0
	client, c, done := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		respond(w, http.StatusCreated, nil)
	})
	defer done()

	svc := NewDealService(client, c)
	_, err := svc.Create(context.Background(), models.CreateDealRequest{
		LeadID: 5,
		Items:  []models.CreateDealItem{{ProductID: 0}},
	})
	assert.ErrorIs(t, err, ErrDealNoItems)
	assert.Zero(t, calls)
}

func TestDealService_TransitionsHitExpectedEndpoints(t *testing.T) {
	type hit struct{ method, path, note string }
	var hits []hit
	client, c, done := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		var body models.ApprovalActionRequest
		json.NewDecoder(r.Body).Decode(&body)
		hits = append(hits, hit{r.Method, r.URL.Path, body.Note})
		respond(w, http.StatusOK, models.Deal{ID: 7})
	})
	defer done()

	svc := NewDealService(client, c)
	ctx := context.Background()
	_, err := svc.Submit(ctx, 7)
	require.NoError(t, err)
	_, err = svc.Approve(ctx, 7, "looks good")
	require.NoError(t, err)
	_, err = svc.Reject(ctx, 7, "margin too thin")
	require.NoError(t, err)
	_, err = svc.Activate(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, []hit{
		{"PATCH", "/deals/7/submit", ""},
		{"PATCH", "/deals/7/approve", "looks good"},
		{"PATCH", "/deals/7/reject", "margin too thin"},
		{"POST", "/deals/7/activate", ""},
	}, hits)
}

func TestDealService_MutationDropsCachedReads(t *testing.T) {
	dealGets := 0
	client, c, done := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/deals/7":
			dealGets++
			respond(w, http.StatusOK, models.Deal{ID: 7, Status: models.DealWaitingApproval})
		case r.Method == http.MethodPatch && r.URL.Path == "/deals/7/approve":
			respond(w, http.StatusOK, models.Deal{ID: 7, Status: models.DealApproved})
		default:
			respond(w, http.StatusNotFound, nil)
		}
	})
	defer done()

	svc := NewDealService(client, c)
	ctx := context.Background()

	_, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	_, err = svc.Get(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 1, dealGets, "second read is served from cache")

	_, err = svc.Approve(ctx, 7, "")
	require.NoError(t, err)

	deal, err := svc.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, dealGets, "approval invalidates the detail entry")
	assert.Equal(t, models.DealApproved, deal.Status)
}
