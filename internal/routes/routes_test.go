package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nusacrm/internal/api"
	"nusacrm/internal/cache"
	"nusacrm/internal/handlers"
	"nusacrm/internal/models"
	"nusacrm/internal/notify"
	"nusacrm/internal/pdf"
	"nusacrm/internal/services"
	"nusacrm/internal/session"
)

type harness struct {
	router  *gin.Engine
	session *session.Session
	center  *notify.Center
	backend *fakeBackend
}

// fakeBackend stands in for the remote CRM API.
type fakeBackend struct {
	server       *http.ServeMux
	approveCalls int
}

func envelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"code": status, "status": http.StatusText(status), "message": message, "data": data,
	})
}

func newHarness(t *testing.T) (*harness, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &fakeBackend{server: http.NewServeMux()}
	backend.server.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			envelope(w, http.StatusBadRequest, "Invalid email or password", nil)
			return
		}
		role := "SALES"
		if strings.HasPrefix(req.Email, "manager") {
			role = "MANAGER"
		}
		envelope(w, http.StatusOK, "ok", models.LoginResponse{
			User:         models.User{ID: 1, Name: "Op", Email: req.Email, Role: role},
			AccessToken:  "tok",
			RefreshToken: "ref",
		})
	})
	backend.server.HandleFunc("GET /deals/7", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, "ok", models.Deal{ID: 7, Status: models.DealWaitingApproval})
	})
	backend.server.HandleFunc("PATCH /deals/7/approve", func(w http.ResponseWriter, r *http.Request) {
		backend.approveCalls++
		envelope(w, http.StatusOK, "ok", models.Deal{ID: 7, Status: models.DealApproved})
	})

	apiServer := httptest.NewServer(backend.server)

	sess := session.New(nil)
	center := notify.NewCenter()
	client := api.NewClient(api.Config{BaseURL: apiServer.URL, Session: sess, Notifier: center})
	queryCache := cache.New(30 * time.Second)

	authService := services.NewAuthService(client, sess, queryCache)
	leadService := services.NewLeadService(client, queryCache)
	productService := services.NewProductService(client, queryCache)
	dealService := services.NewDealService(client, queryCache)
	customerService := services.NewCustomerService(client, queryCache)
	dashboardService := services.NewDashboardService(client, queryCache)
	reportService := services.NewReportService(client, queryCache, pdf.NewReportGenerator("Test"))

	var telegram *services.TelegramNotifier

	router := gin.New()
	SetupRoutes(
		router,
		sess,
		center,
		handlers.NewAuthHandler(authService, sess, center),
		handlers.NewDashboardHandler(dashboardService, sess, center),
		handlers.NewLeadHandler(leadService, sess, center),
		handlers.NewProductHandler(productService, sess, center),
		handlers.NewDealHandler(dealService, productService, leadService, customerService, telegram, sess, center),
		handlers.NewCustomerHandler(customerService, sess, center),
		handlers.NewReportHandler(reportService, sess, center),
	)

	return &harness{router: router, session: sess, center: center, backend: backend}, apiServer.Close
}

func (h *harness) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) login(t *testing.T, email string) {
	t.Helper()
	w := h.post("/login", url.Values{"email": {email}, "password": {"secret"}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
	require.True(t, h.session.IsAuthenticated())
	h.center.Drain()
}

func TestRoutes_UnauthenticatedRedirectsToLogin(t *testing.T) {
	h, done := newHarness(t)
	defer done()

	for _, path := range []string{"/dashboard", "/leads", "/deals/7", "/reports"} {
		w := h.get(path)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestRoutes_LoginSuccess(t *testing.T) {
	h, done := newHarness(t)
	defer done()

	h.login(t, "sales@nusa.net")
	assert.Equal(t, "tok", h.session.AccessToken())
	assert.Equal(t, "sales@nusa.net", h.session.User().Email)
}

func TestRoutes_LoginRejectedLeavesSessionEmpty(t *testing.T) {
	h, done := newHarness(t)
	defer done()

	w := h.post("/login", url.Values{"email": {"sales@nusa.net"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, h.session.IsAuthenticated())

	// the backend's message surfaced as a notification
	var texts []string
	for _, m := range h.center.Drain() {
		texts = append(texts, m.Text)
	}
	assert.Contains(t, texts, "Invalid email or password")
}

func TestRoutes_LoginValidationSkipsBackend(t *testing.T) {
	h, done := newHarness(t)
	defer done()

	w := h.post("/login", url.Values{"email": {"not-an-email"}, "password": {"secret"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, h.session.IsAuthenticated())
}

func TestRoutes_ApproveRequiresManager(t *testing.T) {
	h, done := newHarness(t)
	defer done()

	h.login(t, "sales@nusa.net")
	w := h.post("/deals/7/approve", url.Values{"note": {"ok"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
	assert.Zero(t, h.backend.approveCalls, "a non-manager must never reach the transition endpoint")
}

func TestRoutes_ManagerApproves(t *testing.T) {
	h, done := newHarness(t)
	defer done()

	h.login(t, "manager@nusa.net")
	w := h.post("/deals/7/approve", url.Values{"note": {"good margin"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/deals/7", w.Header().Get("Location"))
	assert.Equal(t, 1, h.backend.approveCalls)
}

func TestRoutes_LogoutClearsSession(t *testing.T) {
	h, done := newHarness(t)
	defer done()

	h.login(t, "sales@nusa.net")
	w := h.post("/logout", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, h.session.IsAuthenticated())
}

func TestRoutes_UnknownPathFallsBack(t *testing.T) {
	h, done := newHarness(t)
	defer done()

	w := h.get("/nope")
	assert.Equal(t, "/login", w.Header().Get("Location"))

	h.login(t, "sales@nusa.net")
	w = h.get("/nope")
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}
