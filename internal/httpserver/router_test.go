package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clientportal/internal/auth"
	"clientportal/internal/clock"
	"clientportal/internal/company"
	"clientportal/internal/directory"
	"clientportal/internal/httpserver/handlers"
	"clientportal/internal/metrics"
	"clientportal/internal/session"
	"clientportal/internal/storage"
	"clientportal/internal/tickets"
	"clientportal/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type portal struct {
	t       *testing.T
	handler http.Handler
	deps    *handlers.Deps
}

func newPortal(t *testing.T) *portal {
	t.Helper()
	store, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	lg := zap.NewNop().Sugar()
	clk := clock.NewFake(epoch)
	m := metrics.New()
	sessions := session.NewManager(store, lg, 0)
	companies := company.NewProvider(lg, clk, company.Options{})
	t.Cleanup(companies.Close)
	sessions.Subscribe(companies.SessionChanged)
	sessions.Subscribe(m.SessionChanged)

	ticketStore := tickets.NewStore(clk, tickets.Fixtures(epoch)...)
	m.TrackTickets(ticketStore.Count)

	d := &handlers.Deps{
		AppName:       "Client Portal",
		SessionCookie: "portal_session",
		Sessions:      sessions,
		Company:       companies,
		Tickets:       ticketStore,
		Directory:     directory.Default(epoch),
		Signer:        auth.NewSigner("test-secret", time.Hour),
		Render:        view.NewRenderer(),
		Metrics:       m,
		Clock:         clk,
		Log:           lg,
	}
	return &portal{t: t, handler: NewRouter(d), deps: d}
}

func (p *portal) do(method, path, token string, body any) *httptest.ResponseRecorder {
	p.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(p.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	p.handler.ServeHTTP(rec, req)
	return rec
}

func (p *portal) login(email string) string {
	p.t.Helper()
	rec := p.do(http.MethodPost, "/login", "", map[string]any{"email": email, "password": "password123"})
	require.Equal(p.t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(p.t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(p.t, out.Token)
	return out.Token
}

func (p *portal) waitCompany() {
	p.t.Helper()
	require.Eventually(p.t, func() bool {
		_, ok := p.deps.Company.Current()
		return ok
	}, time.Second, 5*time.Millisecond)
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestRouter_HomeAnonymous(t *testing.T) {
	p := newPortal(t)
	rec := p.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeMap(t, rec)
	assert.Equal(t, "Client Portal", body["app"])
	assert.Equal(t, false, body["authenticated"])
	assert.NotContains(t, body, "user")
	assert.Contains(t, rec.Body.String(), `"path":"/login"`)
}

func TestRouter_GatedWithoutSession(t *testing.T) {
	p := newPortal(t)

	for _, path := range []string{"/dashboard", "/clients", "/tickets", "/feedback", "/branding", "/tickets/TCK-1001"} {
		rec := p.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}

	rec := p.do(http.MethodPost, "/tickets", "", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 2, p.deps.Tickets.Count())
}

func TestRouter_UnmatchedRedirectsHome(t *testing.T) {
	p := newPortal(t)
	rec := p.do(http.MethodGet, "/no/such/page", "", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRouter_LoginValidation(t *testing.T) {
	p := newPortal(t)
	rec := p.do(http.MethodPost, "/login", "", map[string]any{"email": "nope", "password": "short"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"errors":{
		"email":"Please enter a valid email address",
		"password":"Password must be at least 8 characters"}}`, rec.Body.String())

	_, ok := p.deps.Sessions.Current()
	assert.False(t, ok)
}

func TestRouter_LoginSetsCookie(t *testing.T) {
	p := newPortal(t)
	rec := p.do(http.MethodPost, "/login", "", map[string]any{
		"email": "jane@example.com", "password": "password123", "rememberMe": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "portal_session", cookies[0].Name)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookies[0])
	me := httptest.NewRecorder()
	p.handler.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)
	body := decodeMap(t, me)
	assert.Equal(t, "jane@example.com", body["email"])
	assert.Equal(t, "John Doe", body["name"])
	assert.Equal(t, "company", body["role"])
}

func TestRouter_Signup(t *testing.T) {
	p := newPortal(t)

	rec := p.do(http.MethodPost, "/signup", "", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "weakpass",
		"companyName": "Ada Co", "acceptTerms": false,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeMap(t, rec)["errors"].(map[string]any)
	assert.Equal(t, "Password must contain at least one uppercase letter", errs["password"])
	assert.Equal(t, "You must accept the terms and conditions", errs["acceptTerms"])

	rec = p.do(http.MethodPost, "/signup", "", map[string]any{
		"name": "Ada", "email": "ada@example.com", "password": "Str0ngPass",
		"companyName": "Ada Co", "acceptTerms": true, "role": "client",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := decodeMap(t, rec)["user"].(map[string]any)
	assert.Equal(t, "2", user["id"])
	assert.Equal(t, "client", user["role"])

	home := p.do(http.MethodGet, "/", "", nil)
	assert.Contains(t, home.Body.String(), `{"label":"Support","path":"/tickets"}`)
}

func TestRouter_Dashboard(t *testing.T) {
	p := newPortal(t)
	tok := p.login("john@example.com")
	p.waitCompany()

	rec := p.do(http.MethodGet, "/dashboard", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeMap(t, rec)
	assert.Equal(t, "john@example.com", body["user"].(map[string]any)["email"])
	assert.Equal(t, "Acme Corporation", body["company"].(map[string]any)["name"])
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 3, stats["totalClients"])
	assert.EqualValues(t, 2, stats["totalTickets"])
	assert.Len(t, body["recentTickets"], 2)
	assert.Len(t, body["recentFeedback"], 3)
}

func TestRouter_TicketLifecycle(t *testing.T) {
	p := newPortal(t)
	tok := p.login("john@example.com")

	rec := p.do(http.MethodPost, "/tickets", tok, map[string]any{
		"title": "Printer on fire", "description": "It is **really** on fire", "clientId": "CLT-001",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeMap(t, rec)
	id := created["id"].(string)
	assert.Equal(t, "TCK-1003", id)
	assert.Equal(t, "open", created["status"])
	assert.Equal(t, "medium", created["priority"])
	assert.Equal(t, false, created["viewed"])
	assert.Equal(t, true, created["isNew"])
	assert.Contains(t, created["descriptionHtml"], "<strong>really</strong>")
	assert.Equal(t, "John Smith", created["client"].(map[string]any)["name"])

	rec = p.do(http.MethodPatch, "/tickets/"+id, tok, map[string]any{"status": "resolved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeMap(t, rec)
	assert.Equal(t, "resolved", updated["status"])
	assert.Equal(t, "Printer on fire", updated["title"])
	assert.Equal(t, created["createdAt"], updated["createdAt"])
	assert.NotEqual(t, created["updatedAt"], updated["updatedAt"])

	rec = p.do(http.MethodGet, "/tickets?status=resolved", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeMap(t, rec)["total"])

	rec = p.do(http.MethodPost, "/tickets/"+id+"/viewed", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeMap(t, rec)["isNew"])

	rec = p.do(http.MethodDelete, "/tickets/"+id, tok, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, http.StatusNotFound, p.do(http.MethodGet, "/tickets/"+id, tok, nil).Code)
	assert.Equal(t, http.StatusNotFound, p.do(http.MethodDelete, "/tickets/"+id, tok, nil).Code)
	assert.Equal(t, http.StatusNotFound, p.do(http.MethodPatch, "/tickets/"+id, tok, map[string]any{"status": "closed"}).Code)
	assert.Equal(t, 2, p.deps.Tickets.Count())
}

func TestRouter_CreateTicketValidation(t *testing.T) {
	p := newPortal(t)
	tok := p.login("john@example.com")

	tests := []struct {
		name  string
		body  map[string]any
		field string
		msg   string
	}{
		{"missing title", map[string]any{"description": "d", "clientId": "CLT-001"}, "title", "Title is required"},
		{"unknown client", map[string]any{"title": "t", "description": "d", "clientId": "CLT-999"}, "clientId", "Client not found"},
		{"missing client", map[string]any{"title": "t", "description": "d"}, "clientId", "Client is required"},
		{"bad priority", map[string]any{"title": "t", "description": "d", "clientId": "CLT-001", "priority": "asap"}, "priority", "Must be one of: low medium high urgent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := p.do(http.MethodPost, "/tickets", tok, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			errs := decodeMap(t, rec)["errors"].(map[string]any)
			assert.Equal(t, tt.msg, errs[tt.field])
		})
	}
	assert.Equal(t, 2, p.deps.Tickets.Count())
}

func TestRouter_ListFilters(t *testing.T) {
	p := newPortal(t)
	tok := p.login("john@example.com")

	assert.Equal(t, http.StatusBadRequest, p.do(http.MethodGet, "/tickets?status=bogus", tok, nil).Code)
	assert.Equal(t, http.StatusBadRequest, p.do(http.MethodGet, "/feedback?rating=9", tok, nil).Code)
	assert.Equal(t, http.StatusBadRequest, p.do(http.MethodGet, "/clients?status=gone", tok, nil).Code)

	rec := p.do(http.MethodGet, "/clients?status=pending", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeMap(t, rec)["total"])

	rec = p.do(http.MethodGet, "/feedback?sort=rating", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 3, decodeMap(t, rec)["total"])
}

func TestRouter_BrandingMerge(t *testing.T) {
	p := newPortal(t)
	tok := p.login("john@example.com")
	p.waitCompany()

	rec := p.do(http.MethodGet, "/branding", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	form := decodeMap(t, rec)["form"].(map[string]any)
	assert.Equal(t, "Acme Corporation", form["name"])
	assert.Equal(t, "#0284c7", form["primaryColor"])

	rec = p.do(http.MethodPut, "/branding", tok, map[string]any{"primaryColor": "#ff0000"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	c := decodeMap(t, rec)
	branding := c["branding"].(map[string]any)
	assert.Equal(t, "#ff0000", branding["primaryColor"])
	assert.Equal(t, "#0d9488", branding["secondaryColor"])
	assert.Equal(t, "#f97316", branding["accentColor"])
	assert.Equal(t, "Acme Corporation", c["name"])

	rec = p.do(http.MethodPut, "/branding", tok, map[string]any{"accentColor": "orange", "description": "short"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decodeMap(t, rec)["errors"].(map[string]any)
	assert.Equal(t, "Please enter a valid hex color", errs["accentColor"])
	assert.Equal(t, "Description must be at least 10 characters", errs["description"])

	current, ok := p.deps.Company.Current()
	require.True(t, ok)
	assert.Equal(t, "#f97316", current.Branding.AccentColor)
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	p := newPortal(t)
	tok := p.login("john@example.com")
	require.Equal(t, http.StatusOK, p.do(http.MethodGet, "/dashboard", tok, nil).Code)

	rec := p.do(http.MethodPost, "/logout", tok, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, http.StatusSeeOther, p.do(http.MethodGet, "/dashboard", tok, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, p.do(http.MethodPost, "/logout", tok, nil).Code)
	_, ok := p.deps.Sessions.Current()
	assert.False(t, ok)

	require.Eventually(t, func() bool {
		_, ok := p.deps.Company.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestRouter_ReloginInvalidatesOldToken(t *testing.T) {
	p := newPortal(t)
	first := p.login("john@example.com")
	second := p.login("jane@example.com")

	assert.Equal(t, http.StatusSeeOther, p.do(http.MethodGet, "/dashboard", first, nil).Code)
	assert.Equal(t, http.StatusOK, p.do(http.MethodGet, "/dashboard", second, nil).Code)
}

func TestRouter_Metrics(t *testing.T) {
	p := newPortal(t)
	p.login("john@example.com")

	rec := p.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.True(t, strings.Contains(out, "portal_tickets 2"), out)
	assert.Contains(t, out, "portal_session_active 1")
	assert.Contains(t, out, `route="/login"`)
}
