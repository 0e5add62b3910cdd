package handlers

import (
	"net/http"

	"clientportal/internal/auth"
	"clientportal/internal/clock"
	"clientportal/internal/company"
	"clientportal/internal/directory"
	"clientportal/internal/metrics"
	"clientportal/internal/models"
	"clientportal/internal/session"
	"clientportal/internal/tickets"
	"clientportal/internal/view"

	"go.uber.org/zap"
)

// Deps is everything the page handlers read or mutate.
type Deps struct {
	AppName       string
	SessionCookie string

	Sessions  *session.Manager
	Company   *company.Provider
	Tickets   *tickets.Store
	Directory *directory.Directory
	Signer    *auth.Signer
	Render    *view.Renderer
	Metrics   *metrics.Metrics
	Clock     clock.Clock
	Log       *zap.SugaredLogger
}

// currentSession is the session RequireSession admitted the request with.
func currentSession(r *http.Request) models.Session {
	s, _ := auth.SessionFrom(r.Context())
	return s
}
