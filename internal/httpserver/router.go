package httpserver

import (
	"net/http"

	"clientportal/internal/auth"
	"clientportal/internal/httpserver/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(d *handlers.Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger, d.Metrics.Middleware)

	r.Get("/", handlers.Home(d))
	r.Post("/login", handlers.Login(d))
	r.Post("/signup", handlers.Signup(d))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.RequireSession(d.Sessions, d.Signer, d.SessionCookie))
		protected.Post("/logout", handlers.Logout(d))
		protected.Get("/me", handlers.Me(d))
		protected.Get("/dashboard", handlers.Dashboard(d))
		protected.Get("/clients", handlers.ListClients(d))
		protected.Get("/tickets", handlers.ListTickets(d))
		protected.Post("/tickets", handlers.CreateTicket(d))
		protected.Get("/tickets/{id}", handlers.GetTicket(d))
		protected.Patch("/tickets/{id}", handlers.UpdateTicket(d))
		protected.Delete("/tickets/{id}", handlers.DeleteTicket(d))
		protected.Post("/tickets/{id}/viewed", handlers.MarkTicketViewed(d))
		protected.Get("/feedback", handlers.ListFeedback(d))
		protected.Get("/branding", handlers.GetBranding(d))
		protected.Put("/branding", handlers.UpdateBranding(d))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
	return r
}
