package handlers

import (
	"net/http"

	"clientportal/internal/directory"
	"clientportal/internal/models"
)

func Home(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := d.Sessions.Current()
		body := map[string]any{
			"app":           d.AppName,
			"authenticated": ok,
			"navigation":    navigation(sess.Role, ok),
		}
		if ok {
			body["user"] = sess
		}
		respondJSON(w, body)
	}
}

func Dashboard(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := currentSession(r)
		now := d.Clock.Now()
		byStatus := d.Tickets.CountByStatus()

		var company *models.Company
		if c, ok := d.Company.Current(); ok {
			company = &c
		}
		respondJSON(w, map[string]any{
			"user":           sess,
			"company":        company,
			"companyLoading": d.Company.Loading(),
			"navigation":     navigation(sess.Role, true),
			"stats": map[string]any{
				"totalClients":  d.Directory.ClientCount(),
				"totalTickets":  d.Tickets.Count(),
				"openTickets":   byStatus[models.StatusOpen] + byStatus[models.StatusInProgress],
				"byStatus":      byStatus,
				"averageRating": d.Directory.AverageRating(),
			},
			"recentTickets":  d.Render.Tickets(d.Tickets.Recent(5), now),
			"recentFeedback": d.Render.Feedback(firstN(d.Directory.Feedback("", 0, directory.SortRecent), 3), now),
		})
	}
}

func firstN[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
