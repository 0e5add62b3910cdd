package handlers

import (
	"net/http"
	"strconv"

	"clientportal/internal/directory"
	"clientportal/internal/models"
)

func ListClients(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var status models.ClientStatus
		switch s := q.Get("status"); s {
		case "", "all":
		case string(models.ClientActive), string(models.ClientInactive), string(models.ClientPending):
			status = models.ClientStatus(s)
		default:
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		list := d.Directory.Clients(q.Get("q"), status)
		respondJSON(w, map[string]any{"clients": d.Render.Clients(list), "total": len(list)})
	}
}

func ListFeedback(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		rating := 0
		if s := q.Get("rating"); s != "" && s != "all" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 5 {
				http.Error(w, "rating must be 1-5", http.StatusBadRequest)
				return
			}
			rating = n
		}
		sortBy := directory.SortRecent
		switch s := directory.FeedbackSort(q.Get("sort")); s {
		case "":
		case directory.SortRecent, directory.SortRating, directory.SortPopular:
			sortBy = s
		default:
			http.Error(w, "invalid sort", http.StatusBadRequest)
			return
		}
		list := d.Directory.Feedback(q.Get("q"), rating, sortBy)
		respondJSON(w, map[string]any{
			"feedback":      d.Render.Feedback(list, d.Clock.Now()),
			"total":         len(list),
			"averageRating": d.Directory.AverageRating(),
		})
	}
}
