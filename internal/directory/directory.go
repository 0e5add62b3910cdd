// Package directory serves the read-only client and feedback listings.
package directory

import (
	"sort"
	"strings"
	"time"

	"clientportal/internal/models"
)

type Directory struct {
	clients  []models.Client
	feedback []models.Feedback
}

func New(clients []models.Client, feedback []models.Feedback) *Directory {
	return &Directory{clients: clients, feedback: feedback}
}

// Default returns the demo directory with feedback dated relative to now.
func Default(now time.Time) *Directory {
	return New(fixtureClients(), fixtureFeedback(now))
}

func (d *Directory) Client(id string) (models.Client, bool) {
	for _, c := range d.clients {
		if c.ID == id {
			return c, true
		}
	}
	return models.Client{}, false
}

// Party returns the ticket-facing reference for client id.
func (d *Directory) Party(id string) (models.Party, bool) {
	c, ok := d.Client(id)
	if !ok {
		return models.Party{}, false
	}
	return models.Party{ID: c.ID, Name: c.Name, AvatarURL: c.AvatarURL}, true
}

// Clients filters by a case-insensitive query over name and email and by
// status. An empty status matches all.
func (d *Directory) Clients(query string, status models.ClientStatus) []models.Client {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Client{}
	for _, c := range d.clients {
		if status != "" && c.Status != status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Email), q) {
			continue
		}
		out = append(out, c)
	}
	return out
}

type FeedbackSort string

const (
	SortRecent  FeedbackSort = "recent"
	SortRating  FeedbackSort = "rating"
	SortPopular FeedbackSort = "popular"
)

// Feedback filters by query over content and client name and by exact
// rating (0 matches all), then orders by sortBy.
func (d *Directory) Feedback(query string, rating int, sortBy FeedbackSort) []models.Feedback {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []models.Feedback{}
	for _, f := range d.feedback {
		if rating != 0 && f.Rating != rating {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(f.Content), q) && !strings.Contains(strings.ToLower(f.Client.Name), q) {
			continue
		}
		out = append(out, f)
	}
	switch sortBy {
	case SortRecent:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool { return out[i].LikesCount > out[j].LikesCount })
	}
	return out
}

// AverageRating is 0 when there is no feedback.
func (d *Directory) AverageRating() float64 {
	if len(d.feedback) == 0 {
		return 0
	}
	sum := 0
	for _, f := range d.feedback {
		sum += f.Rating
	}
	return float64(sum) / float64(len(d.feedback))
}

func (d *Directory) ClientCount() int { return len(d.clients) }
