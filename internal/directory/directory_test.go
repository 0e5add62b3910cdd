package directory

import (
	"testing"
	"time"

	"clientportal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func ids[T any](items []T, id func(T) string) []string {
	out := []string{}
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func clientID(c models.Client) string     { return c.ID }
func feedbackID(f models.Feedback) string { return f.ID }

func TestClients(t *testing.T) {
	d := Default(now)
	tests := []struct {
		name   string
		query  string
		status models.ClientStatus
		want   []string
	}{
		{"All", "", "", []string{"CLT-001", "CLT-002", "CLT-003"}},
		{"ByName", "sarah", "", []string{"CLT-002"}},
		{"ByEmail", "MICHAEL.B@", "", []string{"CLT-003"}},
		{"ByStatus", "", models.ClientPending, []string{"CLT-003"}},
		{"Inactive", "", models.ClientInactive, []string{}},
		{"Combined", "john", models.ClientActive, []string{"CLT-001", "CLT-002"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(d.Clients(tt.query, tt.status), clientID))
		})
	}
}

func TestParty(t *testing.T) {
	d := Default(now)
	p, ok := d.Party("CLT-002")
	require.True(t, ok)
	assert.Equal(t, "Sarah Johnson", p.Name)
	_, ok = d.Party("CLT-404")
	assert.False(t, ok)
}

func TestFeedback(t *testing.T) {
	d := Default(now)
	tests := []struct {
		name   string
		query  string
		rating int
		sort   FeedbackSort
		want   []string
	}{
		{"Recent", "", 0, SortRecent, []string{"FDB-001", "FDB-002", "FDB-003"}},
		{"Rating", "", 0, SortRating, []string{"FDB-001", "FDB-003", "FDB-002"}},
		{"Popular", "", 0, SortPopular, []string{"FDB-001", "FDB-003", "FDB-002"}},
		{"FiveStars", "", 5, SortRecent, []string{"FDB-001", "FDB-003"}},
		{"QueryContent", "reporting", 0, SortRecent, []string{"FDB-002"}},
		{"QueryClient", "michael", 0, SortRecent, []string{"FDB-003"}},
		{"NoMatch", "", 1, SortRecent, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(d.Feedback(tt.query, tt.rating, tt.sort), feedbackID))
		})
	}
}

func TestAverageRating(t *testing.T) {
	assert.InDelta(t, 14.0/3.0, Default(now).AverageRating(), 1e-9)
	assert.Zero(t, New(nil, nil).AverageRating())
}
