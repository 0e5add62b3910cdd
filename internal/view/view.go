// Package view shapes store records into the cards the portal pages show.
package view

import (
	"bytes"
	"time"

	"clientportal/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

const dateLayout = "Jan 2, 2006"

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	return &Renderer{
		md:     goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
		policy: bluemonday.UGCPolicy(),
	}
}

// Markdown renders user text to sanitized HTML. Rendering errors fall back
// to the escaped source.
func (r *Renderer) Markdown(src string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return bluemonday.StrictPolicy().Sanitize(src)
	}
	return r.policy.Sanitize(buf.String())
}

func ago(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

type TicketCard struct {
	models.Ticket
	DescriptionHTML string `json:"descriptionHtml"`
	CreatedDate     string `json:"createdDate"`
	UpdatedAgo      string `json:"updatedAgo"`
	IsNew           bool   `json:"isNew"`
}

func (r *Renderer) Ticket(t models.Ticket, now time.Time) TicketCard {
	return TicketCard{
		Ticket:          t,
		DescriptionHTML: r.Markdown(t.Description),
		CreatedDate:     t.CreatedAt.Format(dateLayout),
		UpdatedAgo:      ago(t.UpdatedAt, now),
		IsNew:           !t.Viewed,
	}
}

func (r *Renderer) Tickets(ts []models.Ticket, now time.Time) []TicketCard {
	out := make([]TicketCard, 0, len(ts))
	for _, t := range ts {
		out = append(out, r.Ticket(t, now))
	}
	return out
}

type FeedbackCard struct {
	models.Feedback
	CreatedDate string `json:"createdDate"`
	CreatedAgo  string `json:"createdAgo"`
}

func (r *Renderer) Feedback(fs []models.Feedback, now time.Time) []FeedbackCard {
	out := make([]FeedbackCard, 0, len(fs))
	for _, f := range fs {
		out = append(out, FeedbackCard{
			Feedback:    f,
			CreatedDate: f.CreatedAt.Format(dateLayout),
			CreatedAgo:  ago(f.CreatedAt, now),
		})
	}
	return out
}

type ClientCard struct {
	models.Client
	JoinedDate string `json:"joinedDate"`
}

func (r *Renderer) Clients(cs []models.Client) []ClientCard {
	out := make([]ClientCard, 0, len(cs))
	for _, c := range cs {
		out = append(out, ClientCard{Client: c, JoinedDate: c.CreatedAt.Format(dateLayout)})
	}
	return out
}
