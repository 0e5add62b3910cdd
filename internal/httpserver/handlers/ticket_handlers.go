package handlers

import (
	"errors"
	"net/http"
	"slices"

	"clientportal/internal/auth"
	"clientportal/internal/forms"
	"clientportal/internal/models"
	"clientportal/internal/tickets"

	"github.com/go-chi/chi/v5"
)

func ListTickets(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := tickets.Filter{Query: q.Get("q")}
		if s := q.Get("status"); s != "" && s != "all" {
			f.Status = models.TicketStatus(s)
			if !slices.Contains(models.TicketStatuses, f.Status) {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
		}
		if p := q.Get("priority"); p != "" && p != "all" {
			f.Priority = models.TicketPriority(p)
			if !slices.Contains(models.TicketPriorities, f.Priority) {
				http.Error(w, "invalid priority", http.StatusBadRequest)
				return
			}
		}
		list := d.Tickets.List(f)
		respondJSON(w, map[string]any{
			"tickets": d.Render.Tickets(list, d.Clock.Now()),
			"total":   len(list),
		})
	}
}

func CreateTicket(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := forms.NewCreateTicketForm()
		if !decode(w, r, &form) {
			return
		}
		errs := forms.Validate(form)
		client, ok := d.Directory.Party(form.ClientID)
		if form.ClientID != "" && !ok {
			if errs == nil {
				errs = forms.FieldErrors{}
			}
			errs.Add("clientId", "Client not found")
		}
		if errs != nil {
			respondInvalid(w, errs)
			return
		}
		t := d.Tickets.Add(form.NewTicket(client))
		d.Metrics.TicketOp("create", nil)
		d.Log.Infow("ticket created", "ticket_id", t.ID, "client_id", client.ID, "user_id", auth.Subject(r.Context()))
		respondStatus(w, http.StatusCreated, d.Render.Ticket(t, d.Clock.Now()))
	}
}

func GetTicket(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := d.Tickets.Get(chi.URLParam(r, "id"))
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		respondJSON(w, d.Render.Ticket(t, d.Clock.Now()))
	}
}

func UpdateTicket(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		cur, ok := d.Tickets.Get(id)
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		form := forms.NewEditTicketForm(cur)
		if !decode(w, r, &form) {
			return
		}
		if errs := forms.Validate(form); errs != nil {
			respondInvalid(w, errs)
			return
		}
		t, err := d.Tickets.Update(id, form.Patch())
		d.Metrics.TicketOp("update", err)
		if err != nil {
			ticketError(d, w, id, err)
			return
		}
		respondJSON(w, d.Render.Ticket(t, d.Clock.Now()))
	}
}

// MarkTicketViewed clears the "new" badge on a ticket.
func MarkTicketViewed(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		viewed := true
		t, err := d.Tickets.Update(id, models.TicketPatch{Viewed: &viewed})
		d.Metrics.TicketOp("view", err)
		if err != nil {
			ticketError(d, w, id, err)
			return
		}
		respondJSON(w, d.Render.Ticket(t, d.Clock.Now()))
	}
}

func DeleteTicket(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		err := d.Tickets.Delete(id)
		d.Metrics.TicketOp("delete", err)
		if err != nil {
			ticketError(d, w, id, err)
			return
		}
		d.Log.Infow("ticket deleted", "ticket_id", id, "user_id", auth.Subject(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}
}

func ticketError(d *Deps, w http.ResponseWriter, id string, err error) {
	if errors.Is(err, tickets.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	d.Log.Errorw("ticket operation failed", "ticket_id", id, "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
