// Package tickets holds the in-memory ticket collection. Nothing here is
// persisted; a restart brings back only the fixture tickets.
package tickets

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"clientportal/internal/clock"
	"clientportal/internal/models"
)

var ErrNotFound = errors.New("ticket not found")

const idPrefix = "TCK-"

type Store struct {
	mu     sync.RWMutex
	clock  clock.Clock
	order  []string
	byID   map[string]*models.Ticket
	nextID int
}

// NewStore returns a store holding seed in the given order. Generated
// identifiers continue after the highest numeric seed identifier.
func NewStore(clk clock.Clock, seed ...models.Ticket) *Store {
	s := &Store{
		clock:  clk,
		byID:   make(map[string]*models.Ticket, len(seed)),
		nextID: 1001,
	}
	for _, t := range seed {
		t := clone(t)
		s.order = append(s.order, t.ID)
		s.byID[t.ID] = &t
		if n, err := strconv.Atoi(strings.TrimPrefix(t.ID, idPrefix)); err == nil && n >= s.nextID {
			s.nextID = n + 1
		}
	}
	return s
}

func (s *Store) newID() string {
	for {
		id := fmt.Sprintf("%s%d", idPrefix, s.nextID)
		s.nextID++
		if _, taken := s.byID[id]; !taken {
			return id
		}
	}
}

// Add creates an open, unviewed ticket and returns it.
func (s *Store) Add(in models.NewTicket) models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	t := models.Ticket{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      models.StatusOpen,
		Priority:    in.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
		Viewed:      false,
		Client:      in.Client,
		AssignedTo:  in.AssignedTo,
	}
	t = clone(t)
	s.order = append(s.order, t.ID)
	s.byID[t.ID] = &t
	return clone(t)
}

// Update merges the non-nil fields of p into the ticket and refreshes
// UpdatedAt. A missing id leaves the collection untouched.
func (s *Store) Update(id string, p models.TicketPatch) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return models.Ticket{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Viewed != nil {
		t.Viewed = *p.Viewed
	}
	now := s.clock.Now()
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = now
	return clone(*t), nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Get(id string) (models.Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok {
		return models.Ticket{}, false
	}
	return clone(*t), true
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Query    string
	Status   models.TicketStatus
	Priority models.TicketPriority
}

func (f Filter) match(t *models.Ticket) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(strings.ToLower(t.Client.Name), q)
	}
	return true
}

// List returns matching tickets in creation order.
func (s *Store) List(f Filter) []models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Ticket, 0, len(s.order))
	for _, id := range s.order {
		if t := s.byID[id]; f.match(t) {
			out = append(out, clone(*t))
		}
	}
	return out
}

// Recent returns up to n tickets, most recently updated first.
func (s *Store) Recent(n int) []models.Ticket {
	all := s.List(Filter{})
	sort.SliceStable(all, func(i, j int) bool { return all[i].UpdatedAt.After(all[j].UpdatedAt) })
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Store) CountByStatus() map[models.TicketStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.TicketStatus]int, len(models.TicketStatuses))
	for _, st := range models.TicketStatuses {
		counts[st] = 0
	}
	for _, t := range s.byID {
		counts[t.Status]++
	}
	return counts
}

func clone(t models.Ticket) models.Ticket {
	if t.Client.AvatarURL != nil {
		t.Client.AvatarURL = models.StrPtr(*t.Client.AvatarURL)
	}
	if t.AssignedTo != nil {
		a := *t.AssignedTo
		if a.AvatarURL != nil {
			a.AvatarURL = models.StrPtr(*a.AvatarURL)
		}
		t.AssignedTo = &a
	}
	return t
}
