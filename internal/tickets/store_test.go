package tickets

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"clientportal/internal/clock"
	"clientportal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTicket(title string) models.NewTicket {
	return models.NewTicket{
		Title:       title,
		Description: "B",
		Priority:    models.PriorityLow,
		Client:      models.Party{ID: "C1", Name: "N"},
	}
}

func TestStore_Add(t *testing.T) {
	s := NewStore(clock.NewFake(epoch))

	got := s.Add(newTicket("A"))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, models.StatusOpen, got.Status)
	assert.False(t, got.Viewed)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "C1", got.Client.ID)

	stored, ok := s.Get(got.ID)
	require.True(t, ok)
	assert.Equal(t, got, stored)
}

func TestStore_AddContinuesAfterFixtures(t *testing.T) {
	s := NewStore(clock.NewFake(epoch), Fixtures(epoch)...)
	require.Equal(t, 2, s.Count())

	got := s.Add(newTicket("A"))
	assert.Equal(t, "TCK-1003", got.ID)
	assert.Equal(t, "TCK-1004", s.Add(newTicket("B")).ID)
}

func TestStore_AddUniqueUnderConcurrency(t *testing.T) {
	s := NewStore(clock.Real())
	const workers = 20
	const perWorker = 25

	var wg sync.WaitGroup
	var seen sync.Map
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				tk := s.Add(newTicket("C"))
				if _, loaded := seen.LoadOrStore(tk.ID, struct{}{}); loaded {
					t.Errorf("duplicate ticket id %s", tk.ID)
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, workers*perWorker, s.Count())
}

func TestStore_Update(t *testing.T) {
	t.Run("MergesGivenFields", func(t *testing.T) {
		s := NewStore(clock.NewFake(epoch))
		orig := s.Add(newTicket("A"))

		resolved := models.StatusResolved
		got, err := s.Update(orig.ID, models.TicketPatch{Status: &resolved})
		require.NoError(t, err)

		assert.Equal(t, models.StatusResolved, got.Status)
		assert.Equal(t, orig.ID, got.ID)
		assert.Equal(t, orig.Title, got.Title)
		assert.Equal(t, orig.Description, got.Description)
		assert.Equal(t, orig.Priority, got.Priority)
		assert.Equal(t, orig.Client, got.Client)
		assert.Equal(t, orig.CreatedAt, got.CreatedAt)
		assert.True(t, got.UpdatedAt.After(orig.UpdatedAt))
	})

	t.Run("UpdatedAtStrictlyIncreasesWithFrozenClock", func(t *testing.T) {
		fake := clock.NewFake(epoch)
		fake.Step = 0
		s := NewStore(fake)
		orig := s.Add(newTicket("A"))

		title := "A2"
		first, err := s.Update(orig.ID, models.TicketPatch{Title: &title})
		require.NoError(t, err)
		second, err := s.Update(orig.ID, models.TicketPatch{Title: &title})
		require.NoError(t, err)

		assert.True(t, first.UpdatedAt.After(orig.UpdatedAt))
		assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	})

	t.Run("MissingIDLeavesCollectionUnchanged", func(t *testing.T) {
		s := NewStore(clock.NewFake(epoch), Fixtures(epoch)...)
		before := s.List(Filter{})

		title := "X"
		_, err := s.Update("TCK-404", models.TicketPatch{Title: &title})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.True(t, reflect.DeepEqual(before, s.List(Filter{})))
	})

	t.Run("ReturnedValueIsDetached", func(t *testing.T) {
		s := NewStore(clock.NewFake(epoch), Fixtures(epoch)...)
		got, ok := s.Get("TCK-1002")
		require.True(t, ok)
		got.AssignedTo.Name = "changed"
		*got.Client.AvatarURL = "changed"

		again, _ := s.Get("TCK-1002")
		assert.Equal(t, "Michael Brown", again.AssignedTo.Name)
		assert.NotEqual(t, "changed", *again.Client.AvatarURL)
	})
}

func TestStore_Delete(t *testing.T) {
	s := NewStore(clock.NewFake(epoch), Fixtures(epoch)...)
	added := s.Add(newTicket("A"))
	require.Equal(t, 3, s.Count())

	require.NoError(t, s.Delete(added.ID))
	assert.Equal(t, 2, s.Count())
	_, ok := s.Get(added.ID)
	assert.False(t, ok)

	before := s.List(Filter{})
	assert.ErrorIs(t, s.Delete(added.ID), ErrNotFound)
	assert.Equal(t, before, s.List(Filter{}))
}

func TestStore_CreateEditDelete(t *testing.T) {
	s := NewStore(clock.NewFake(epoch), Fixtures(epoch)...)
	others := s.List(Filter{})

	created := s.Add(newTicket("A"))
	assert.Equal(t, models.StatusOpen, created.Status)
	assert.Len(t, s.List(Filter{}), 3)

	resolved := models.StatusResolved
	_, err := s.Update(created.ID, models.TicketPatch{Status: &resolved})
	require.NoError(t, err)
	got, _ := s.Get(created.ID)
	assert.Equal(t, models.StatusResolved, got.Status)
	for _, o := range others {
		cur, ok := s.Get(o.ID)
		require.True(t, ok)
		assert.Equal(t, o, cur)
	}

	require.NoError(t, s.Delete(created.ID))
	for _, tk := range s.List(Filter{}) {
		assert.NotEqual(t, created.ID, tk.ID)
	}
}

func TestStore_List(t *testing.T) {
	s := NewStore(clock.NewFake(epoch), Fixtures(epoch)...)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"All", Filter{}, []string{"TCK-1001", "TCK-1002"}},
		{"ByStatus", Filter{Status: models.StatusInProgress}, []string{"TCK-1002"}},
		{"ByPriority", Filter{Priority: models.PriorityHigh}, []string{"TCK-1001"}},
		{"QueryTitle", Filter{Query: "dashboard"}, []string{"TCK-1001"}},
		{"QueryClientName", Filter{Query: "SARAH"}, []string{"TCK-1002"}},
		{"QueryDescription", Filter{Query: "crm system"}, []string{"TCK-1002"}},
		{"NoMatch", Filter{Query: "printer"}, nil},
		{"Combined", Filter{Query: "api", Status: models.StatusOpen}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, tk := range s.List(tt.filter) {
				ids = append(ids, tk.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestStore_RecentAndCounts(t *testing.T) {
	fake := clock.NewFake(epoch.Add(time.Hour))
	s := NewStore(fake, Fixtures(epoch)...)
	a := s.Add(newTicket("A"))
	b := s.Add(newTicket("B"))

	recent := s.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, b.ID, recent[0].ID)
	assert.Equal(t, a.ID, recent[1].ID)

	counts := s.CountByStatus()
	assert.Equal(t, 3, counts[models.StatusOpen])
	assert.Equal(t, 1, counts[models.StatusInProgress])
	assert.Equal(t, 0, counts[models.StatusClosed])
}
