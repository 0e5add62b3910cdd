// Package session owns the portal's single authenticated identity and
// mirrors it to durable storage so it survives a restart.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"clientportal/internal/clock"
	"clientportal/internal/models"
	"clientportal/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StorageKey is the durable key holding the serialized session.
const StorageKey = "user"

var ErrNoSession = errors.New("no active session")

// Listener observes every session transition. prev and next may be nil.
type Listener func(prev, next *models.Session)

type Manager struct {
	store storage.Storage
	lg    *zap.SugaredLogger
	delay time.Duration

	// swap serializes transitions so storage writes, the slot and listener
	// notifications all happen in the same order.
	swap      sync.Mutex
	mu        sync.RWMutex
	current   *models.Session
	listeners []Listener

	newID func() string
}

func NewManager(store storage.Storage, lg *zap.SugaredLogger, delay time.Duration) *Manager {
	return &Manager{
		store: store,
		lg:    lg,
		delay: delay,
		newID: uuid.NewString,
	}
}

// Subscribe registers l for all later transitions. Listeners run while
// the transition lock is held and must not call back into the manager's
// mutating methods.
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

func (m *Manager) Current() (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return models.Session{}, false
	}
	return *m.current, true
}

// Login starts a session for email. No credential check is made.
func (m *Manager) Login(ctx context.Context, email, password string) (models.Session, error) {
	if err := clock.Wait(ctx, m.delay); err != nil {
		m.lg.Errorw("login error", "error", err)
		return models.Session{}, err
	}
	s := models.Session{
		ID:        "1",
		Name:      "John Doe",
		Email:     email,
		Role:      models.RoleCompany,
		AvatarURL: models.StrPtr("https://randomuser.me/api/portraits/men/32.jpg"),
		SessionID: m.newID(),
	}
	if err := m.install(ctx, s); err != nil {
		m.lg.Errorw("login error", "email", email, "error", err)
		return models.Session{}, err
	}
	m.lg.Infow("login", "user_id", s.ID, "email", s.Email)
	return s, nil
}

type SignupProfile struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

func (m *Manager) Signup(ctx context.Context, p SignupProfile) (models.Session, error) {
	if err := clock.Wait(ctx, m.delay); err != nil {
		m.lg.Errorw("signup error", "error", err)
		return models.Session{}, err
	}
	role := p.Role
	if role == "" {
		role = models.RoleCompany
	}
	s := models.Session{
		ID:        "2",
		Name:      p.Name,
		Email:     p.Email,
		Role:      role,
		SessionID: m.newID(),
	}
	if err := m.install(ctx, s); err != nil {
		m.lg.Errorw("signup error", "email", p.Email, "error", err)
		return models.Session{}, err
	}
	m.lg.Infow("signup", "user_id", s.ID, "email", s.Email, "role", s.Role)
	return s, nil
}

// install persists s and then replaces the slot. A storage failure leaves
// the slot as it was.
func (m *Manager) install(ctx context.Context, s models.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	m.swap.Lock()
	defer m.swap.Unlock()
	if err := m.store.Set(ctx, StorageKey, b); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	m.replace(&s)
	return nil
}

// Logout removes the stored record and then clears the slot. A storage
// failure leaves both in place. Without a session it still clears any
// stored record and reports ErrNoSession.
func (m *Manager) Logout(ctx context.Context) error {
	m.swap.Lock()
	defer m.swap.Unlock()

	if err := m.store.Remove(ctx, StorageKey); err != nil {
		m.lg.Errorw("logout error", "error", err)
		return fmt.Errorf("remove session: %w", err)
	}
	m.mu.RLock()
	had := m.current != nil
	m.mu.RUnlock()
	if !had {
		return ErrNoSession
	}
	m.replace(nil)
	return nil
}

// Restore loads a session left by a previous run. A missing or unreadable
// record, or one with an unknown role, leaves the portal logged out.
func (m *Manager) Restore(ctx context.Context) error {
	b, err := m.store.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		m.lg.Errorw("authentication error", "error", err)
		return err
	}
	var s models.Session
	if err := json.Unmarshal(b, &s); err != nil || s.ID == "" || !s.Role.Valid() {
		m.lg.Warnw("ignoring stored session", "role", s.Role, "error", err)
		return nil
	}

	m.swap.Lock()
	defer m.swap.Unlock()
	if s.SessionID == "" {
		s.SessionID = m.newID()
		b, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		if err := m.store.Set(ctx, StorageKey, b); err != nil {
			m.lg.Errorw("authentication error", "error", err)
			return fmt.Errorf("persist session: %w", err)
		}
	}
	m.replace(&s)
	m.lg.Infow("session restored", "user_id", s.ID)
	return nil
}

func (m *Manager) replace(next *models.Session) {
	m.mu.Lock()
	prev := m.current
	m.current = next
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	if prev == nil && next == nil {
		return
	}
	for _, l := range listeners {
		l(copySession(prev), copySession(next))
	}
}

func copySession(s *models.Session) *models.Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
