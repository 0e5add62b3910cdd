// Package company holds the profile and branding of the company behind the
// current session.
package company

import (
	"context"
	"errors"
	"sync"
	"time"

	"clientportal/internal/clock"
	"clientportal/internal/models"

	"go.uber.org/zap"
)

var (
	ErrNoCompany = errors.New("no company loaded")
	// ErrStale is returned when the session changed while an update was
	// waiting; the update is dropped.
	ErrStale = errors.New("session changed during update")
)

// FetchFunc loads the company for a session.
type FetchFunc func(ctx context.Context, s models.Session) (models.Company, error)

type Options struct {
	FetchDelay  time.Duration
	UpdateDelay time.Duration
	Fetch       FetchFunc
}

type Provider struct {
	lg          *zap.SugaredLogger
	fetchDelay  time.Duration
	updateDelay time.Duration
	fetch       FetchFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu          sync.RWMutex
	company     *models.Company
	owner       string // session id the slot belongs to
	gen         uint64
	loading     bool
	cancelFetch context.CancelFunc
}

func NewProvider(lg *zap.SugaredLogger, clk clock.Clock, opts Options) *Provider {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Provider{
		lg:          lg,
		fetchDelay:  opts.FetchDelay,
		updateDelay: opts.UpdateDelay,
		fetch:       opts.Fetch,
		ctx:         ctx,
		cancel:      cancel,
	}
	if p.fetch == nil {
		p.fetch = FixtureFetch(clk)
	}
	return p
}

// Close cancels in-flight fetches and waits for them to return.
func (p *Provider) Close() {
	p.cancel()
	p.wg.Wait()
}

func (p *Provider) Current() (models.Company, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.company == nil {
		return models.Company{}, false
	}
	return copyCompany(*p.company), true
}

func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// SessionChanged is a session.Listener. Losing the session clears the
// company at once; gaining one (or switching identity) starts a fetch
// whose result is applied only if the session is still the same when it
// completes.
func (p *Provider) SessionChanged(prev, next *models.Session) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if next != nil && next.SessionID == p.owner {
		return
	}
	p.gen++
	p.company = nil
	p.loading = false
	if p.cancelFetch != nil {
		p.cancelFetch()
		p.cancelFetch = nil
	}
	if next == nil {
		p.owner = ""
		return
	}

	p.owner = next.SessionID
	p.loading = true
	ctx, cancel := context.WithCancel(p.ctx)
	p.cancelFetch = cancel
	gen, s := p.gen, *next
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer cancel()
		p.load(ctx, gen, s)
	}()
}

func (p *Provider) load(ctx context.Context, gen uint64, s models.Session) {
	var c models.Company
	err := clock.Wait(ctx, p.fetchDelay)
	if err == nil {
		c, err = p.fetch(ctx, s)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || s.SessionID != p.owner {
		p.lg.Debugw("discarding company fetch for replaced session", "user_id", s.ID)
		return
	}
	p.loading = false
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.lg.Errorw("error fetching company data", "user_id", s.ID, "error", err)
		}
		return
	}
	p.company = &c
}

// UpdateCompany merges the non-nil fields of patch into the company.
func (p *Provider) UpdateCompany(ctx context.Context, patch models.CompanyPatch) (models.Company, error) {
	return p.update(ctx, "company", func(c *models.Company) {
		applyCompany(c, patch)
	})
}

// UpdateBranding merges the non-nil fields of patch into the branding.
func (p *Provider) UpdateBranding(ctx context.Context, patch models.BrandingPatch) (models.Company, error) {
	return p.update(ctx, "branding", func(c *models.Company) {
		applyBranding(&c.Branding, patch)
	})
}

func (p *Provider) update(ctx context.Context, what string, apply func(*models.Company)) (models.Company, error) {
	p.mu.RLock()
	loaded, gen := p.company != nil, p.gen
	p.mu.RUnlock()
	if !loaded {
		return models.Company{}, ErrNoCompany
	}

	if err := clock.Wait(ctx, p.updateDelay); err != nil {
		p.lg.Errorw("error updating "+what, "error", err)
		return models.Company{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen || p.company == nil {
		p.lg.Errorw("error updating "+what, "error", ErrStale)
		return models.Company{}, ErrStale
	}
	apply(p.company)
	return copyCompany(*p.company), nil
}

func applyCompany(c *models.Company, p models.CompanyPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.WebsiteURL != nil {
		c.WebsiteURL = optional(*p.WebsiteURL)
	}
	if p.LogoURL != nil {
		c.LogoURL = optional(*p.LogoURL)
	}
	if p.Subscription != nil {
		c.Subscription = *p.Subscription
	}
}

func applyBranding(b *models.Branding, p models.BrandingPatch) {
	if p.PrimaryColor != nil {
		b.PrimaryColor = *p.PrimaryColor
	}
	if p.SecondaryColor != nil {
		b.SecondaryColor = *p.SecondaryColor
	}
	if p.AccentColor != nil {
		b.AccentColor = *p.AccentColor
	}
	if p.LogoURL != nil {
		b.LogoURL = optional(*p.LogoURL)
	}
	if p.FaviconURL != nil {
		b.FaviconURL = optional(*p.FaviconURL)
	}
	if p.CustomCSS != nil {
		b.CustomCSS = optional(*p.CustomCSS)
	}
}

// optional maps "" to an absent value.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func copyCompany(c models.Company) models.Company {
	dup := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := *s
		return &v
	}
	c.WebsiteURL = dup(c.WebsiteURL)
	c.LogoURL = dup(c.LogoURL)
	c.Branding.LogoURL = dup(c.Branding.LogoURL)
	c.Branding.FaviconURL = dup(c.Branding.FaviconURL)
	c.Branding.CustomCSS = dup(c.Branding.CustomCSS)
	if c.Subscription.ExpiresAt != nil {
		t := *c.Subscription.ExpiresAt
		c.Subscription.ExpiresAt = &t
	}
	return c
}
