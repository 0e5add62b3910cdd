package models

import "time"

type Plan string

const (
	PlanFree     Plan = "free"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "inactive"
	SubscriptionTrial    SubscriptionStatus = "trial"
)

type Branding struct {
	PrimaryColor   string  `json:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor"`
	AccentColor    string  `json:"accentColor"`
	LogoURL        *string `json:"logoUrl,omitempty"`
	FaviconURL     *string `json:"faviconUrl,omitempty"`
	CustomCSS      *string `json:"customCss,omitempty"`
}

type Subscription struct {
	Plan      Plan               `json:"plan"`
	Status    SubscriptionStatus `json:"status"`
	ExpiresAt *time.Time         `json:"expiresAt,omitempty"`
}

type Company struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	WebsiteURL   *string      `json:"websiteUrl,omitempty"`
	LogoURL      *string      `json:"logoUrl,omitempty"`
	Branding     Branding     `json:"branding"`
	Subscription Subscription `json:"subscription"`
}

// CompanyPatch carries the top-level company fields to overwrite. A nil
// field is left alone; a non-nil pointer to "" clears an optional URL.
type CompanyPatch struct {
	Name         *string       `json:"name,omitempty"`
	Description  *string       `json:"description,omitempty"`
	WebsiteURL   *string       `json:"websiteUrl,omitempty"`
	LogoURL      *string       `json:"logoUrl,omitempty"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

// BrandingPatch follows the same rules as CompanyPatch for the nested
// branding object.
type BrandingPatch struct {
	PrimaryColor   *string `json:"primaryColor,omitempty"`
	SecondaryColor *string `json:"secondaryColor,omitempty"`
	AccentColor    *string `json:"accentColor,omitempty"`
	LogoURL        *string `json:"logoUrl,omitempty"`
	FaviconURL     *string `json:"faviconUrl,omitempty"`
	CustomCSS      *string `json:"customCss,omitempty"`
}
