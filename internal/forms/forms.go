package forms

import (
	"strings"

	"clientportal/internal/models"
	"clientportal/internal/session"
)

type LoginForm struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"min=8"`
	RememberMe bool   `json:"rememberMe"`
}

func (LoginForm) messages() map[string]string {
	return map[string]string{
		"email.required": "Please enter a valid email address",
		"email.email":    "Please enter a valid email address",
		"password.min":   "Password must be at least 8 characters",
	}
}

type SignupForm struct {
	Name        string      `json:"name" validate:"min=2"`
	Email       string      `json:"email" validate:"required,email"`
	Password    string      `json:"password" validate:"min=8,has_upper,has_lower,has_digit"`
	CompanyName string      `json:"companyName" validate:"min=2"`
	AcceptTerms bool        `json:"acceptTerms" validate:"eq=true"`
	Role        models.Role `json:"role" validate:"oneof=company client agent"`
}

// NewSignupForm returns the form with its defaults filled in.
func NewSignupForm() SignupForm {
	return SignupForm{Role: models.RoleCompany}
}

func (SignupForm) messages() map[string]string {
	return map[string]string{
		"name.min":           "Name must be at least 2 characters",
		"email.required":     "Please enter a valid email address",
		"email.email":        "Please enter a valid email address",
		"password.min":       "Password must be at least 8 characters",
		"password.has_upper": "Password must contain at least one uppercase letter",
		"password.has_lower": "Password must contain at least one lowercase letter",
		"password.has_digit": "Password must contain at least one number",
		"companyName.min":    "Company name must be at least 2 characters",
		"acceptTerms.eq":     "You must accept the terms and conditions",
	}
}

func (f SignupForm) Profile() session.SignupProfile {
	return session.SignupProfile{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		Role:     f.Role,
	}
}

type CreateTicketForm struct {
	Title       string                `json:"title" validate:"required,max=100"`
	Description string                `json:"description" validate:"required"`
	Priority    models.TicketPriority `json:"priority" validate:"oneof=low medium high urgent"`
	ClientID    string                `json:"clientId" validate:"required"`
}

func NewCreateTicketForm() CreateTicketForm {
	return CreateTicketForm{Priority: models.PriorityMedium}
}

func (CreateTicketForm) messages() map[string]string {
	return map[string]string{
		"title.required":       "Title is required",
		"title.max":            "Title is too long",
		"description.required": "Description is required",
		"clientId.required":    "Client is required",
	}
}

// NewTicket builds the store input; status and viewed are left to the store.
func (f CreateTicketForm) NewTicket(client models.Party) models.NewTicket {
	return models.NewTicket{
		Title:       f.Title,
		Description: f.Description,
		Priority:    f.Priority,
		Client:      client,
	}
}

type EditTicketForm struct {
	Title       string                `json:"title" validate:"required,max=100"`
	Description string                `json:"description" validate:"required"`
	Priority    models.TicketPriority `json:"priority" validate:"oneof=low medium high urgent"`
	Status      models.TicketStatus   `json:"status" validate:"oneof=open in_progress resolved closed"`
}

// NewEditTicketForm pre-fills the form from t, so a partial request body
// only changes the fields it names.
func NewEditTicketForm(t models.Ticket) EditTicketForm {
	return EditTicketForm{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
	}
}

func (EditTicketForm) messages() map[string]string {
	return CreateTicketForm{}.messages()
}

func (f EditTicketForm) Patch() models.TicketPatch {
	return models.TicketPatch{
		Title:       &f.Title,
		Description: &f.Description,
		Priority:    &f.Priority,
		Status:      &f.Status,
	}
}

type BrandingForm struct {
	Name           string `json:"name" validate:"min=2"`
	Description    string `json:"description" validate:"min=10"`
	WebsiteURL     string `json:"websiteUrl" validate:"omitempty,url"`
	LogoURL        string `json:"logoUrl" validate:"omitempty,url"`
	PrimaryColor   string `json:"primaryColor" validate:"hexrgb"`
	SecondaryColor string `json:"secondaryColor" validate:"hexrgb"`
	AccentColor    string `json:"accentColor" validate:"hexrgb"`
	CustomCSS      string `json:"customCss"`
}

// NewBrandingForm pre-fills the form from c, falling back to the default
// palette when no company is loaded.
func NewBrandingForm(c *models.Company) BrandingForm {
	f := BrandingForm{
		PrimaryColor:   "#0284c7",
		SecondaryColor: "#0d9488",
		AccentColor:    "#f97316",
	}
	if c == nil {
		return f
	}
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	f.Name = c.Name
	f.Description = c.Description
	f.WebsiteURL = deref(c.WebsiteURL)
	f.LogoURL = deref(c.LogoURL)
	f.PrimaryColor = c.Branding.PrimaryColor
	f.SecondaryColor = c.Branding.SecondaryColor
	f.AccentColor = c.Branding.AccentColor
	f.CustomCSS = deref(c.Branding.CustomCSS)
	return f
}

func (BrandingForm) messages() map[string]string {
	return map[string]string{
		"name.min":              "Company name must be at least 2 characters",
		"description.min":       "Description must be at least 10 characters",
		"websiteUrl.url":        "Please enter a valid URL",
		"logoUrl.url":           "Please enter a valid URL",
		"primaryColor.hexrgb":   "Please enter a valid hex color",
		"secondaryColor.hexrgb": "Please enter a valid hex color",
		"accentColor.hexrgb":    "Please enter a valid hex color",
	}
}

// CompanyPatch carries the profile half of the form. Empty URLs clear the
// stored value.
func (f BrandingForm) CompanyPatch() models.CompanyPatch {
	return models.CompanyPatch{
		Name:        &f.Name,
		Description: &f.Description,
		WebsiteURL:  &f.WebsiteURL,
		LogoURL:     &f.LogoURL,
	}
}

func (f BrandingForm) BrandingPatch() models.BrandingPatch {
	return models.BrandingPatch{
		PrimaryColor:   &f.PrimaryColor,
		SecondaryColor: &f.SecondaryColor,
		AccentColor:    &f.AccentColor,
		CustomCSS:      &f.CustomCSS,
	}
}
