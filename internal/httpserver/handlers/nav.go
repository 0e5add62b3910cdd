package handlers

import "clientportal/internal/models"

type navLink struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// navigation lists the header links shown for role. Links only shape the
// page; the routes themselves check nothing beyond the session.
func navigation(role models.Role, loggedIn bool) []navLink {
	if !loggedIn {
		return []navLink{{"Log in", "/login"}, {"Sign up", "/signup"}}
	}
	links := []navLink{{"Dashboard", "/dashboard"}}
	switch role {
	case models.RoleCompany:
		links = append(links,
			navLink{"Clients", "/clients"},
			navLink{"Tickets", "/tickets"},
			navLink{"Feedback", "/feedback"},
			navLink{"Branding", "/branding"},
		)
	case models.RoleClient:
		links = append(links,
			navLink{"Support", "/tickets"},
			navLink{"Feedback", "/feedback"},
		)
	}
	return links
}
