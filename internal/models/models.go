package models

// Role is the kind of account behind a session.
type Role string

const (
	RoleCompany Role = "company"
	RoleClient  Role = "client"
	RoleAgent   Role = "agent"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCompany, RoleClient, RoleAgent:
		return true
	}
	return false
}

// Session is the single authenticated identity held by the portal.
type Session struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Role      Role    `json:"role"`
	CompanyID *string `json:"companyId,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	SessionID string  `json:"sessionId"`
}

// Party is a person referenced from a ticket or feedback entry.
type Party struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

func StrPtr(s string) *string { return &s }
