package models

import "time"

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientPending  ClientStatus = "pending"
)

type Client struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       *string      `json:"phone,omitempty"`
	AvatarURL   *string      `json:"avatarUrl,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	Status      ClientStatus `json:"status"`
	OpenTickets int          `json:"openTickets"`
}

type Feedback struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"createdAt"`
	Client        Party     `json:"client"`
	CommentsCount int       `json:"commentsCount"`
	LikesCount    int       `json:"likesCount"`
	IsPublic      bool      `json:"isPublic"`
}
