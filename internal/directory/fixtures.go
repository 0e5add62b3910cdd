package directory

import (
	"time"

	"clientportal/internal/models"
)

func fixtureClients() []models.Client {
	return []models.Client{
		{
			ID:          "CLT-001",
			Name:        "John Smith",
			Email:       "john.smith@example.com",
			Phone:       models.StrPtr("+1 (555) 123-4567"),
			AvatarURL:   models.StrPtr("https://randomuser.me/api/portraits/men/1.jpg"),
			CreatedAt:   time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
			Status:      models.ClientActive,
			OpenTickets: 2,
		},
		{
			ID:          "CLT-002",
			Name:        "Sarah Johnson",
			Email:       "sarah.j@example.com",
			Phone:       models.StrPtr("+1 (555) 987-6543"),
			AvatarURL:   models.StrPtr("https://randomuser.me/api/portraits/women/2.jpg"),
			CreatedAt:   time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC),
			Status:      models.ClientActive,
			OpenTickets: 1,
		},
		{
			ID:          "CLT-003",
			Name:        "Michael Brown",
			Email:       "michael.b@example.com",
			AvatarURL:   models.StrPtr("https://randomuser.me/api/portraits/men/3.jpg"),
			CreatedAt:   time.Date(2024, 2, 10, 14, 15, 0, 0, time.UTC),
			Status:      models.ClientPending,
			OpenTickets: 0,
		},
	}
}

func fixtureFeedback(now time.Time) []models.Feedback {
	return []models.Feedback{
		{
			ID:            "FDB-001",
			Content:       "The customer support team has been exceptional in helping us resolve our technical issues. Their quick response time and thorough explanations have made a significant difference in our operations.",
			Rating:        5,
			CreatedAt:     now,
			Client:        models.Party{ID: "CLT-001", Name: "John Smith", AvatarURL: models.StrPtr("https://randomuser.me/api/portraits/men/1.jpg")},
			CommentsCount: 3,
			LikesCount:    8,
			IsPublic:      true,
		},
		{
			ID:            "FDB-002",
			Content:       "Great platform overall, but there's room for improvement in the reporting features. Would love to see more customization options.",
			Rating:        4,
			CreatedAt:     now.Add(-24 * time.Hour),
			Client:        models.Party{ID: "CLT-002", Name: "Sarah Johnson", AvatarURL: models.StrPtr("https://randomuser.me/api/portraits/women/2.jpg")},
			CommentsCount: 1,
			LikesCount:    4,
			IsPublic:      true,
		},
		{
			ID:            "FDB-003",
			Content:       "The new features added in the latest update have significantly improved our workflow. Especially love the automated notifications.",
			Rating:        5,
			CreatedAt:     now.Add(-48 * time.Hour),
			Client:        models.Party{ID: "CLT-003", Name: "Michael Brown", AvatarURL: models.StrPtr("https://randomuser.me/api/portraits/men/3.jpg")},
			CommentsCount: 2,
			LikesCount:    6,
			IsPublic:      true,
		},
	}
}
