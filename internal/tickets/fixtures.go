package tickets

import (
	"time"

	"clientportal/internal/models"
)

// Fixtures are the tickets present when the portal starts.
func Fixtures(now time.Time) []models.Ticket {
	return []models.Ticket{
		{
			ID:          "TCK-1001",
			Title:       "Cannot access dashboard features",
			Description: "I'm trying to access the analytics dashboard but getting an error message. Need urgent assistance as this is affecting our daily operations.",
			Status:      models.StatusOpen,
			Priority:    models.PriorityHigh,
			CreatedAt:   now,
			UpdatedAt:   now,
			Viewed:      false,
			Client: models.Party{
				ID:        "CLT-001",
				Name:      "John Smith",
				AvatarURL: models.StrPtr("https://randomuser.me/api/portraits/men/1.jpg"),
			},
		},
		{
			ID:          "TCK-1002",
			Title:       "Integration with API not working",
			Description: "The integration with our CRM system stopped working after the latest update. Need help resolving this issue.",
			Status:      models.StatusInProgress,
			Priority:    models.PriorityMedium,
			CreatedAt:   now.Add(-24 * time.Hour),
			UpdatedAt:   now,
			Viewed:      true,
			Client: models.Party{
				ID:        "CLT-002",
				Name:      "Sarah Johnson",
				AvatarURL: models.StrPtr("https://randomuser.me/api/portraits/women/2.jpg"),
			},
			AssignedTo: &models.Party{
				ID:        "AGT-001",
				Name:      "Michael Brown",
				AvatarURL: models.StrPtr("https://randomuser.me/api/portraits/men/10.jpg"),
			},
		},
	}
}
