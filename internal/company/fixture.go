package company

import (
	"context"
	"time"

	"clientportal/internal/clock"
	"clientportal/internal/models"
)

// FixtureFetch returns the demo company regardless of who is asking.
func FixtureFetch(clk clock.Clock) FetchFunc {
	return func(_ context.Context, _ models.Session) (models.Company, error) {
		expires := clk.Now().Add(30 * 24 * time.Hour)
		logo := "https://via.placeholder.com/150x50?text=ACME"
		return models.Company{
			ID:          "1",
			Name:        "Acme Corporation",
			Description: "Leading provider of innovative solutions",
			WebsiteURL:  models.StrPtr("https://acme.example.com"),
			LogoURL:     models.StrPtr(logo),
			Branding: models.Branding{
				PrimaryColor:   "#0284c7",
				SecondaryColor: "#0d9488",
				AccentColor:    "#f97316",
				LogoURL:        models.StrPtr(logo),
			},
			Subscription: models.Subscription{
				Plan:      models.PlanStandard,
				Status:    models.SubscriptionActive,
				ExpiresAt: &expires,
			},
		}, nil
	}
}
