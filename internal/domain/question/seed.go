package question

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Seed loads the starter catalog. It is idempotent: a non-empty catalog is
// left untouched.
func Seed(ctx context.Context, store Store) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	sample := []Question{
		{
			Text:        "How many minutes do you typically spend commuting each weekday?",
			Explanation: "We ask this to help urban planners and mobility startups understand travel patterns and reduce congestion. Your answer guides public transport schedules and micro-mobility placement.",
			Metadata:    &Meta{Tags: []string{"mobility", "lifestyle"}, Category: "daily"},
		},
		{
			Text:        "Which grocery item have you noticed has increased most in price recently?",
			Explanation: "Knowing price sensitivity by category helps retailers plan discounts and helps regulators monitor inflation. We never share personal data — only aggregated insights.",
			Metadata:    &Meta{Tags: []string{"retail", "inflation"}, Category: "economy"},
		},
		{
			Text:        "How reliable is your mobile network during peak evening hours?",
			Explanation: "This informs telecom providers about coverage gaps and capacity issues, so they can improve service in high-demand neighborhoods.",
			Metadata:    &Meta{Tags: []string{"telecom"}, Category: "utilities"},
		},
		{
			Text:        "Do you prefer mobile money or cash for small purchases under 5,000?",
			Explanation: "Fintech teams use this to improve checkout experiences and expand acceptance for small merchants. Your feedback shapes real-world payment experiences.",
			Metadata:    &Meta{Tags: []string{"fintech"}, Category: "payments"},
		},
		{
			Text:        "How many hours of uninterrupted electricity did you have yesterday?",
			Explanation: "Energy planners and backup power providers use this to plan capacity and support reliability improvements in your area.",
			Metadata:    &Meta{Tags: []string{"energy"}, Category: "utilities"},
		},
	}

	for i := range sample {
		q := sample[i]
		q.ID = uuid.New()
		q.Status = StatusActive
		q.CreatedAt = now
		if err := store.Insert(ctx, &q); err != nil {
			return err
		}
	}

	log.Info().Int("count", len(sample)).Msg("question catalog seeded")
	return nil
}
