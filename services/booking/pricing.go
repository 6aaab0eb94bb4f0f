package booking

import "regal/models"

// PricingTiers is the static tier catalog. Estimates are display-only; the
// server never validates a headcount against them.
var PricingTiers = []models.PricingTier{
	{ID: "small", Label: "10-25 guests", PricePerPerson: 45, MinGuests: 10, MaxGuests: 25},
	{ID: "medium", Label: "26-50 guests", PricePerPerson: 40, MinGuests: 26, MaxGuests: 50},
	{ID: "large", Label: "51-100 guests", PricePerPerson: 35, MinGuests: 51, MaxGuests: 100},
	{ID: "xlarge", Label: "100+ guests", PricePerPerson: 30, MinGuests: 100, MaxGuests: 250},
}

// TierByID looks up a pricing tier.
func TierByID(id string) (models.PricingTier, bool) {
	for _, t := range PricingTiers {
		if t.ID == id {
			return t, true
		}
	}
	return models.PricingTier{}, false
}

// EstimateRange computes the displayed estimate range for a tier.
func EstimateRange(tierID string) (*models.PriceEstimate, bool) {
	tier, ok := TierByID(tierID)
	if !ok {
		return nil, false
	}
	return &models.PriceEstimate{
		TierID:         tier.ID,
		PricePerPerson: tier.PricePerPerson,
		MinTotal:       tier.MinGuests * tier.PricePerPerson,
		MaxTotal:       tier.MaxGuests * tier.PricePerPerson,
	}, true
}
