package booking

import (
	"github.com/beautysalon/salon-api/internal/model"
)

const (
	silverThreshold = 10
	goldThreshold   = 50

	// One loyalty point per 10,000 of spend, credited on completion.
	loyaltyPriceUnit = 10000
)

// TierFor maps a customer's settled booking count (confirmed plus completed)
// to a membership tier.
func TierFor(settledBookings int) model.MembershipTier {
	switch {
	case settledBookings >= goldThreshold:
		return model.TierGold
	case settledBookings >= silverThreshold:
		return model.TierSilver
	default:
		return model.TierBronze
	}
}

func loyaltyPointsFor(totalPrice float64) int {
	if totalPrice <= 0 {
		return 0
	}
	return int(totalPrice / loyaltyPriceUnit)
}
