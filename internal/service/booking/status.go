package booking

import (
	"github.com/beautysalon/salon-api/internal/model"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

// statusTransitions is the booking state machine. Statuses with no entry are
// terminal. no_show is reachable only from confirmed and, like every status
// outside the update request whitelist, cannot be set through the API.
var statusTransitions = map[model.BookingStatus][]model.BookingStatus{
	model.BookingStatusPending: {
		model.BookingStatusConfirmed,
		model.BookingStatusCancelled,
	},
	model.BookingStatusConfirmed: {
		model.BookingStatusCompleted,
		model.BookingStatusCancelled,
		model.BookingStatusNoShow,
	},
}

// CanTransition reports whether the state machine allows moving from one
// status to another.
func CanTransition(from, to model.BookingStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to model.BookingStatus) error {
	if !CanTransition(from, to) {
		return apperr.NewInvalidTransition(string(from), string(to))
	}
	return nil
}
