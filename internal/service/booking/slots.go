package booking

import (
	"fmt"
	"time"

	"github.com/beautysalon/salon-api/internal/model"
	apperr "github.com/beautysalon/salon-api/pkg/errors"
)

// Salon hours. Slots start every half hour from opening; the last slot
// begins half an hour before closing.
const (
	openingTime = "09:00"
	closingTime = "20:00"
	slotMinutes = 30
)

func minutesOf(clock string) (int, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, apperr.NewValidation(fmt.Sprintf("invalid time of day: %s", clock))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func clockOf(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func addMinutes(clock string, minutes int) (string, error) {
	start, err := minutesOf(clock)
	if err != nil {
		return "", err
	}
	return clockOf(start + minutes), nil
}

// availableSlots returns the slot start times not covered by any booked
// interval. A slot is taken when its start falls inside a booked [start, end)
// range; a booking ending exactly at a slot's start leaves it free.
func availableSlots(booked []model.TimeRange) []string {
	open, _ := minutesOf(openingTime)
	closed, _ := minutesOf(closingTime)

	slots := []string{}
	for m := open; m < closed; m += slotMinutes {
		slot := clockOf(m)
		taken := false
		for _, interval := range booked {
			if interval.Start <= slot && slot < interval.End {
				taken = true
				break
			}
		}
		if !taken {
			slots = append(slots, slot)
		}
	}
	return slots
}
