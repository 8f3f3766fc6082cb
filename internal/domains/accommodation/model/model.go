package model

import (
	bookingModel "conference/internal/domains/booking/model"
	"time"
)

// Availability is the shared accommodation pool at one instant.
type Availability struct {
	Available int `json:"available"`
	Used      int `json:"used"`
	Total     int `json:"total"`
}

// Fits reports whether units more can be reserved.
func (a Availability) Fits(units int) bool {
	return units <= a.Available
}

// Calculate sums the units of confirmed bookings and of pending bookings whose hold is still
// running at now. Available is never negative and never exceeds total.
func Calculate(bookings []bookingModel.Booking, total int, now time.Time) Availability {
	used := 0

	for _, booking := range bookings {
		if booking.HoldsCapacity(now) {
			used += booking.Units()
		}
	}

	return Availability{
		Available: min(max(total-used, 0), max(total, 0)),
		Used:      used,
		Total:     total,
	}
}
