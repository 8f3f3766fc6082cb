package model

import (
	bookingModel "conference/internal/domains/booking/model"
	"time"
)

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// Event is published to the booking topic keyed by booking ID.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	LawyerID   string    `json:"lawyer_id"`
	TicketType string    `json:"ticket_type"`
	Status     string    `json:"status"`
	Units      int       `json:"units"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(eventType string, booking bookingModel.Booking, at time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  booking.ID,
		LawyerID:   booking.LawyerID,
		TicketType: string(booking.TicketType),
		Status:     string(booking.Status),
		Units:      booking.Units(),
		OccurredAt: at,
	}
}

// Confirmation feeds the confirmation email template.
type Confirmation struct {
	Conference string
	Booking    bookingModel.Booking
	Guests     []bookingModel.Guest
}
