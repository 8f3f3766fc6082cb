package model_test

import (
	bookingModel "conference/internal/domains/booking/model"
	"conference/internal/domains/notification/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	booking := bookingModel.Booking{ID: "b1", LawyerID: "l1", TicketType: bookingModel.TierTriple, Status: bookingModel.StatusCancelled}

	event := model.NewEvent(model.EventBookingCancelled, booking, at)

	assert.Equal(t, model.Event{
		Type:       "booking.cancelled",
		BookingID:  "b1",
		LawyerID:   "l1",
		TicketType: "Triple",
		Status:     "cancelled",
		Units:      3,
		OccurredAt: at,
	}, event)
}

func TestConfirmation_Render(t *testing.T) {
	data := model.Confirmation{
		Conference: "Junior National Law Conference",
		Booking: bookingModel.Booking{
			ID:           "b1",
			TicketType:   bookingModel.TierDouble,
			LawyerName:   "Nimal <Perera>",
			LawyerBaslID: "BASL-1",
		},
		Guests: []bookingModel.Guest{{Name: "Kamal", BaslID: "BASL-2", NIC: "200012345678", Phone: "0771234567"}},
	}

	body, err := data.Render()
	assert.NoError(t, err)
	assert.Contains(t, body, "Dear Nimal &lt;Perera&gt;,")
	assert.Contains(t, body, "<td>Double</td>")
	assert.Contains(t, body, "<li>Kamal (BASL ID BASL-2, NIC 200012345678, 0771234567)</li>")
	assert.Equal(t, "Booking Confirmed - Junior National Law Conference", data.Subject())

	data.Guests = nil
	body, err = data.Render()
	assert.NoError(t, err)
	assert.NotContains(t, body, "Additional persons")
}
