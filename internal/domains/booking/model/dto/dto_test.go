package dto_test

import (
	"conference/internal/domains/booking/model"
	"conference/internal/domains/booking/model/dto"
	"conference/shared/constant"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStats_FromCounts(t *testing.T) {
	stats := dto.Stats{TotalBookings: 99}
	stats.FromCounts([]model.StatusCount{
		{Status: model.StatusConfirmed, TicketType: model.TierSingle, Total: 2},
		{Status: model.StatusConfirmed, TicketType: model.TierTriple, Total: 1},
		{Status: model.StatusPending, TicketType: model.TierDouble, Total: 4},
		{Status: model.StatusCancelled, TicketType: model.TierTriple, Total: 3},
	})

	assert.Equal(t, dto.Stats{
		TotalBookings:           10,
		ConfirmedBookings:       3,
		PendingBookings:         4,
		CancelledBookings:       3,
		TotalAccommodationsUsed: 5,
	}, stats)
}

func TestTierOptions(t *testing.T) {
	assert.Equal(t, []dto.TierOption{
		{Name: "Single", Units: 1, AdditionalPersons: 0},
		{Name: "Double", Units: 2, AdditionalPersons: 1},
		{Name: "Triple", Units: 3, AdditionalPersons: 2},
	}, dto.TierOptions())
}

func TestRegisterRequest_ToModel(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	req := dto.RegisterRequest{
		Name:       "  Nimal Perera ",
		Email:      " nimal@example.com",
		Phone:      "0771234567",
		BaslID:     "BASL-001 ",
		NIC:        "901234567V",
		TicketType: " Triple",
		AdditionalPersons: []dto.PersonRequest{
			{Name: "Kamala Silva", BaslID: "BASL-002", NIC: "927654321V", Phone: "0777654321"},
			{Name: " Sunil Fernando", BaslID: "BASL-003", NIC: "881112223V", Phone: "0711112223"},
		},
	}
	req.Normalize()

	assert.Equal(t, []string{"BASL-001", "BASL-002", "BASL-003"}, req.BaslIDs())
	assert.Equal(t, []string{"901234567V", "927654321V", "881112223V"}, req.NICs())

	reservation := req.ToModel(now, 5*time.Minute)

	assert.Equal(t, "Nimal Perera", reservation.Lawyer.Name)
	assert.Equal(t, reservation.Lawyer.ID, reservation.Booking.LawyerID)
	assert.Equal(t, model.TierTriple, reservation.Booking.TicketType)
	assert.Equal(t, model.StatusPending, reservation.Booking.Status)
	assert.Equal(t, now.Add(5*time.Minute), reservation.Booking.ExpiresAt)
	assert.Equal(t, constant.ContextGuest, reservation.Booking.CreatedBy)

	assert.Len(t, reservation.Guests, 2)

	for i, guest := range reservation.Guests {
		assert.Equal(t, reservation.Booking.ID, guest.BookingID)
		assert.Equal(t, i+1, guest.Position)
	}

	assert.Equal(t, "Sunil Fernando", reservation.Guests[1].Name)
}

func TestPersonRequest_Complete(t *testing.T) {
	assert.True(t, dto.PersonRequest{Name: "A", BaslID: "B", NIC: "C", Phone: "D"}.Complete())
	assert.False(t, dto.PersonRequest{Name: "A", BaslID: "B", NIC: "C"}.Complete())
}

func TestStatusResponse_FromModel(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	booking := model.Booking{Status: model.StatusPending, ExpiresAt: now.Add(90*time.Second + 500*time.Millisecond)}

	var res dto.StatusResponse
	res.FromModel(booking, now)

	assert.Equal(t, dto.StatusResponse{Status: "pending", TimeRemaining: 90, Expired: false}, res)

	res.FromModel(booking, now.Add(2*time.Minute))
	assert.Equal(t, dto.StatusResponse{Status: "pending", TimeRemaining: 0, Expired: true}, res)
}

func TestUpdateBookingRequest_Empty(t *testing.T) {
	req := dto.UpdateBookingRequest{Status: "  "}
	req.Normalize()
	assert.True(t, req.Empty())

	persons := []dto.PersonRequest{}
	req.AdditionalPersons = &persons
	assert.False(t, req.Empty())
}

func TestRegisterRequest_FromForm(t *testing.T) {
	form := url.Values{
		"name":               {"Nimal Perera"},
		"email":              {"nimal@example.com"},
		"phone":              {"0771234567"},
		"basl_id":            {"BASL-001"},
		"nic":                {"901234567V"},
		"ticket_type":        {"Double"},
		"additional_name_1":  {" Kamala Silva "},
		"additional_basl_1":  {"BASL-002"},
		"additional_nic_1":   {"927654321V"},
		"additional_phone_1": {"0777654321"},
		"additional_name_2":  {"ignored for doubles"},
	}

	var req dto.RegisterRequest
	req.FromForm(form)

	assert.Equal(t, "Double", req.TicketType)
	assert.Equal(t, []dto.PersonRequest{
		{Name: "Kamala Silva", BaslID: "BASL-002", NIC: "927654321V", Phone: "0777654321"},
	}, req.AdditionalPersons)
}

func TestUpdateBookingRequest_FromForm(t *testing.T) {
	var keep dto.UpdateBookingRequest
	keep.FromForm(url.Values{"status": {"confirmed"}, "ticket_type": {"Triple"}})

	assert.Equal(t, "confirmed", keep.Status)
	assert.Nil(t, keep.AdditionalPersons)

	var replace dto.UpdateBookingRequest
	replace.FromForm(url.Values{"ticket_type": {"Triple"}, "additional_name_1": {"Kamala Silva"}})

	assert.NotNil(t, replace.AdditionalPersons)
	assert.Len(t, *replace.AdditionalPersons, 2)
	assert.False(t, (*replace.AdditionalPersons)[1].Complete())
}
