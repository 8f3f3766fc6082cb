package model_test

import (
	"conference/internal/domains/accommodation/model"
	bookingModel "conference/internal/domains/booking/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func booking(tier bookingModel.Tier, status bookingModel.Status, expiresAt time.Time) bookingModel.Booking {
	return bookingModel.Booking{TicketType: tier, Status: status, ExpiresAt: expiresAt}
}

func TestCalculate(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	future := now.Add(2 * time.Minute)
	past := now.Add(-time.Second)

	tests := []struct {
		name     string
		bookings []bookingModel.Booking
		total    int
		expected model.Availability
	}{
		{
			name:     "empty pool",
			total:    100,
			expected: model.Availability{Available: 100, Used: 0, Total: 100},
		},
		{
			name: "confirmed and running holds count",
			bookings: []bookingModel.Booking{
				booking(bookingModel.TierSingle, bookingModel.StatusConfirmed, past),
				booking(bookingModel.TierDouble, bookingModel.StatusPending, future),
				booking(bookingModel.TierTriple, bookingModel.StatusConfirmed, future),
			},
			total:    100,
			expected: model.Availability{Available: 94, Used: 6, Total: 100},
		},
		{
			name: "lapsed holds and cancellations are free",
			bookings: []bookingModel.Booking{
				booking(bookingModel.TierTriple, bookingModel.StatusPending, past),
				booking(bookingModel.TierTriple, bookingModel.StatusPending, now),
				booking(bookingModel.TierTriple, bookingModel.StatusCancelled, future),
			},
			total:    100,
			expected: model.Availability{Available: 100, Used: 0, Total: 100},
		},
		{
			name: "over booked pool clamps to zero",
			bookings: []bookingModel.Booking{
				booking(bookingModel.TierTriple, bookingModel.StatusConfirmed, past),
				booking(bookingModel.TierTriple, bookingModel.StatusConfirmed, past),
			},
			total:    5,
			expected: model.Availability{Available: 0, Used: 6, Total: 5},
		},
		{
			name: "unknown tier consumes nothing",
			bookings: []bookingModel.Booking{
				booking("Suite", bookingModel.StatusConfirmed, past),
			},
			total:    10,
			expected: model.Availability{Available: 10, Used: 0, Total: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.Calculate(tt.bookings, tt.total, now)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got.Available, 0)
			assert.LessOrEqual(t, got.Available, tt.total)
		})
	}
}

func TestAvailability_Fits(t *testing.T) {
	availability := model.Availability{Available: 2, Total: 100}

	assert.True(t, availability.Fits(bookingModel.TierSingle.Units()))
	assert.True(t, availability.Fits(bookingModel.TierDouble.Units()))
	assert.False(t, availability.Fits(bookingModel.TierTriple.Units()))
}
