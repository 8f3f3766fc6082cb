package model

import (
	lawyerModel "conference/internal/domains/lawyer/model"
	"conference/shared/model"
	"slices"
	"time"
)

const (
	TableName       = "bookings"
	EntityName      = "booking"
	GuestTableName  = "booking_guests"
	GuestEntityName = "booking guest"

	FieldID          = "id"
	FieldLawyerID    = "lawyer_id"
	FieldTicketType  = "ticket_type"
	FieldStatus      = "status"
	FieldExpiresAt   = "expires_at"
	FieldReceiptPath = "receipt_path"
	FieldCreatedAt   = "created_at"

	GuestFieldID        = "id"
	GuestFieldBookingID = "booking_id"
	GuestFieldPosition  = "position"
)

// Tier is the ticket category. Each tier consumes a fixed number of accommodation units and
// brings one fewer additional person than it has units.
type Tier string

const (
	TierSingle Tier = "Single"
	TierDouble Tier = "Double"
	TierTriple Tier = "Triple"
)

var Tiers = []Tier{TierSingle, TierDouble, TierTriple}

func (t Tier) Valid() bool {
	return slices.Contains(Tiers, t)
}

// Units returns the accommodation units the tier consumes, 0 for unknown tiers.
func (t Tier) Units() int {
	switch t {
	case TierSingle:
		return 1
	case TierDouble:
		return 2 //nolint:mnd
	case TierTriple:
		return 3 //nolint:mnd
	default:
		return 0
	}
}

// RequiredGuests is the exact number of additional persons the tier needs.
func (t Tier) RequiredGuests() int {
	return max(t.Units()-1, 0)
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusConfirmed, StatusCancelled}

func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// CanTransitionTo allows staying put or leaving pending. Confirmed and cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.Valid() {
		return false
	}

	return s == next || s == StatusPending
}

type Booking struct {
	ID          string    `db:"id"`
	LawyerID    string    `db:"lawyer_id"`
	TicketType  Tier      `db:"ticket_type"`
	Status      Status    `db:"status"`
	ExpiresAt   time.Time `db:"expires_at"`
	ReceiptPath *string   `db:"receipt_path"`

	LawyerName   string `column:"name"    db:"lawyer_name"    table:"lawyers"`
	LawyerEmail  string `column:"email"   db:"lawyer_email"   table:"lawyers"`
	LawyerPhone  string `column:"phone"   db:"lawyer_phone"   table:"lawyers"`
	LawyerBaslID string `column:"basl_id" db:"lawyer_basl_id" table:"lawyers"`
	LawyerNIC    string `column:"nic"     db:"lawyer_nic"     table:"lawyers"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN lawyers ON lawyers.id = bookings.lawyer_id"
}

func (b Booking) Units() int {
	return b.TicketType.Units()
}

// IsExpired reports whether the hold has lapsed: expires_at <= now.
func (b Booking) IsExpired(now time.Time) bool {
	return !now.Before(b.ExpiresAt)
}

// TimeRemaining returns whole seconds left on the hold, never negative.
func (b Booking) TimeRemaining(now time.Time) int {
	return max(int(b.ExpiresAt.Sub(now).Seconds()), 0)
}

// HoldsCapacity reports whether the booking counts against accommodation capacity at now.
func (b Booking) HoldsCapacity(now time.Time) bool {
	switch b.Status {
	case StatusConfirmed:
		return true
	case StatusPending:
		return !b.IsExpired(now)
	default:
		return false
	}
}

func (b Booking) Receipt() string {
	if b.ReceiptPath == nil {
		return ""
	}

	return *b.ReceiptPath
}

// Guest is an additional person travelling on a Double or Triple booking.
type Guest struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	Position  int       `db:"position"`
	Name      string    `db:"name"`
	BaslID    string    `db:"basl_id"`
	NIC       string    `db:"nic"`
	Phone     string    `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
}

// Reservation is everything written when a hold is accepted.
type Reservation struct {
	Lawyer  lawyerModel.Lawyer
	Booking Booking
	Guests  []Guest
}

// StatusCount is one row of the per status and tier breakdown.
type StatusCount struct {
	Status     Status `db:"status"`
	TicketType Tier   `db:"ticket_type"`
	Total      int    `db:"total"`
}
