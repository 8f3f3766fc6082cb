package dto

import (
	accModel "conference/internal/domains/accommodation/model"
	"conference/internal/domains/booking/model"
	lawyerModel "conference/internal/domains/lawyer/model"
	"conference/shared"
	"conference/shared/constant"
	gDto "conference/shared/dto"
	gModel "conference/shared/model"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PersonRequest struct {
	Name   string `json:"name"    validate:"omitempty,max=100"`
	BaslID string `json:"basl_id" validate:"omitempty,max=50"`
	NIC    string `json:"nic"     validate:"omitempty,max=20"`
	Phone  string `json:"phone"   validate:"omitempty,max=20"`
}

func (p *PersonRequest) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.BaslID = strings.TrimSpace(p.BaslID)
	p.NIC = strings.TrimSpace(p.NIC)
	p.Phone = strings.TrimSpace(p.Phone)
}

// Complete reports whether every field is filled in.
func (p PersonRequest) Complete() bool {
	return p.Name != constant.Empty && p.BaslID != constant.Empty && p.NIC != constant.Empty && p.Phone != constant.Empty
}

func (p PersonRequest) ToModel(bookingID string, position int, at time.Time) model.Guest {
	return model.Guest{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		Position:  position,
		Name:      p.Name,
		BaslID:    p.BaslID,
		NIC:       p.NIC,
		Phone:     p.Phone,
		CreatedAt: at,
	}
}

type RegisterRequest struct {
	Name              string          `json:"name"               validate:"required,max=100"`
	Email             string          `json:"email"              validate:"required,email,max=100"`
	Phone             string          `json:"phone"              validate:"required,max=20"`
	BaslID            string          `json:"basl_id"            validate:"required,max=50"`
	NIC               string          `json:"nic"                validate:"required,max=20"`
	TicketType        string          `json:"ticket_type"        validate:"required"`
	AdditionalPersons []PersonRequest `json:"additional_persons" validate:"omitempty,max=2,dive"`
}

// Normalize trims surrounding whitespace from every field.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.BaslID = strings.TrimSpace(r.BaslID)
	r.NIC = strings.TrimSpace(r.NIC)
	r.TicketType = strings.TrimSpace(r.TicketType)

	for i := range r.AdditionalPersons {
		r.AdditionalPersons[i].normalize()
	}
}

// BaslIDs lists the primary BASL ID first, then the additional persons' in order.
func (r *RegisterRequest) BaslIDs() []string {
	ids := []string{r.BaslID}
	for _, person := range r.AdditionalPersons {
		ids = append(ids, person.BaslID)
	}

	return ids
}

// NICs lists the primary NIC first, then the additional persons' in order.
func (r *RegisterRequest) NICs() []string {
	nics := []string{r.NIC}
	for _, person := range r.AdditionalPersons {
		nics = append(nics, person.NIC)
	}

	return nics
}

func (r *RegisterRequest) ToModel(now time.Time, hold time.Duration) model.Reservation {
	metadata := gModel.NewMetadata(constant.ContextGuest, now)

	lawyer := lawyerModel.Lawyer{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		BaslID:   r.BaslID,
		NIC:      r.NIC,
		Metadata: metadata,
	}

	booking := model.Booking{
		ID:           uuid.NewString(),
		LawyerID:     lawyer.ID,
		TicketType:   model.Tier(r.TicketType),
		Status:       model.StatusPending,
		ExpiresAt:    now.Add(hold),
		LawyerName:   lawyer.Name,
		LawyerEmail:  lawyer.Email,
		LawyerPhone:  lawyer.Phone,
		LawyerBaslID: lawyer.BaslID,
		LawyerNIC:    lawyer.NIC,
		Metadata:     metadata,
	}

	guests := make([]model.Guest, 0, len(r.AdditionalPersons))
	for i, person := range r.AdditionalPersons {
		guests = append(guests, person.ToModel(booking.ID, i+1, now))
	}

	return model.Reservation{
		Lawyer:  lawyer,
		Booking: booking,
		Guests:  guests,
	}
}

type ReservationResponse struct {
	ID            string `json:"id"`
	TicketType    string `json:"ticket_type"`
	Status        string `json:"status"`
	ExpiresAt     string `json:"expires_at"`
	TimeRemaining int    `json:"time_remaining"`
	UploadURL     string `json:"upload_url"`
}

func (r *ReservationResponse) FromModel(booking model.Booking, now time.Time) {
	r.ID = booking.ID
	r.TicketType = string(booking.TicketType)
	r.Status = string(booking.Status)
	r.ExpiresAt = booking.ExpiresAt.Format(constant.DateFormat)
	r.TimeRemaining = booking.TimeRemaining(now)
	r.UploadURL = UploadPath(booking.ID)
}

func UploadPath(id string) string {
	return "/upload_receipt/" + id
}

func ConfirmedPath(id string) string {
	return "/booking_confirmed/" + id
}

type TierOption struct {
	Name              string `json:"name"`
	Units             int    `json:"units"`
	AdditionalPersons int    `json:"additional_persons"`
}

func TierOptions() []TierOption {
	options := make([]TierOption, 0, len(model.Tiers))
	for _, tier := range model.Tiers {
		options = append(options, TierOption{Name: string(tier), Units: tier.Units(), AdditionalPersons: tier.RequiredGuests()})
	}

	return options
}

type RegisterFormResponse struct {
	Availability accModel.Availability `json:"availability"`
	Tiers        []TierOption          `json:"tiers"`
}

type LawyerResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	BaslID string `json:"basl_id"`
	NIC    string `json:"nic"`
}

type PersonResponse struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	BaslID   string `json:"basl_id"`
	NIC      string `json:"nic"`
	Phone    string `json:"phone"`
}

type BookingResponse struct {
	ID                string           `json:"id"`
	TicketType        string           `json:"ticket_type"`
	Status            string           `json:"status"`
	Units             int              `json:"units"`
	ExpiresAt         string           `json:"expires_at"`
	ReceiptPath       string           `json:"receipt_path,omitempty"`
	Lawyer            LawyerResponse   `json:"lawyer"`
	AdditionalPersons []PersonResponse `json:"additional_persons"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking, guests []model.Guest) {
	r.ID = booking.ID
	r.TicketType = string(booking.TicketType)
	r.Status = string(booking.Status)
	r.Units = booking.Units()
	r.ExpiresAt = booking.ExpiresAt.Format(constant.DateFormat)
	r.ReceiptPath = booking.Receipt()
	r.Lawyer = LawyerResponse{
		ID:     booking.LawyerID,
		Name:   booking.LawyerName,
		Email:  booking.LawyerEmail,
		Phone:  booking.LawyerPhone,
		BaslID: booking.LawyerBaslID,
		NIC:    booking.LawyerNIC,
	}

	r.AdditionalPersons = make([]PersonResponse, len(guests))
	for i, guest := range guests {
		r.AdditionalPersons[i] = PersonResponse{
			Position: guest.Position,
			Name:     guest.Name,
			BaslID:   guest.BaslID,
			NIC:      guest.NIC,
			Phone:    guest.Phone,
		}
	}

	r.Metadata.FromModel(booking.Metadata)
}

type UploadFormResponse struct {
	Booking       BookingResponse `json:"booking"`
	TimeRemaining int             `json:"time_remaining"`
	Extensions    []string        `json:"allowed_extensions"`
	MaxBytes      int64           `json:"max_bytes"`
}

// UploadReceiptRequest carries a receipt already read from the multipart body.
type UploadReceiptRequest struct {
	BookingID string
	Filename  string
	Data      []byte
}

const (
	MessageConfirmed          = "Receipt uploaded successfully! Your booking is confirmed. A confirmation email has been sent."
	MessageConfirmedNoEmail   = "Receipt uploaded successfully! Your booking is confirmed. (Note: Email notification could not be sent)"
	MessageBookingUpdated     = "Booking updated successfully!"
	MessageBookingDeleted     = "Booking deleted successfully!"
	MessageReservationCreated = "Booking created. Please upload your payment receipt before the hold expires."
)

type ConfirmResponse struct {
	Booking     BookingResponse `json:"booking"`
	Message     string          `json:"message"`
	EmailSent   bool            `json:"email_sent"`
	RedirectURL string          `json:"redirect_url"`
}

type StatusResponse struct {
	Status        string `json:"status"`
	TimeRemaining int    `json:"time_remaining"`
	Expired       bool   `json:"expired"`
}

func (r *StatusResponse) FromModel(booking model.Booking, now time.Time) {
	r.Status = string(booking.Status)
	r.TimeRemaining = booking.TimeRemaining(now)
	r.Expired = booking.IsExpired(now)
}

type Stats struct {
	TotalBookings           int `json:"total_bookings"`
	ConfirmedBookings       int `json:"confirmed_bookings"`
	PendingBookings         int `json:"pending_bookings"`
	CancelledBookings       int `json:"cancelled_bookings"`
	TotalAccommodationsUsed int `json:"total_accommodations_used"`
}

// FromCounts folds per status and tier rows; accommodations used counts confirmed bookings only.
func (s *Stats) FromCounts(counts []model.StatusCount) {
	*s = Stats{}

	for _, row := range counts {
		s.TotalBookings += row.Total

		switch row.Status {
		case model.StatusConfirmed:
			s.ConfirmedBookings += row.Total
			s.TotalAccommodationsUsed += row.Total * row.TicketType.Units()
		case model.StatusPending:
			s.PendingBookings += row.Total
		case model.StatusCancelled:
			s.CancelledBookings += row.Total
		}
	}
}

type AdminBookingsResponse struct {
	Bookings     []BookingResponse     `json:"bookings"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
	Stats        Stats                 `json:"stats"`
	Availability accModel.Availability `json:"availability"`
}

func (r *AdminBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, nil)
	}
}

type EditFormResponse struct {
	Booking  BookingResponse `json:"booking"`
	Statuses []string        `json:"statuses"`
	Tiers    []TierOption    `json:"tiers"`
}

// UpdateBookingRequest edits a booking. Omitted fields are left unchanged; additional persons are
// replaced as a whole when given or when the tier changes.
type UpdateBookingRequest struct {
	Status            string           `json:"status"             validate:"omitempty,oneof=pending confirmed cancelled"`
	TicketType        string           `json:"ticket_type"        validate:"omitempty,oneof=Single Double Triple"`
	AdditionalPersons *[]PersonRequest `json:"additional_persons" validate:"omitempty,max=2,dive"`
}

func (r *UpdateBookingRequest) Normalize() {
	r.Status = strings.TrimSpace(r.Status)
	r.TicketType = strings.TrimSpace(r.TicketType)

	if r.AdditionalPersons == nil {
		return
	}

	for i := range *r.AdditionalPersons {
		(*r.AdditionalPersons)[i].normalize()
	}
}

func (r *UpdateBookingRequest) Empty() bool {
	return r.Status == constant.Empty && r.TicketType == constant.Empty && r.AdditionalPersons == nil
}

// SortColumns whitelists admin list sort keys.
var SortColumns = map[string]string{
	model.FieldCreatedAt:  model.TableName + "." + model.FieldCreatedAt,
	model.FieldExpiresAt:  model.TableName + "." + model.FieldExpiresAt,
	model.FieldStatus:     model.TableName + "." + model.FieldStatus,
	model.FieldTicketType: model.TableName + "." + model.FieldTicketType,
	"name":                lawyerModel.TableName + "." + lawyerModel.FieldName,
}

const DefaultSortColumn = model.TableName + "." + model.FieldCreatedAt

// Form field names used by the HTML registration and edit forms.
const (
	FormName       = "name"
	FormEmail      = "email"
	FormPhone      = "phone"
	FormBaslID     = "basl_id"
	FormNIC        = "nic"
	FormTicketType = "ticket_type"
	FormStatus     = "status"

	formPersonName   = "additional_name_%d"
	formPersonBaslID = "additional_basl_%d"
	formPersonNIC    = "additional_nic_%d"
	formPersonPhone  = "additional_phone_%d"
)

func personFromForm(form url.Values, position int) (PersonRequest, bool) {
	person := PersonRequest{
		Name:   form.Get(fmt.Sprintf(formPersonName, position)),
		BaslID: form.Get(fmt.Sprintf(formPersonBaslID, position)),
		NIC:    form.Get(fmt.Sprintf(formPersonNIC, position)),
		Phone:  form.Get(fmt.Sprintf(formPersonPhone, position)),
	}
	person.normalize()

	return person, person != PersonRequest{}
}

// personsFromForm reads the additional persons the tier asks for.
func personsFromForm(form url.Values, tier model.Tier) ([]PersonRequest, bool) {
	var (
		persons []PersonRequest
		given   bool
	)

	for position := 1; position <= tier.RequiredGuests(); position++ {
		person, ok := personFromForm(form, position)
		persons = append(persons, person)
		given = given || ok
	}

	return persons, given
}

func (r *RegisterRequest) FromForm(form url.Values) {
	r.Name = form.Get(FormName)
	r.Email = form.Get(FormEmail)
	r.Phone = form.Get(FormPhone)
	r.BaslID = form.Get(FormBaslID)
	r.NIC = form.Get(FormNIC)
	r.TicketType = strings.TrimSpace(form.Get(FormTicketType))
	r.AdditionalPersons, _ = personsFromForm(form, model.Tier(r.TicketType))
}

// FromForm keeps the stored additional persons unless the form fills any of them in.
func (r *UpdateBookingRequest) FromForm(form url.Values) {
	r.Status = form.Get(FormStatus)
	r.TicketType = strings.TrimSpace(form.Get(FormTicketType))

	if persons, given := personsFromForm(form, model.Tier(r.TicketType)); given {
		r.AdditionalPersons = &persons
	}
}
