package service

import (
	"conference/config"
	otelMocks "conference/infras/otel/mocks"
	accModel "conference/internal/domains/accommodation/model"
	accService "conference/internal/domains/accommodation/service"
	"conference/internal/domains/booking/model"
	"conference/internal/domains/booking/model/dto"
	"conference/internal/domains/booking/repository"
	lawyerModel "conference/internal/domains/lawyer/model"
	notificationModel "conference/internal/domains/notification/model"
	receiptRepo "conference/internal/domains/receipt/repository"
	"conference/shared/cache"
	"conference/shared/constant"
	gDto "conference/shared/dto"
	gModel "conference/shared/model"
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore keeps lawyers, bookings and additional persons in memory with the same conditional
// update rules as the postgres repository.
type memoryStore struct {
	mu       sync.Mutex
	lawyers  map[string]lawyerModel.Lawyer
	bookings map[string]model.Booking
	guests   map[string][]model.Guest
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		lawyers:  map[string]lawyerModel.Lawyer{},
		bookings: map[string]model.Booking{},
		guests:   map[string][]model.Guest{},
	}
}

func filterID(filter gDto.FilterGroup) string {
	for _, f := range filter.Filters {
		if single, ok := f.(gDto.Filter); ok {
			if id, ok := single.Value.(string); ok {
				return id
			}
		}
	}

	return constant.Empty
}

func (m *memoryStore) withLawyer(booking model.Booking) model.Booking {
	lawyer := m.lawyers[booking.LawyerID]
	booking.LawyerName = lawyer.Name
	booking.LawyerEmail = lawyer.Email
	booking.LawyerPhone = lawyer.Phone
	booking.LawyerBaslID = lawyer.BaslID
	booking.LawyerNIC = lawyer.NIC

	return booking
}

func (m *memoryStore) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.bookings[filterID(filter)]
	if !ok {
		return model.Booking{}, nil
	}

	return m.withLawyer(booking), nil
}

func (m *memoryStore) GetAll(_ context.Context, _ gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]model.Booking, 0, len(m.bookings))
	for _, booking := range m.bookings {
		all = append(all, m.withLawyer(booking))
	}

	slices.SortFunc(all, func(a, b model.Booking) int { return b.CreatedAt.Compare(a.CreatedAt) })

	return all, nil
}

func (m *memoryStore) Count(_ context.Context, _ gDto.FilterGroup) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.bookings), nil
}

func (m *memoryStore) Exist(_ context.Context, filter gDto.FilterGroup) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.bookings[filterID(filter)]

	return ok, nil
}

func (m *memoryStore) active(now time.Time) []model.Booking {
	var active []model.Booking

	for _, booking := range m.bookings {
		if booking.HoldsCapacity(now) {
			active = append(active, booking)
		}
	}

	return active
}

func (m *memoryStore) Reserve(_ context.Context, reservation model.Reservation, now time.Time, check repository.CapacityCheck) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := check(m.active(now)); err != nil {
		return err
	}

	for _, lawyer := range m.lawyers {
		switch {
		case lawyer.Email == reservation.Lawyer.Email:
			return &pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: lawyerModel.ConstraintEmail}
		case lawyer.BaslID == reservation.Lawyer.BaslID:
			return &pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: lawyerModel.ConstraintBaslID}
		case lawyer.NIC == reservation.Lawyer.NIC:
			return &pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: lawyerModel.ConstraintNIC}
		}
	}

	m.lawyers[reservation.Lawyer.ID] = reservation.Lawyer
	m.bookings[reservation.Booking.ID] = reservation.Booking
	m.guests[reservation.Booking.ID] = reservation.Guests

	return nil
}

func (m *memoryStore) Active(_ context.Context, now time.Time) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.active(now), nil
}

func (m *memoryStore) Confirm(_ context.Context, id, receiptPath string, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.bookings[id]
	if !ok || booking.Status != model.StatusPending || booking.IsExpired(now) {
		return false, nil
	}

	booking.Status = model.StatusConfirmed
	booking.ReceiptPath = &receiptPath
	m.bookings[id] = booking

	return true, nil
}

func (m *memoryStore) ReplaceReceipt(_ context.Context, id, receiptPath string, _ time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.bookings[id]
	if !ok || booking.Status != model.StatusConfirmed {
		return false, nil
	}

	booking.ReceiptPath = &receiptPath
	m.bookings[id] = booking

	return true, nil
}

func (m *memoryStore) CancelIfExpired(_ context.Context, id string, now time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.bookings[id]
	if !ok || booking.Status != model.StatusPending || !booking.IsExpired(now) {
		return false, nil
	}

	booking.Status = model.StatusCancelled
	m.bookings[id] = booking

	return true, nil
}

func (m *memoryStore) CancelExpired(_ context.Context, now time.Time) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cancelled []model.Booking

	for id, booking := range m.bookings {
		if booking.Status == model.StatusPending && booking.IsExpired(now) {
			booking.Status = model.StatusCancelled
			m.bookings[id] = booking
			cancelled = append(cancelled, booking)
		}
	}

	return cancelled, nil
}

func (m *memoryStore) Guests(_ context.Context, bookingID string) ([]model.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.guests[bookingID]), nil
}

func (m *memoryStore) UpdateWithGuests(_ context.Context, id string, fields map[string]any, guests []model.Guest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	booking := m.bookings[id]

	if status, ok := fields[model.FieldStatus].(model.Status); ok {
		booking.Status = status
	}

	if tier, ok := fields[model.FieldTicketType].(model.Tier); ok {
		booking.TicketType = tier
	}

	m.bookings[id] = booking
	m.guests[id] = guests

	return nil
}

func (m *memoryStore) Summary(_ context.Context) ([]model.StatusCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	totals := map[model.StatusCount]int{}
	for _, booking := range m.bookings {
		totals[model.StatusCount{Status: booking.Status, TicketType: booking.TicketType}]++
	}

	counts := make([]model.StatusCount, 0, len(totals))
	for key, total := range totals {
		key.Total = total
		counts = append(counts, key)
	}

	return counts, nil
}

func (m *memoryStore) DeleteCascade(_ context.Context, id, lawyerID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.bookings, id)
	delete(m.guests, id)

	for _, booking := range m.bookings {
		if booking.LawyerID == lawyerID {
			return false, nil
		}
	}

	delete(m.lawyers, lawyerID)

	return true, nil
}

// memoryLawyers answers uniqueness lookups from the same store.
type memoryLawyers struct {
	store *memoryStore
}

func (l memoryLawyers) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (lawyerModel.Lawyer, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	return l.store.lawyers[filterID(filter)], nil
}

func (l memoryLawyers) Exist(_ context.Context, filter gDto.FilterGroup) (bool, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	_, ok := l.store.lawyers[filterID(filter)]

	return ok, nil
}

func (l memoryLawyers) FirstTaken(_ context.Context, field string, values []string) (string, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()

	for _, value := range values {
		for _, lawyer := range l.store.lawyers {
			taken := map[string]string{
				lawyerModel.FieldBaslID: lawyer.BaslID,
				lawyerModel.FieldNIC:    lawyer.NIC,
				lawyerModel.FieldEmail:  lawyer.Email,
			}[field]

			if taken == value {
				return value, nil
			}
		}
	}

	return constant.Empty, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	confirmed []string
	events    []notificationModel.Event
	failWith  error
}

func (n *recordingNotifier) BookingConfirmed(_ context.Context, booking model.Booking, _ []model.Guest) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.confirmed = append(n.confirmed, booking.ID)

	return n.failWith
}

func (n *recordingNotifier) Publish(_ context.Context, events ...notificationModel.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.events = append(n.events, events...)

	return nil
}

// missCache never holds anything.
type missCache struct{}

func (missCache) Save(context.Context, string, any, int) error { return nil }
func (missCache) Get(context.Context, string, any) error { return cache.Nil }
func (missCache) Exists(context.Context, string) (bool, error) { return false, nil }
func (missCache) Delete(context.Context, string) error { return nil }
func (missCache) Clear(context.Context, string) error { return nil }

type harness struct {
	svc      Booking
	store    *memoryStore
	fs       afero.Fs
	notifier *recordingNotifier
	capacity accService.Capacity
	now      time.Time
}

func newHarness(t *testing.T, total int) *harness {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Capacity.Total = total
	cfg.App.Hold.Minutes = 5
	cfg.App.Upload.MaxBytes = 16 << 20
	cfg.App.Upload.AllowedExtensions = []string{"png", "jpg", "jpeg", "pdf"}

	h := &harness{
		store:    newMemoryStore(),
		fs:       afero.NewMemMapFs(),
		notifier: &recordingNotifier{},
		now:      time.Now(),
	}

	otel := otelMocks.NewOtel()
	h.capacity = accService.New(h.store, cfg, otel)
	h.svc = New(h.store, memoryLawyers{store: h.store}, h.capacity, receiptRepo.NewDisk(h.fs, otel), h.notifier, cfg, missCache{}, otel)

	previous := timeNow
	timeNow = func() time.Time { return h.now }

	t.Cleanup(func() { timeNow = previous })

	return h
}

func (h *harness) advance(d time.Duration) {
	h.now = h.now.Add(d)
}

func (h *harness) available(t *testing.T) int {
	t.Helper()

	availability, err := h.capacity.Available(context.Background())
	require.NoError(t, err)

	return availability.Available
}

var registrations int

func registration(tier model.Tier) dto.RegisterRequest {
	registrations++
	n := registrations

	req := dto.RegisterRequest{
		Name:       fmt.Sprintf("Lawyer %d", n),
		Email:      fmt.Sprintf("lawyer%d@example.com", n),
		Phone:      "0771234567",
		BaslID:     fmt.Sprintf("BASL-%d", n),
		NIC:        fmt.Sprintf("NIC-%d", n),
		TicketType: string(tier),
	}

	for i := range tier.RequiredGuests() {
		req.AdditionalPersons = append(req.AdditionalPersons, dto.PersonRequest{
			Name:   fmt.Sprintf("Guest %d-%d", n, i),
			BaslID: fmt.Sprintf("BASL-%d-%d", n, i),
			NIC:    fmt.Sprintf("NIC-%d-%d", n, i),
			Phone:  "0777654321",
		})
	}

	return req
}

var jpeg = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")

func TestLifecycle_ReserveConfirmAndCapacity(t *testing.T) {
	h := newHarness(t, 3)
	ctx := context.Background()

	_, err := h.svc.Reserve(ctx, registration(model.TierDouble))
	require.NoError(t, err)
	assert.Equal(t, 1, h.available(t))

	reservation, err := h.svc.Reserve(ctx, registration(model.TierSingle))
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusPending), reservation.Status)
	assert.Equal(t, 300, reservation.TimeRemaining)
	assert.Equal(t, h.now.Add(5*time.Minute).Format(constant.DateFormat), reservation.ExpiresAt)
	assert.Equal(t, 0, h.available(t))

	_, err = h.svc.Reserve(ctx, registration(model.TierSingle))
	assert.ErrorIs(t, err, accModel.ErrCapacityExceeded)
	assert.EqualError(t, err, "Insufficient accommodations available. Only 0 accommodations left.")

	h.advance(time.Minute)

	confirmation, err := h.svc.ConfirmWithReceipt(ctx, dto.UploadReceiptRequest{
		BookingID: reservation.ID,
		Filename:  "slip.jpg",
		Data:      jpeg,
	})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusConfirmed), confirmation.Booking.Status)
	assert.Equal(t, dto.MessageConfirmed, confirmation.Message)
	assert.Equal(t, "/booking_confirmed/"+reservation.ID, confirmation.RedirectURL)
	assert.Equal(t, []string{reservation.ID}, h.notifier.confirmed)

	exists, err := afero.Exists(h.fs, confirmation.Booking.ReceiptPath)
	require.NoError(t, err)
	assert.True(t, exists)

	status, err := h.svc.Status(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusConfirmed), status.Status)
}

func TestLifecycle_TripleRejectedWhenTwoUnitsLeft(t *testing.T) {
	h := newHarness(t, 100)
	ctx := context.Background()

	for range 49 {
		_, err := h.svc.Reserve(ctx, registration(model.TierDouble))
		require.NoError(t, err)
	}

	assert.Equal(t, 2, h.available(t))

	_, err := h.svc.Reserve(ctx, registration(model.TierTriple))
	assert.ErrorIs(t, err, accModel.ErrCapacityExceeded)
	assert.EqualError(t, err, "Insufficient accommodations available. Only 2 accommodations left.")

	_, err = h.svc.Reserve(ctx, registration(model.TierDouble))
	assert.NoError(t, err)
}

func TestLifecycle_SweepReleasesCapacity(t *testing.T) {
	h := newHarness(t, 100)
	ctx := context.Background()

	reservation, err := h.svc.Reserve(ctx, registration(model.TierTriple))
	require.NoError(t, err)
	assert.Equal(t, 97, h.available(t))

	count, err := h.svc.CancelExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	h.advance(5*time.Minute + time.Second)

	count, err = h.svc.CancelExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = h.svc.CancelExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	status, err := h.svc.Status(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.StatusResponse{Status: string(model.StatusCancelled), TimeRemaining: 0, Expired: true}, status)
	assert.Equal(t, 100, h.available(t))
}

func TestLifecycle_UploadAfterExpiryCancels(t *testing.T) {
	h := newHarness(t, 100)
	ctx := context.Background()

	reservation, err := h.svc.Reserve(ctx, registration(model.TierSingle))
	require.NoError(t, err)

	h.advance(5 * time.Minute)

	_, err = h.svc.ConfirmWithReceipt(ctx, dto.UploadReceiptRequest{BookingID: reservation.ID, Filename: "slip.jpg", Data: jpeg})
	assert.ErrorIs(t, err, ErrBookingExpired)

	status, err := h.svc.Status(ctx, reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusCancelled), status.Status)

	_, err = h.svc.ConfirmWithReceipt(ctx, dto.UploadReceiptRequest{BookingID: reservation.ID, Filename: "slip.jpg", Data: jpeg})
	assert.ErrorIs(t, err, ErrBookingExpired)

	files, err := afero.ReadDir(h.fs, "/")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLifecycle_ReuploadReplacesReceipt(t *testing.T) {
	h := newHarness(t, 100)
	ctx := context.Background()

	reservation, err := h.svc.Reserve(ctx, registration(model.TierSingle))
	require.NoError(t, err)

	first, err := h.svc.ConfirmWithReceipt(ctx, dto.UploadReceiptRequest{BookingID: reservation.ID, Filename: "slip.jpg", Data: jpeg})
	require.NoError(t, err)

	h.advance(10 * time.Minute)

	second, err := h.svc.ConfirmWithReceipt(ctx, dto.UploadReceiptRequest{BookingID: reservation.ID, Filename: "second.jpg", Data: jpeg})
	require.NoError(t, err)

	assert.Equal(t, string(model.StatusConfirmed), second.Booking.Status)
	assert.NotEqual(t, first.Booking.ReceiptPath, second.Booking.ReceiptPath)
	assert.Equal(t, second.Booking.ReceiptPath, h.store.bookings[reservation.ID].Receipt())

	exists, err := afero.Exists(h.fs, first.Booking.ReceiptPath)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = afero.Exists(h.fs, second.Booking.ReceiptPath)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Len(t, h.notifier.confirmed, 2)
	assert.Equal(t, 99, h.available(t))
}

func TestLifecycle_DuplicateAdditionalPerson(t *testing.T) {
	h := newHarness(t, 100)
	ctx := context.Background()

	first := registration(model.TierSingle)
	_, err := h.svc.Reserve(ctx, first)
	require.NoError(t, err)

	second := registration(model.TierDouble)
	second.AdditionalPersons[0].NIC = first.NIC

	_, err = h.svc.Reserve(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
	assert.EqualError(t, err, fmt.Sprintf("The NIC (%s) has already been registered.", first.NIC))
}

func TestLifecycle_DeleteCascadesLawyer(t *testing.T) {
	h := newHarness(t, 100)
	ctx := context.Background()

	solo, err := h.svc.Reserve(ctx, registration(model.TierSingle))
	require.NoError(t, err)

	shared, err := h.svc.Reserve(ctx, registration(model.TierSingle))
	require.NoError(t, err)

	owner := h.store.bookings[shared.ID].LawyerID
	extra := model.Booking{
		ID:         "8d1f7b52-9a3e-4c61-b0f4-6f1f2a7d3c10",
		LawyerID:   owner,
		TicketType: model.TierSingle,
		Status:     model.StatusCancelled,
		ExpiresAt:  h.now,
		Metadata:   gModel.NewMetadata(constant.ContextGuest, h.now),
	}
	h.store.bookings[extra.ID] = extra

	soloLawyer := h.store.bookings[solo.ID].LawyerID

	require.NoError(t, h.svc.Delete(ctx, solo.ID))
	assert.NotContains(t, h.store.lawyers, soloLawyer)

	require.NoError(t, h.svc.Delete(ctx, shared.ID))
	assert.Contains(t, h.store.lawyers, owner)

	_, err = h.svc.Get(ctx, shared.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestLifecycle_NotificationFailureKeepsConfirmation(t *testing.T) {
	h := newHarness(t, 100)
	h.notifier.failWith = fmt.Errorf("smtp down")
	ctx := context.Background()

	reservation, err := h.svc.Reserve(ctx, registration(model.TierSingle))
	require.NoError(t, err)

	confirmation, err := h.svc.ConfirmWithReceipt(ctx, dto.UploadReceiptRequest{BookingID: reservation.ID, Filename: "slip.jpg", Data: jpeg})
	require.NoError(t, err)
	assert.Equal(t, dto.MessageConfirmedNoEmail, confirmation.Message)
	assert.False(t, confirmation.EmailSent)
	assert.Equal(t, model.StatusConfirmed, h.store.bookings[reservation.ID].Status)
}
