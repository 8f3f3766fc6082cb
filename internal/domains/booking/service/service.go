package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"conference/config"
	"conference/infras/otel"
	accModel "conference/internal/domains/accommodation/model"
	accService "conference/internal/domains/accommodation/service"
	"conference/internal/domains/booking/model"
	"conference/internal/domains/booking/model/dto"
	"conference/internal/domains/booking/repository"
	lawyerModel "conference/internal/domains/lawyer/model"
	lawyerRepo "conference/internal/domains/lawyer/repository"
	notificationModel "conference/internal/domains/notification/model"
	notificationService "conference/internal/domains/notification/service"
	receiptModel "conference/internal/domains/receipt/model"
	receiptRepo "conference/internal/domains/receipt/repository"
	"conference/shared"
	"conference/shared/cache"
	"conference/shared/constant"
	gDto "conference/shared/dto"
	gRepo "conference/shared/repository"
	"conference/shared/timezone"
	"conference/shared/validator"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheSummary       = "booking:summary"
)

var timeNow = timezone.Now

type Booking interface {
	RegisterForm(ctx context.Context) (dto.RegisterFormResponse, error)
	Reserve(ctx context.Context, req dto.RegisterRequest) (dto.ReservationResponse, error)
	UploadForm(ctx context.Context, id string) (dto.UploadFormResponse, error)
	ConfirmWithReceipt(ctx context.Context, req dto.UploadReceiptRequest) (dto.ConfirmResponse, error)
	Confirmation(ctx context.Context, id string) (dto.BookingResponse, error)
	Status(ctx context.Context, id string) (dto.StatusResponse, error)
	CancelExpired(ctx context.Context) (int, error)

	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.AdminBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	EditForm(ctx context.Context, id string) (dto.EditFormResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateBookingRequest) error
	Delete(ctx context.Context, id string) error
	Receipt(ctx context.Context, objectPath string) (*receiptModel.File, error)
}

type serviceImpl struct {
	repo       repository.Booking
	lawyerRepo lawyerRepo.Lawyer
	capacity   accService.Capacity
	receipts   receiptRepo.Receipt
	notifier   notificationService.Notifier
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	lawyerRepo lawyerRepo.Lawyer,
	capacity accService.Capacity,
	receipts receiptRepo.Receipt,
	notifier notificationService.Notifier,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		lawyerRepo: lawyerRepo,
		capacity:   capacity,
		receipts:   receipts,
		notifier:   notifier,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) hold() time.Duration {
	return time.Duration(s.cfg.App.Hold.Minutes) * time.Minute
}

func (s *serviceImpl) RegisterForm(ctx context.Context) (res dto.RegisterFormResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RegisterForm")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.Availability, err = s.capacity.Available(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability")

		return res, fmt.Errorf("failed to get availability: %w", err)
	}

	res.Tiers = dto.TierOptions()

	return res, nil
}

func (s *serviceImpl) Reserve(ctx context.Context, req dto.RegisterRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	tier := model.Tier(req.TicketType)
	if !tier.Valid() {
		return res, ErrInvalidTier // nolint:wrapcheck
	}

	if err = checkGuests(tier, req.AdditionalPersons); err != nil {
		return res, err
	}

	if err = checkRepeated(req); err != nil {
		return res, err
	}

	if err = s.checkRegistered(ctx, req); err != nil {
		return res, err
	}

	now := timeNow()
	reservation := req.ToModel(now, s.hold())

	err = s.repo.Reserve(ctx, reservation, now, s.capacity.Guard(tier.Units(), now))
	if err != nil {
		if errors.Is(err, accModel.ErrCapacityExceeded) {
			log.Info().Err(err).Str("ticket_type", string(tier)).Msg("reservation rejected")

			return res, err
		}

		if constraint, ok := gRepo.UniqueViolation(err); ok {
			if duplicate, known := duplicateFromConstraint(constraint, reservation.Lawyer); known {
				return res, duplicate
			}
		}

		log.Error().Err(err).Msg("failed to reserve booking")

		return res, fmt.Errorf("failed to reserve booking: %w", err)
	}

	log.Info().
		Str("booking_id", reservation.Booking.ID).
		Str("ticket_type", string(tier)).
		Time("expires_at", reservation.Booking.ExpiresAt).
		Msg("booking reserved")

	s.invalidate(ctx, constant.Empty)

	res.FromModel(reservation.Booking, now)

	return res, nil
}

func checkGuests(tier model.Tier, guests []dto.PersonRequest) error {
	if len(guests) != tier.RequiredGuests() {
		return incompleteGuests(tier)
	}

	for _, guest := range guests {
		if !guest.Complete() {
			return incompleteGuests(tier)
		}
	}

	return nil
}

func checkRepeated(req dto.RegisterRequest) error {
	if value, ok := firstRepeated(req.BaslIDs()); ok {
		return repeatedIdentity("BASL ID", value)
	}

	if value, ok := firstRepeated(req.NICs()); ok {
		return repeatedIdentity("NIC", value)
	}

	return nil
}

func firstRepeated(values []string) (string, bool) {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			return value, true
		}

		seen[value] = struct{}{}
	}

	return constant.Empty, false
}

// checkRegistered rejects identifiers already held by a lawyer: the primary BASL ID, the primary
// NIC, any additional BASL ID, any additional NIC, then the email.
func (s *serviceImpl) checkRegistered(ctx context.Context, req dto.RegisterRequest) error {
	takenBasl, err := s.lawyerRepo.FirstTaken(ctx, lawyerModel.FieldBaslID, req.BaslIDs())
	if err != nil {
		log.Error().Err(err).Msg("failed to check registered BASL IDs")

		return fmt.Errorf("failed to check registered BASL IDs: %w", err)
	}

	takenNIC, err := s.lawyerRepo.FirstTaken(ctx, lawyerModel.FieldNIC, req.NICs())
	if err != nil {
		log.Error().Err(err).Msg("failed to check registered NICs")

		return fmt.Errorf("failed to check registered NICs: %w", err)
	}

	switch {
	case takenBasl != constant.Empty && takenBasl == req.BaslID:
		return &DuplicateIdentityError{Field: lawyerModel.FieldBaslID, Value: takenBasl, Primary: true}
	case takenNIC != constant.Empty && takenNIC == req.NIC:
		return &DuplicateIdentityError{Field: lawyerModel.FieldNIC, Value: takenNIC, Primary: true}
	case takenBasl != constant.Empty:
		return &DuplicateIdentityError{Field: lawyerModel.FieldBaslID, Value: takenBasl}
	case takenNIC != constant.Empty:
		return &DuplicateIdentityError{Field: lawyerModel.FieldNIC, Value: takenNIC}
	}

	takenEmail, err := s.lawyerRepo.FirstTaken(ctx, lawyerModel.FieldEmail, []string{req.Email})
	if err != nil {
		log.Error().Err(err).Msg("failed to check registered email")

		return fmt.Errorf("failed to check registered email: %w", err)
	}

	if takenEmail != constant.Empty {
		return &DuplicateIdentityError{Field: lawyerModel.FieldEmail, Value: takenEmail, Primary: true}
	}

	return nil
}

// find loads a booking with its lawyer. Malformed IDs are reported as not found.
func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	if uuid.Validate(id) != nil {
		return model.Booking{}, ErrBookingNotFound
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, ErrBookingNotFound
	}

	return booking, nil
}

func (s *serviceImpl) guests(ctx context.Context, booking model.Booking) ([]model.Guest, error) {
	if booking.TicketType.RequiredGuests() == 0 {
		return nil, nil
	}

	guests, err := s.repo.Guests(ctx, booking.ID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to get additional persons")

		return nil, fmt.Errorf("failed to get additional persons: %w", err)
	}

	return guests, nil
}

// expire cancels a lapsed pending hold and reports it as expired.
func (s *serviceImpl) expire(ctx context.Context, booking model.Booking, now time.Time) error {
	cancelled, err := s.repo.CancelIfExpired(ctx, booking.ID, now)
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to cancel expired booking")

		return fmt.Errorf("failed to cancel expired booking: %w", err)
	}

	if cancelled {
		log.Info().Str("booking_id", booking.ID).Msg("expired booking cancelled")

		booking.Status = model.StatusCancelled
		s.invalidate(ctx, booking.ID)
		s.publish(ctx, notificationModel.EventBookingCancelled, booking)
	}

	return ErrBookingExpired
}

func (s *serviceImpl) UploadForm(ctx context.Context, id string) (res dto.UploadFormResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadForm")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	now := timeNow()
	if booking.Status == model.StatusPending && booking.IsExpired(now) {
		return res, s.expire(ctx, booking, now)
	}

	guests, err := s.guests(ctx, booking)
	if err != nil {
		return res, err
	}

	res.Booking.FromModel(booking, guests)
	res.TimeRemaining = booking.TimeRemaining(now)
	res.Extensions = s.cfg.App.Upload.AllowedExtensions
	res.MaxBytes = s.cfg.App.Upload.MaxBytes

	return res, nil
}

func (s *serviceImpl) checkFile(req dto.UploadReceiptRequest) error {
	if req.Filename == constant.Empty || len(req.Data) == 0 {
		return ErrNoFile
	}

	if s.cfg.App.Upload.MaxBytes > 0 && int64(len(req.Data)) > s.cfg.App.Upload.MaxBytes {
		return ErrFileTooLarge
	}

	if !validator.HasAllowedExtension(req.Filename, s.cfg.App.Upload.AllowedExtensions) {
		return ErrInvalidFile
	}

	return nil
}

func (s *serviceImpl) ConfirmWithReceipt(ctx context.Context, req dto.UploadReceiptRequest) (res dto.ConfirmResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ConfirmWithReceipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	now := timeNow()

	switch {
	case booking.Status == model.StatusPending && booking.IsExpired(now):
		return res, s.expire(ctx, booking, now)
	case booking.Status == model.StatusCancelled && booking.IsExpired(now):
		return res, ErrBookingExpired // nolint:wrapcheck
	case booking.Status != model.StatusPending && booking.Status != model.StatusConfirmed:
		return res, ErrBookingNotPending // nolint:wrapcheck
	}

	if err = s.checkFile(req); err != nil {
		return res, err
	}

	objectPath, err := s.receipts.Save(ctx, booking.ID, req.Filename, req.Data)
	if err != nil {
		if errors.Is(err, receiptModel.ErrInvalidFile) {
			return res, err
		}

		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to store receipt")

		return res, fmt.Errorf("failed to store receipt: %w", err)
	}

	confirmedAt := timeNow()
	previous := booking.Receipt()
	replacing := booking.Status == model.StatusConfirmed

	if replacing {
		err = s.replaceReceipt(ctx, booking, objectPath, confirmedAt)
	} else {
		err = s.confirm(ctx, booking, objectPath, confirmedAt)
	}

	if err != nil {
		return res, err
	}

	if replacing && previous != constant.Empty && previous != objectPath {
		s.discardReceipt(ctx, previous)
	}

	booking.Status = model.StatusConfirmed
	booking.ReceiptPath = &objectPath
	booking.ModifiedAt = confirmedAt
	booking.ModifiedBy = constant.ContextGuest

	log.Info().Str("booking_id", booking.ID).Str("receipt", objectPath).Bool("replaced", replacing).Msg("booking confirmed")

	s.invalidate(ctx, booking.ID)

	if !replacing {
		s.publish(ctx, notificationModel.EventBookingConfirmed, booking)
	}

	guests, err := s.guests(ctx, booking)
	if err != nil {
		guests = nil
	}

	res.Message = dto.MessageConfirmed
	res.EmailSent = true

	if notifyErr := s.notifier.BookingConfirmed(ctx, booking, guests); notifyErr != nil {
		log.Warn().Err(notifyErr).Str("booking_id", booking.ID).Msg("booking confirmed without email")

		res.Message = dto.MessageConfirmedNoEmail
		res.EmailSent = false
	}

	res.Booking.FromModel(booking, guests)
	res.RedirectURL = dto.ConfirmedPath(booking.ID)

	return res, nil
}

// confirm moves a pending hold to confirmed. A hold that lapsed or changed meanwhile keeps its
// state and the new receipt is discarded.
func (s *serviceImpl) confirm(ctx context.Context, booking model.Booking, objectPath string, now time.Time) error {
	confirmed, err := s.repo.Confirm(ctx, booking.ID, objectPath, now)
	if err != nil {
		s.discardReceipt(ctx, objectPath)
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to confirm booking")

		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	if !confirmed {
		s.discardReceipt(ctx, objectPath)

		if booking.IsExpired(now) {
			return s.expire(ctx, booking, now)
		}

		return ErrBookingNotPending
	}

	return nil
}

// replaceReceipt swaps the receipt of a confirmed booking. The status is left untouched.
func (s *serviceImpl) replaceReceipt(ctx context.Context, booking model.Booking, objectPath string, now time.Time) error {
	replaced, err := s.repo.ReplaceReceipt(ctx, booking.ID, objectPath, now)
	if err != nil {
		s.discardReceipt(ctx, objectPath)
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to replace receipt")

		return fmt.Errorf("failed to replace receipt: %w", err)
	}

	if !replaced {
		s.discardReceipt(ctx, objectPath)

		return ErrBookingNotPending
	}

	return nil
}

func (s *serviceImpl) discardReceipt(ctx context.Context, objectPath string) {
	if err := s.receipts.Delete(context.WithoutCancel(ctx), objectPath); err != nil {
		log.Error().Err(err).Str("receipt", objectPath).Msg("failed to discard unused receipt")
	}
}

func (s *serviceImpl) Confirmation(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirmation")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	guests, err := s.guests(ctx, booking)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, guests)

	return res, nil
}

func (s *serviceImpl) Status(ctx context.Context, id string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Status")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, timeNow())

	return res, nil
}

// CancelExpired runs one sweep and returns how many holds were cancelled. Running it again with
// no new lapsed holds changes nothing.
func (s *serviceImpl) CancelExpired(ctx context.Context) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelExpired")
	defer scope.End()
	defer scope.TraceIfError(err)

	cancelled, err := s.repo.CancelExpired(ctx, timeNow())
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel expired bookings")

		return 0, fmt.Errorf("failed to cancel expired bookings: %w", err)
	}

	if len(cancelled) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(cancelled))
	for _, booking := range cancelled {
		ids = append(ids, booking.ID)
	}

	log.Info().Strs("booking_ids", ids).Msg("expired bookings cancelled")

	s.invalidate(ctx, ids...)
	s.publish(ctx, notificationModel.EventBookingCancelled, cancelled...)

	return len(cancelled), nil
}

// invalidate drops cached admin reads after a mutation. Empty ids only clear the list caches.
func (s *serviceImpl) invalidate(ctx context.Context, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if id == constant.Empty {
				continue
			}

			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete booking from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheSummary)
	}()
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, bookings ...model.Booking) {
	at := timeNow()

	events := make([]notificationModel.Event, 0, len(bookings))
	for _, booking := range bookings {
		events = append(events, notificationModel.NewEvent(eventType, booking, at))
	}

	go func() {
		if err := s.notifier.Publish(context.WithoutCancel(ctx), events...); err != nil {
			log.Error().Err(err).Str("event", eventType).Msg("failed to publish booking events")
		}
	}()
}
