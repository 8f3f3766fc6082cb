package service

import (
	"conference/internal/domains/booking/model"
	"conference/internal/domains/booking/model/dto"
	receiptModel "conference/internal/domains/receipt/model"
	"conference/shared"
	"conference/shared/constant"
	gDto "conference/shared/dto"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.AdminBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	params.Sanitize(dto.SortColumns, dto.DefaultSortColumn)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")
	} else {
		res, err = s.list(ctx, params, filter)
		if err != nil {
			return res, err
		}

		go func(snapshot dto.AdminBookingsResponse) {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, snapshot, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save bookings to cache")
			}
		}(res)
	}

	res.Availability, err = s.capacity.Available(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability")

		return res, fmt.Errorf("failed to get availability: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.AdminBookingsResponse, err error) {
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	counts, err := s.repo.Summary(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to summarise bookings")

		return res, fmt.Errorf("failed to summarise bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)
	res.Stats.FromCounts(counts)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	guests, err := s.guests(ctx, booking)
	if err != nil {
		return res, err
	}

	res.FromModel(booking, guests)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) EditForm(ctx context.Context, id string) (res dto.EditFormResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EditForm")
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

	res.Booking.FromModel(booking, guests)
	res.Tiers = dto.TierOptions()

	for _, status := range model.Statuses {
		if booking.Status.CanTransitionTo(status) {
			res.Statuses = append(res.Statuses, string(status))
		}
	}

	return res, nil
}

// Update is an admin override: tier cardinality is enforced but capacity and identity uniqueness
// are not re-checked.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	if req.Empty() {
		return ErrEmptyUpdate // nolint:wrapcheck
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timeNow()

	fields := map[string]any{
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if req.Status != constant.Empty {
		next := model.Status(req.Status)
		if !booking.Status.CanTransitionTo(next) {
			return statusTransition(booking.Status, next)
		}

		fields[model.FieldStatus] = next
	}

	tier := booking.TicketType
	if req.TicketType != constant.Empty {
		tier = model.Tier(req.TicketType)
		if !tier.Valid() {
			return ErrInvalidTier // nolint:wrapcheck
		}

		fields[model.FieldTicketType] = tier
	}

	var guests []model.Guest

	replaceGuests := req.AdditionalPersons != nil || tier != booking.TicketType
	if replaceGuests {
		var persons []dto.PersonRequest
		if req.AdditionalPersons != nil {
			persons = *req.AdditionalPersons
		}

		if err = checkGuests(tier, persons); err != nil {
			return err
		}

		for i, person := range persons {
			guests = append(guests, person.ToModel(booking.ID, i+1, now))
		}
	} else {
		guests, err = s.guests(ctx, booking)
		if err != nil {
			return err
		}
	}

	if err = s.repo.UpdateWithGuests(ctx, booking.ID, fields, guests); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	log.Info().Str("booking_id", booking.ID).Str("user", user).Msg("booking updated")

	s.invalidate(ctx, booking.ID)

	return nil
}

// Delete removes the booking, its receipt and, when it was the lawyer's last booking, the lawyer.
// A receipt that cannot be removed is logged and does not block the deletion.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if receipt := booking.Receipt(); receipt != constant.Empty {
		if err := s.receipts.Delete(ctx, receipt); err != nil {
			log.Warn().Err(err).Str("receipt", receipt).Msg("failed to delete receipt file")
		}
	}

	lawyerRemoved, err := s.repo.DeleteCascade(ctx, booking.ID, booking.LawyerID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	log.Info().
		Str("booking_id", booking.ID).
		Bool("lawyer_removed", lawyerRemoved).
		Msg("booking deleted")

	s.invalidate(ctx, booking.ID)

	return nil
}

func (s *serviceImpl) Receipt(ctx context.Context, objectPath string) (file *receiptModel.File, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Receipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	file, err = s.receipts.Open(ctx, objectPath)
	if err != nil {
		log.Error().Err(err).Str("receipt", objectPath).Msg("failed to open receipt")

		return nil, err //nolint:wrapcheck
	}

	return file, nil
}
