package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"conference/infras/otel"
	"conference/infras/postgres"
	"conference/internal/domains/booking/model"
	lawyerModel "conference/internal/domains/lawyer/model"
	"conference/shared"
	"conference/shared/constant"
	gDto "conference/shared/dto"
	gRepo "conference/shared/repository"
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// capacityLockKey serialises reservations so the capacity check and the insert are atomic.
const capacityLockKey int64 = 0x636f6e66

const (
	queryCapacityLock = `SELECT pg_advisory_xact_lock($1)`

	queryActiveTx = `SELECT id, lawyer_id, ticket_type, status, expires_at, receipt_path,
       created_at, modified_at, created_by, modified_by
  FROM bookings
 WHERE status = :confirmed OR (status = :pending AND expires_at > :now)`

	queryConfirm = `UPDATE bookings
   SET status = :confirmed, receipt_path = :receipt_path, modified_at = :now, modified_by = :actor
 WHERE id = :id AND status = :pending AND expires_at > :now`

	queryReplaceReceipt = `UPDATE bookings
   SET receipt_path = :receipt_path, modified_at = :now, modified_by = :actor
 WHERE id = :id AND status = :confirmed`

	queryCancelIfExpired = `UPDATE bookings
   SET status = :cancelled, modified_at = :now, modified_by = :actor
 WHERE id = :id AND status = :pending AND expires_at <= :now`

	queryCancelExpired = `UPDATE bookings
   SET status = :cancelled, modified_at = :now, modified_by = :actor
 WHERE status = :pending AND expires_at <= :now
RETURNING id, lawyer_id, ticket_type, status, expires_at, receipt_path,
          created_at, modified_at, created_by, modified_by`

	querySummary = `SELECT status, ticket_type, COUNT(*) AS total
  FROM bookings
 GROUP BY status, ticket_type`

	queryLawyerHasBookings = `SELECT EXISTS(SELECT 1 FROM bookings WHERE lawyer_id = $1)`
)

// CapacityCheck inspects the bookings that hold capacity and rejects the reservation with an error.
type CapacityCheck func(active []model.Booking) error

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)

	Reserve(ctx context.Context, reservation model.Reservation, now time.Time, check CapacityCheck) error
	Active(ctx context.Context, now time.Time) ([]model.Booking, error)
	Confirm(ctx context.Context, id, receiptPath string, now time.Time) (bool, error)
	ReplaceReceipt(ctx context.Context, id, receiptPath string, now time.Time) (bool, error)
	CancelIfExpired(ctx context.Context, id string, now time.Time) (bool, error)
	CancelExpired(ctx context.Context, now time.Time) ([]model.Booking, error)
	Guests(ctx context.Context, bookingID string) ([]model.Guest, error)
	UpdateWithGuests(ctx context.Context, id string, fields map[string]any, guests []model.Guest) error
	Summary(ctx context.Context) ([]model.StatusCount, error)
	DeleteCascade(ctx context.Context, id, lawyerID string) (lawyerRemoved bool, err error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	guests  gRepo.Repository[model.Guest]
	lawyers gRepo.Repository[lawyerModel.Lawyer]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		guests:     gRepo.NewRepository[model.Guest](model.GuestEntityName, model.GuestTableName, model.GuestFieldID, db, otel),
		lawyers:    gRepo.NewRepository[lawyerModel.Lawyer](lawyerModel.EntityName, lawyerModel.TableName, lawyerModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ActiveFilter matches bookings that hold capacity at now.
func ActiveFilter(now time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{ArgName: "status_confirmed", Field: model.FieldStatus, Value: model.StatusConfirmed, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{
					gDto.Filter{ArgName: "status_pending", Field: model.FieldStatus, Value: model.StatusPending, Operator: gDto.FilterOperatorEq, Table: model.TableName},
					gDto.Filter{ArgName: "active_after", Field: model.FieldExpiresAt, Value: now, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
				},
			},
		},
	}
}

func (r *repositoryImpl) Reserve(ctx context.Context, reservation model.Reservation, now time.Time, check CapacityCheck) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Reserve", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, queryCapacityLock, capacityLockKey); err != nil {
			return gRepo.WrapError(model.EntityName, "lock capacity", err)
		}

		active, err := selectNamed[model.Booking](ctx, tx, queryActiveTx, map[string]any{
			"confirmed": model.StatusConfirmed,
			"pending":   model.StatusPending,
			"now":       now,
		})
		if err != nil {
			return gRepo.WrapError(model.EntityName, "load active bookings", err)
		}

		if err = check(active); err != nil {
			return err
		}

		if err = r.lawyers.InsertTx(ctx, tx, reservation.Lawyer); err != nil {
			return err //nolint:wrapcheck
		}

		if err = r.InsertTx(ctx, tx, reservation.Booking); err != nil {
			return err //nolint:wrapcheck
		}

		if len(reservation.Guests) > 0 {
			if err = r.guests.InsertBulkTx(ctx, tx, reservation.Guests); err != nil {
				return err //nolint:wrapcheck
			}
		}

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	return nil
}

func (r *repositoryImpl) Active(ctx context.Context, now time.Time) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Active", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	return r.GetAll(ctx, gDto.QueryParams{}, ActiveFilter(now)) //nolint:wrapcheck
}

func (r *repositoryImpl) Confirm(ctx context.Context, id, receiptPath string, now time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Confirm", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryConfirm)

	return r.execAffected(ctx, "confirm", queryConfirm, map[string]any{
		"id":           id,
		"receipt_path": receiptPath,
		"confirmed":    model.StatusConfirmed,
		"pending":      model.StatusPending,
		"now":          now,
		"actor":        constant.ContextGuest,
	})
}

// ReplaceReceipt swaps the receipt of a booking that is still confirmed.
func (r *repositoryImpl) ReplaceReceipt(ctx context.Context, id, receiptPath string, now time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.ReplaceReceipt", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryReplaceReceipt)

	return r.execAffected(ctx, "replace receipt", queryReplaceReceipt, map[string]any{
		"id":           id,
		"receipt_path": receiptPath,
		"confirmed":    model.StatusConfirmed,
		"now":          now,
		"actor":        constant.ContextGuest,
	})
}

func (r *repositoryImpl) CancelIfExpired(ctx context.Context, id string, now time.Time) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.CancelIfExpired", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryCancelIfExpired)

	return r.execAffected(ctx, "cancel expired", queryCancelIfExpired, map[string]any{
		"id":        id,
		"cancelled": model.StatusCancelled,
		"pending":   model.StatusPending,
		"now":       now,
		"actor":     constant.ActorSystem,
	})
}

func (r *repositoryImpl) CancelExpired(ctx context.Context, now time.Time) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.CancelExpired", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryCancelExpired)

	cancelled, err := selectNamed[model.Booking](ctx, r.db.Write, queryCancelExpired, map[string]any{
		"cancelled": model.StatusCancelled,
		"pending":   model.StatusPending,
		"now":       now,
		"actor":     constant.ActorSweeper,
	})
	if err != nil {
		scope.TraceError(err)

		return nil, gRepo.WrapError(model.EntityName, "cancel expired bookings", err)
	}

	return cancelled, nil
}

func (r *repositoryImpl) Guests(ctx context.Context, bookingID string) ([]model.Guest, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Guests", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.GuestFieldPosition, SortDir: gDto.SortDirAsc}

	return r.guests.GetAll(ctx, params, shared.FilterByID(bookingID, model.GuestFieldBookingID, model.GuestTableName)) //nolint:wrapcheck
}

// UpdateWithGuests applies fields to the booking and replaces its additional persons in one transaction.
func (r *repositoryImpl) UpdateWithGuests(ctx context.Context, id string, fields map[string]any, guests []model.Guest) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.UpdateWithGuests", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error { //nolint:wrapcheck
		if err := r.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return err //nolint:wrapcheck
		}

		if err := r.guests.DeleteTx(ctx, tx, shared.FilterByID(id, model.GuestFieldBookingID, model.GuestTableName)); err != nil {
			return err //nolint:wrapcheck
		}

		if len(guests) == 0 {
			return nil
		}

		return r.guests.InsertBulkTx(ctx, tx, guests) //nolint:wrapcheck
	})
}

func (r *repositoryImpl) Summary(ctx context.Context) ([]model.StatusCount, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Summary", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, querySummary)

	var counts []model.StatusCount

	if err := r.db.Read.SelectContext(ctx, &counts, querySummary); err != nil {
		scope.TraceError(err)

		return nil, gRepo.WrapError(model.EntityName, "summarise bookings", err)
	}

	return counts, nil
}

// DeleteCascade removes the booking with its additional persons, then the lawyer when no booking
// references it any more.
func (r *repositoryImpl) DeleteCascade(ctx context.Context, id, lawyerID string) (lawyerRemoved bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.DeleteCascade", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := r.guests.DeleteTx(ctx, tx, shared.FilterByID(id, model.GuestFieldBookingID, model.GuestTableName)); err != nil {
			return err //nolint:wrapcheck
		}

		if err := r.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return err //nolint:wrapcheck
		}

		var hasBookings bool
		if err := tx.GetContext(ctx, &hasBookings, queryLawyerHasBookings, lawyerID); err != nil {
			return gRepo.WrapError(model.EntityName, "check remaining bookings", err)
		}

		if hasBookings {
			return nil
		}

		if err := r.lawyers.DeleteTx(ctx, tx, shared.FilterByID(lawyerID, lawyerModel.FieldID, lawyerModel.TableName)); err != nil {
			return err //nolint:wrapcheck
		}

		lawyerRemoved = true

		return nil
	})
	if err != nil {
		scope.TraceError(err)

		return false, err //nolint:wrapcheck
	}

	return lawyerRemoved, nil
}

func (r *repositoryImpl) execAffected(ctx context.Context, action, query string, args map[string]any) (bool, error) {
	result, err := r.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		return false, gRepo.WrapError(model.EntityName, action, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, gRepo.WrapError(model.EntityName, action, err)
	}

	return affected > 0, nil
}

type namedQueryer interface {
	sqlx.QueryerContext
	Rebind(query string) string
}

func selectNamed[T any](ctx context.Context, q namedQueryer, query string, arg map[string]any) ([]T, error) {
	bound, args, err := sqlx.Named(query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to bind named query: %w", err)
	}

	var out []T
	if err = sqlx.SelectContext(ctx, q, &out, q.Rebind(bound), args...); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return out, nil
}
