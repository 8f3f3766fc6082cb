package repository_test

import (
	"conference/infras/otel/mocks"
	"conference/infras/postgres"
	"conference/internal/domains/booking/model"
	"conference/internal/domains/booking/repository"
	lawyerModel "conference/internal/domains/lawyer/model"
	"conference/shared/constant"
	"conference/shared/failure"
	gModel "conference/shared/model"
	"context"
	"errors"
	"net"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookingID = "3f0e9c3a-6a1b-4b8e-9d7e-1c2b3a4d5e6f"

var bookingColumns = []string{
	"id", "lawyer_id", "ticket_type", "status", "expires_at", "receipt_path",
	"created_at", "modified_at", "created_by", "modified_by",
}

func newRepository(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func reservation(now time.Time) model.Reservation {
	metadata := gModel.NewMetadata(constant.ContextGuest, now)

	lawyer := lawyerModel.Lawyer{
		ID:       "5b2a8f0e-4c1d-4b7a-9f3e-2d6c8a1b0e97",
		Name:     "Nimal Perera",
		Email:    "nimal@example.com",
		Phone:    "0771234567",
		BaslID:   "BASL-001",
		NIC:      "901234567V",
		Metadata: metadata,
	}

	return model.Reservation{
		Lawyer: lawyer,
		Booking: model.Booking{
			ID:         bookingID,
			LawyerID:   lawyer.ID,
			TicketType: model.TierDouble,
			Status:     model.StatusPending,
			ExpiresAt:  now.Add(5 * time.Minute),
			Metadata:   metadata,
		},
		Guests: []model.Guest{{
			ID:        "0c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e6f",
			BookingID: bookingID,
			Position:  1,
			Name:      "Kamal Silva",
			BaslID:    "BASL-002",
			NIC:       "911234567V",
			CreatedAt: now,
		}},
	}
}

func TestBookingRepository_Reserve(t *testing.T) {
	errFull := errors.New("no capacity left")

	tests := []struct {
		name      string
		check     func(active []model.Booking) error
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "inserts everything under the capacity lock",
			check: func(active []model.Booking) error {
				if len(active) != 1 || active[0].Units() != 3 {
					return errors.New("unexpected active bookings")
				}

				return nil
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO lawyers").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO booking_guests").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:  "capacity check rejects and nothing is written",
			check: func([]model.Booking) error { return errFull },
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectRollback()
			},
			wantErr: errFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			now := time.Now()

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
				WithArgs(sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 OR (status = $2 AND expires_at > $3)")).
				WithArgs(model.StatusConfirmed, model.StatusPending, now).
				WillReturnRows(sqlmock.NewRows(bookingColumns).
					AddRow("8d1f7b52-9a3e-4c61-b0f4-6f1f2a7d3c10", "l-0", "Triple", "confirmed", now, "booking_x/slip.pdf", now, now, "guest", "guest"))
			tt.setupMock(mock)

			err := repo.Reserve(context.Background(), reservation(now), now, tt.check)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_Confirm(t *testing.T) {
	const receiptPath = "booking_" + bookingID + "/20250301090000_slip.jpg"

	query := regexp.QuoteMeta("SET status = $1, receipt_path = $2, modified_at = $3, modified_by = $4 WHERE id = $5 AND status = $6 AND expires_at > $7")

	tests := []struct {
		name     string
		affected int64
		err      error
		want     bool
		wantErr  error
	}{
		{name: "pending and unexpired", affected: 1, want: true},
		{name: "lapsed or no longer pending", affected: 0, want: false},
		{
			name:    "database unreachable",
			err:     &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")},
			wantErr: failure.StorageUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			now := time.Now()

			expect := mock.ExpectExec(query).
				WithArgs(model.StatusConfirmed, receiptPath, now, constant.ContextGuest, bookingID, model.StatusPending, now)
			if tt.err != nil {
				expect.WillReturnError(tt.err)
			} else {
				expect.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			confirmed, err := repo.Confirm(context.Background(), bookingID, receiptPath, now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, confirmed)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_ReplaceReceipt(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("SET receipt_path = $1, modified_at = $2, modified_by = $3 WHERE id = $4 AND status = $5")).
		WithArgs("booking_x/new.pdf", now, constant.ContextGuest, bookingID, model.StatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 0))

	replaced, err := repo.ReplaceReceipt(context.Background(), bookingID, "booking_x/new.pdf", now)
	require.NoError(t, err)
	assert.False(t, replaced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CancelIfExpired(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("SET status = $1, modified_at = $2, modified_by = $3 WHERE id = $4 AND status = $5 AND expires_at <= $6")).
		WithArgs(model.StatusCancelled, now, constant.ActorSystem, bookingID, model.StatusPending, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	cancelled, err := repo.CancelIfExpired(context.Background(), bookingID, now)
	require.NoError(t, err)
	assert.True(t, cancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CancelExpired(t *testing.T) {
	repo, mock := newRepository(t)
	now := time.Now()
	lapsed := now.Add(-time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("SET status = $1, modified_at = $2, modified_by = $3 WHERE status = $4 AND expires_at <= $5 RETURNING id, lawyer_id")).
		WithArgs(model.StatusCancelled, now, constant.ActorSweeper, model.StatusPending, now).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(bookingID, "l-1", "Single", "cancelled", lapsed, nil, lapsed, now, "guest", "sweeper").
			AddRow("8d1f7b52-9a3e-4c61-b0f4-6f1f2a7d3c10", "l-2", "Triple", "cancelled", lapsed, nil, lapsed, now, "guest", "sweeper"))

	cancelled, err := repo.CancelExpired(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, cancelled, 2)

	assert.Equal(t, bookingID, cancelled[0].ID)
	assert.Equal(t, model.StatusCancelled, cancelled[0].Status)
	assert.Equal(t, model.TierTriple, cancelled[1].TicketType)
	assert.Empty(t, cancelled[1].Receipt())
	assert.NoError(t, mock.ExpectationsWereMet())
}
