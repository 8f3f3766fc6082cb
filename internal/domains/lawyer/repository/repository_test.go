package repository_test

import (
	"conference/infras/otel/mocks"
	"conference/infras/postgres"
	"conference/internal/domains/lawyer/model"
	"conference/internal/domains/lawyer/repository"
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) (repository.Lawyer, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	conn := sqlx.NewDb(db, "postgres")

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func TestLawyerRepository_FirstTaken(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		values    []string
		setupMock func(mock sqlmock.Sqlmock)
		want      string
	}{
		{
			name:   "reports the first taken value in request order",
			field:  model.FieldNIC,
			values: []string{"901234567V", "911234567V"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(regexp.QuoteMeta("SELECT lawyers.nic FROM lawyers") + ".*" + regexp.QuoteMeta("lawyers.nic IN ($1, $2)")).
					ExpectQuery().
					WithArgs("901234567V", "911234567V").
					WillReturnRows(sqlmock.NewRows([]string{"nic"}).AddRow("911234567V").AddRow("901234567V"))
			},
			want: "901234567V",
		},
		{
			name:   "every value is free",
			field:  model.FieldBaslID,
			values: []string{"BASL-001"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPrepare(regexp.QuoteMeta("lawyers.basl_id IN ($1)")).
					ExpectQuery().
					WithArgs("BASL-001").
					WillReturnRows(sqlmock.NewRows([]string{"basl_id"}))
			},
			want: "",
		},
		{
			name:      "nothing to look up",
			field:     model.FieldEmail,
			setupMock: func(sqlmock.Sqlmock) {},
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			tt.setupMock(mock)

			taken, err := repo.FirstTaken(context.Background(), tt.field, tt.values)
			require.NoError(t, err)

			assert.Equal(t, tt.want, taken)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
