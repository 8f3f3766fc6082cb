package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"conference/infras/otel"
	"conference/infras/postgres"
	"conference/internal/domains/lawyer/model"
	"conference/shared/constant"
	gDto "conference/shared/dto"
	gRepo "conference/shared/repository"
	"context"
	"fmt"
	"slices"
)

type Lawyer interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Lawyer, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	FirstTaken(ctx context.Context, field string, values []string) (string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Lawyer]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Lawyer {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Lawyer](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FirstTaken returns the first of values, in the given order, already registered under field.
// An empty result means every value is free.
func (r *repositoryImpl) FirstTaken(ctx context.Context, field string, values []string) (string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.FirstTaken", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	if len(values) == 0 {
		return constant.Empty, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: field, Value: values, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}

	rows, err := r.GetAll(ctx, gDto.QueryParams{}, filter, field)
	if err != nil {
		return constant.Empty, err //nolint:wrapcheck
	}

	taken := make([]string, 0, len(rows))
	for _, row := range rows {
		taken = append(taken, fieldValue(row, field))
	}

	for _, value := range values {
		if slices.Contains(taken, value) {
			return value, nil
		}
	}

	return constant.Empty, nil
}

func fieldValue(lawyer model.Lawyer, field string) string {
	switch field {
	case model.FieldEmail:
		return lawyer.Email
	case model.FieldBaslID:
		return lawyer.BaslID
	case model.FieldNIC:
		return lawyer.NIC
	case model.FieldPhone:
		return lawyer.Phone
	case model.FieldName:
		return lawyer.Name
	default:
		return lawyer.ID
	}
}
