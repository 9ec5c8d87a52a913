package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"homestay/infras/otel"
	"homestay/infras/postgres"
	"homestay/internal/domains/payment/model"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/logger"
	gRepo "homestay/shared/repository"
)

type Payment interface {
	Insert(ctx context.Context, model model.Payment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Payment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Payment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	SumAmount(ctx context.Context, filter gDto.FilterGroup) (float64, error)
	GroupTotals(ctx context.Context, column string, filter gDto.FilterGroup) ([]model.GroupTotal, error)
	MonthlyTotals(ctx context.Context, filter gDto.FilterGroup, months int) ([]model.MonthlyTotal, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) SumAmount(ctx context.Context, filter gDto.FilterGroup) (float64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.SumAmount")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT COALESCE(SUM(%s.%s), 0) FROM %s %s", model.TableName, model.FieldAmount, model.TableName, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var sum float64

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (payment): %w", err)
	}
	defer prepare.Close()

	if err = prepare.GetContext(ctx, &sum, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum payment amounts: %w", err)
	}

	return sum, nil
}

func (repo *repositoryImpl) GroupTotals(ctx context.Context, column string, filter gDto.FilterGroup) ([]model.GroupTotal, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.GroupTotals")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf(
		"SELECT %[1]s.%[2]s AS key, COUNT(*) AS count, COALESCE(SUM(%[1]s.%[3]s), 0) AS total_amount FROM %[1]s %[4]s GROUP BY %[1]s.%[2]s",
		model.TableName, column, model.FieldAmount, where,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var totals []model.GroupTotal

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (payment): %w", err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &totals, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to group payment totals: %w", err)
	}

	return totals, nil
}

func (repo *repositoryImpl) MonthlyTotals(ctx context.Context, filter gDto.FilterGroup, months int) ([]model.MonthlyTotal, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.MonthlyTotals")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	args["months"] = months

	query := fmt.Sprintf(
		`SELECT EXTRACT(YEAR FROM %[1]s.%[2]s)::int AS year,
			EXTRACT(MONTH FROM %[1]s.%[2]s)::int AS month,
			COUNT(*) AS count,
			COALESCE(SUM(%[1]s.%[3]s), 0) AS total_amount
		FROM %[1]s %[4]s
		GROUP BY year, month
		ORDER BY year DESC, month DESC
		LIMIT :months`,
		model.TableName, model.FieldPaymentDate, model.FieldAmount, where,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var totals []model.MonthlyTotal

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (payment): %w", err)
	}
	defer prepare.Close()

	if err = prepare.SelectContext(ctx, &totals, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get monthly payment totals: %w", err)
	}

	return totals, nil
}
