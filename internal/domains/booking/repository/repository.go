package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"servana/infras/otel"
	"servana/infras/postgres"
	"servana/internal/domains/booking/model"
	"servana/shared/constant"
	gDto "servana/shared/dto"
	"servana/shared/logger"
	gRepo "servana/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	ServiceDemand(ctx context.Context) ([]model.ServiceDemand, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	sqltx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	return sqltx, nil
}

// ServiceDemand tallies bookings per service type, busiest first.
func (repo *repositoryImpl) ServiceDemand(ctx context.Context) ([]model.ServiceDemand, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ServiceDemand")
	defer scope.End()

	query := fmt.Sprintf(
		`SELECT service_type AS service, COUNT(*) AS total
		FROM %s
		GROUP BY service_type
		ORDER BY total DESC`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var demand []model.ServiceDemand

	err := repo.db.Read.SelectContext(ctx, &demand, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return demand, fmt.Errorf("failed to get service demand (%s): %w", model.EntityName, err)
	}

	return demand, nil
}
