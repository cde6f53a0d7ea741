package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"servana/infras/otel"
	"servana/infras/postgres"
	"servana/internal/domains/provider/model"
	"servana/shared/constant"
	gDto "servana/shared/dto"
	"servana/shared/logger"
	gRepo "servana/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Provider interface {
	Insert(ctx context.Context, model model.Provider) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Provider, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Provider, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	MatchAvailableTx(ctx context.Context, sqltx *sqlx.Tx, serviceType, excludeID string) (model.Provider, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Provider]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Provider {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Provider](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// MatchAvailableTx picks one accepted, online provider for the service type
// and locks the row until the surrounding transaction commits. SKIP LOCKED
// keeps concurrent matches from fighting over the same provider row.
func (repo *repositoryImpl) MatchAvailableTx(ctx context.Context, sqltx *sqlx.Tx, serviceType, excludeID string) (model.Provider, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".MatchAvailableTx")
	defer scope.End()

	query := fmt.Sprintf(
		`SELECT id, full_name, email, phone, role, service_type, status, experience_years, language,
			kyc_doc_url, intro_video_url, is_online, bank_account, ifsc_code, created_by, modified_by
		FROM %s
		WHERE service_type = $1 AND status = $2 AND is_online = TRUE AND ($3 = '' OR id != $3)
		ORDER BY modified_at ASC
		LIMIT 1
		FOR UPDATE SKIP LOCKED`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var provider model.Provider

	err := sqltx.GetContext(ctx, &provider, query, serviceType, constant.ProviderStatusAccepted, excludeID)
	if errors.Is(err, sql.ErrNoRows) {
		return provider, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return provider, fmt.Errorf("failed to match provider (%s): %w", model.EntityName, err)
	}

	return provider, nil
}
