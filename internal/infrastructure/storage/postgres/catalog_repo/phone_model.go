package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/phonemodel"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres"
)

const phoneModelsTable = "phone_models"

// PhoneModelRepo implements phonemodel.Repository.
type PhoneModelRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewPhoneModelRepo creates a new phone model repository.
func NewPhoneModelRepo(txManager *postgres.TxManager) *PhoneModelRepo {
	return &PhoneModelRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a new model. Model names are unique.
func (r *PhoneModelRepo) Create(ctx context.Context, m *phonemodel.PhoneModel) error {
	q := r.builder.Insert(phoneModelsTable).
		Columns("id", "model_name", "created_at").
		Values(m.ID, m.Name, m.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("phone model", "modelName", m.Name)
		}
		return fmt.Errorf("insert phone model: %w", err)
	}

	return nil
}

// GetByID returns a model by id, or nil when absent.
func (r *PhoneModelRepo) GetByID(ctx context.Context, modelID id.ID) (*phonemodel.PhoneModel, error) {
	q := r.builder.Select("id", "model_name", "created_at").
		From(phoneModelsTable).
		Where(squirrel.Eq{"id": modelID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var m phonemodel.PhoneModel
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &m, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get phone model: %w", err)
	}

	return &m, nil
}

// GetByIDs returns the models found for the given ids, keyed by id.
func (r *PhoneModelRepo) GetByIDs(ctx context.Context, modelIDs []id.ID) (map[id.ID]phonemodel.PhoneModel, error) {
	if len(modelIDs) == 0 {
		return map[id.ID]phonemodel.PhoneModel{}, nil
	}

	q := r.builder.Select("id", "model_name", "created_at").
		From(phoneModelsTable).
		Where(squirrel.Eq{"id": modelIDs})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var models []phonemodel.PhoneModel
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &models, sql, args...); err != nil {
		return nil, fmt.Errorf("select phone models: %w", err)
	}

	out := make(map[id.ID]phonemodel.PhoneModel, len(models))
	for _, m := range models {
		out[m.ID] = m
	}
	return out, nil
}

// List returns all models ordered by name.
func (r *PhoneModelRepo) List(ctx context.Context) ([]phonemodel.PhoneModel, error) {
	q := r.builder.Select("id", "model_name", "created_at").
		From(phoneModelsTable).
		OrderBy("model_name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var models []phonemodel.PhoneModel
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &models, sql, args...); err != nil {
		return nil, fmt.Errorf("select phone models: %w", err)
	}

	return models, nil
}

// Ensure interface compliance.
var _ phonemodel.Repository = (*PhoneModelRepo)(nil)
