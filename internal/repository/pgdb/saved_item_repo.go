package pgdb

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/voicecart/search-backend/internal/domain"
	"github.com/voicecart/search-backend/internal/repository/pgdb/converter"
	"github.com/voicecart/search-backend/pkg/e"
)

const savedItemColumns = `
	id, owner_id, result_id, query_id, title, product_url,
	image_url, price_cents, currency, source, created_at`

// SavedItemRepo реализует репозиторий сохранённых товаров поверх PostgreSQL.
type SavedItemRepo struct {
	pool *pgxpool.Pool
	conv converter.SavedItemConverter
}

func NewSavedItemRepo(pool *pgxpool.Pool, conv converter.SavedItemConverter) *SavedItemRepo {
	return &SavedItemRepo{
		pool: pool,
		conv: conv,
	}
}

// Save идемпотентно сохраняет товар: повторное сохранение того же результата
// тем же пользователем возвращает существующую запись.
func (s *SavedItemRepo) Save(ctx context.Context, item *domain.SavedItem) (*domain.SavedItem, error) {
	model := s.conv.ToModel(item)
	sql := `
		INSERT INTO saved_items (
			id, owner_id, result_id, query_id, title, product_url,
			image_url, price_cents, currency, source
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (owner_id, result_id)
		DO UPDATE SET owner_id = EXCLUDED.owner_id
		RETURNING ` + savedItemColumns

	stored, err := scanSavedItem(s.pool.QueryRow(ctx, sql,
		model.ID, model.OwnerID, model.ResultID, model.QueryID, model.Title, model.ProductURL,
		model.ImageURL, model.PriceCents, model.Currency, model.Source,
	))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(stored), nil
}

func (s *SavedItemRepo) GetByID(ctx context.Context, id string) (*domain.SavedItem, error) {
	sql := `SELECT ` + savedItemColumns + ` FROM saved_items WHERE id = $1`

	model, err := scanSavedItem(s.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrSavedItemNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToEntity(model), nil
}

// ListByOwner возвращает сохранённые товары пользователя, новые первыми.
func (s *SavedItemRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]*domain.SavedItem, error) {
	sql := `SELECT ` + savedItemColumns + `
		FROM saved_items
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, sql, ownerID, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []*converter.SavedItemModel
	for rows.Next() {
		model, err := scanSavedItem(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s.conv.ToArrEntity(models), nil
}

func (s *SavedItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM saved_items WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrSavedItemNotFound)
	}

	return nil
}

func scanSavedItem(row pgx.Row) (*converter.SavedItemModel, error) {
	var model converter.SavedItemModel
	if err := row.Scan(
		&model.ID, &model.OwnerID, &model.ResultID, &model.QueryID, &model.Title, &model.ProductURL,
		&model.ImageURL, &model.PriceCents, &model.Currency, &model.Source, &model.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &model, nil
}
