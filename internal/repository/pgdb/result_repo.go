package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
	"github.com/voicecart/search-backend/internal/domain"
	"github.com/voicecart/search-backend/internal/repository/pgdb/converter"
	"github.com/voicecart/search-backend/internal/usecase"
	"github.com/voicecart/search-backend/pkg/e"
	"github.com/voicecart/search-backend/pkg/tr"
)

const resultColumns = `
	id, query_id, title, product_url, image_url, image_object_key,
	description, rating, reviews_count, price_cents, currency,
	availability, source, search_rank, system_rank, created_at`

// ResultRepo реализует репозиторий результатов поиска поверх PostgreSQL.
type ResultRepo struct {
	pool *pgxpool.Pool
	conv converter.ResultConverter
}

func NewResultRepo(pool *pgxpool.Pool, conv converter.ResultConverter) *ResultRepo {
	return &ResultRepo{
		pool: pool,
		conv: conv,
	}
}

// UpsertBatch идемпотентно кладёт батч результатов по натуральному ключу
// (query_id, product_url): повторная загрузка того же URL обновляет строку
// на месте, не создавая дубликата. Единственный путь записи в таблицу.
func (r *ResultRepo) UpsertBatch(ctx context.Context, queryID string, results []*domain.Result) (int64, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	sql := `
		INSERT INTO results (
			id, query_id, title, product_url, image_url,
			description, rating, reviews_count, price_cents, currency,
			availability, source, search_rank, system_rank
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (query_id, product_url)
		DO UPDATE SET
			title = EXCLUDED.title,
			image_url = EXCLUDED.image_url,
			description = EXCLUDED.description,
			rating = EXCLUDED.rating,
			reviews_count = EXCLUDED.reviews_count,
			price_cents = EXCLUDED.price_cents,
			currency = EXCLUDED.currency,
			availability = EXCLUDED.availability,
			source = EXCLUDED.source,
			search_rank = EXCLUDED.search_rank,
			system_rank = EXCLUDED.system_rank,
			created_at = NOW()
	`

	var touched int64
	for _, result := range results {
		model := r.conv.ToModel(result)
		tag, err := tx.Exec(ctx, sql,
			model.ID, model.QueryID, model.Title, model.ProductURL, model.ImageURL,
			model.Description, model.Rating, model.ReviewsCount, model.PriceCents, model.Currency,
			model.Availability, model.Source, model.SearchRank, model.SystemRank,
		)
		if err != nil {
			return 0, e.Wrap(whereami.WhereAmI(), err)
		}
		touched += tag.RowsAffected()
	}

	return touched, nil
}

func (r *ResultRepo) GetByID(ctx context.Context, id string) (*domain.Result, error) {
	sql := `SELECT ` + resultColumns + ` FROM results WHERE id = $1`

	model, err := scanResult(r.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrResultNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(model), nil
}

// ListByQuery возвращает результаты записи поиска по system_rank
// с необязательными клиентскими фильтрами.
func (r *ResultRepo) ListByQuery(ctx context.Context, queryID string, filter *usecase.ResultFilter) ([]*domain.Result, error) {
	conditions := []string{"query_id = $1"}
	args := []any{queryID}

	if filter != nil {
		if filter.MinPriceCents != nil {
			args = append(args, *filter.MinPriceCents)
			conditions = append(conditions, fmt.Sprintf("price_cents >= $%d", len(args)))
		}
		if filter.MaxPriceCents != nil {
			args = append(args, *filter.MaxPriceCents)
			conditions = append(conditions, fmt.Sprintf("price_cents <= $%d", len(args)))
		}
		if filter.MinRating != nil {
			// Товары без рейтинга фильтром по рейтингу исключаются
			args = append(args, *filter.MinRating)
			conditions = append(conditions, fmt.Sprintf("rating IS NOT NULL AND rating >= $%d", len(args)))
		}
		if filter.Source != nil {
			args = append(args, *filter.Source)
			conditions = append(conditions, fmt.Sprintf("source = $%d", len(args)))
		}
	}

	sql := `SELECT ` + resultColumns + `
		FROM results
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY system_rank`

	if filter != nil && filter.Limit > 0 {
		args = append(args, filter.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var models []*converter.ResultModel
	for rows.Next() {
		model, err := scanResult(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToArrEntity(models), nil
}

// UpdateSystemRanks персистит пересчитанный порядок результатов.
func (r *ResultRepo) UpdateSystemRanks(ctx context.Context, queryID string, results []*domain.Result) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	sql := `UPDATE results SET system_rank = $1 WHERE id = $2 AND query_id = $3`

	for _, result := range results {
		if _, err := tx.Exec(ctx, sql, result.SystemRank, result.ID, queryID); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return nil
}

// UpdateImageObjectKey сохраняет ключ зеркальной копии изображения.
func (r *ResultRepo) UpdateImageObjectKey(ctx context.Context, resultID string, objectKey string) error {
	sql := `UPDATE results SET image_object_key = $1 WHERE id = $2`

	if _, err := r.pool.Exec(ctx, sql, objectKey, resultID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteByQuery удаляет все результаты записи поиска; используется только
// каскадом удаления самой записи.
func (r *ResultRepo) DeleteByQuery(ctx context.Context, queryID string) (int64, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM results WHERE query_id = $1`, queryID)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return tag.RowsAffected(), nil
}

func scanResult(row pgx.Row) (*converter.ResultModel, error) {
	var model converter.ResultModel
	if err := row.Scan(
		&model.ID, &model.QueryID, &model.Title, &model.ProductURL, &model.ImageURL, &model.ImageObjectKey,
		&model.Description, &model.Rating, &model.ReviewsCount, &model.PriceCents, &model.Currency,
		&model.Availability, &model.Source, &model.SearchRank, &model.SystemRank, &model.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &model, nil
}
