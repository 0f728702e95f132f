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
	"github.com/voicecart/search-backend/pkg/tr"
)

const queryColumns = `
	id, owner_id, search_text,
	min_price_cents, max_price_cents, min_rating, target_retailers,
	status, failure_reason, created_at, updated_at`

// QueryRepo реализует репозиторий записей поиска поверх PostgreSQL.
type QueryRepo struct {
	pool *pgxpool.Pool
	conv converter.QueryConverter
}

func NewQueryRepo(pool *pgxpool.Pool, conv converter.QueryConverter) *QueryRepo {
	return &QueryRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет запись поиска в статусе pending и шлёт NOTIFY,
// чтобы воркер диспетчеризации проснулся без опроса таблицы.
func (q *QueryRepo) Create(ctx context.Context, query *domain.Query) (*domain.Query, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := q.conv.ToModel(query)
	sql := `
		INSERT INTO queries (
			id, owner_id, search_text,
			min_price_cents, max_price_cents, min_rating, target_retailers,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING status, created_at, updated_at;
	`

	if err := tx.QueryRow(ctx, sql,
		model.ID,
		model.OwnerID,
		model.SearchText,
		model.MinPriceCents,
		model.MaxPriceCents,
		model.MinRating,
		model.TargetRetailers,
		model.Status,
	).Scan(&model.Status, &model.CreatedAt, &model.UpdatedAt); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, "NOTIFY search_pending;"); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return q.conv.ToEntity(model), nil
}

func (q *QueryRepo) GetByID(ctx context.Context, id string) (*domain.Query, error) {
	sql := `SELECT ` + queryColumns + ` FROM queries WHERE id = $1`

	model, err := scanQuery(q.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrQueryNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return q.conv.ToEntity(model), nil
}

// ListByOwner возвращает записи пользователя, новые первыми.
func (q *QueryRepo) ListByOwner(ctx context.Context, ownerID string, status *domain.QueryStatus, limit int) ([]*domain.Query, error) {
	sql := `SELECT ` + queryColumns + `
		FROM queries
		WHERE owner_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3`

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := q.pool.Query(ctx, sql, ownerID, statusArg, limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models, err := collectQueries(rows)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return q.conv.ToArrEntity(models), nil
}

// ClaimPending атомарно переводит пачку pending-записей в searching.
// FOR UPDATE SKIP LOCKED гарантирует, что конкурирующие воркеры не заберут
// одну и ту же запись: диспетчеризация каждой записи происходит ровно один раз.
func (q *QueryRepo) ClaimPending(ctx context.Context, limit int) ([]*domain.Query, error) {
	tx, err := q.pool.Begin(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	sql := `
		UPDATE queries
		SET status = $1, updated_at = NOW()
		WHERE id IN (
			SELECT id FROM queries
			WHERE status = $2
			ORDER BY created_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + queryColumns

	rows, err := tx.Query(ctx, sql, string(domain.QuerySearching), string(domain.QueryPending), limit)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	models, err := collectQueries(rows)
	rows.Close()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return q.conv.ToArrEntity(models), nil
}

// UpdateStatus выполняет охраняемый переход from -> to.
// Условие status = from в WHERE делает переход атомарным: запись, уже ушедшую
// дальше по жизненному циклу, повторно перевести нельзя.
func (q *QueryRepo) UpdateStatus(ctx context.Context, id string, from, to domain.QueryStatus, failureReason *string) error {
	if !from.CanTransitionTo(to) {
		return e.Wrap(whereami.WhereAmI(), e.ErrInvalidStateTransition)
	}

	sql := `
		UPDATE queries
		SET status = $1, failure_reason = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	result, err := q.pool.Exec(ctx, sql, string(to), failureReason, id, string(from))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := q.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM queries WHERE id = $1)`, id).Scan(&exists); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
		if !exists {
			return e.Wrap(whereami.WhereAmI(), e.ErrQueryNotFound)
		}
		return e.Wrap(whereami.WhereAmI(), e.ErrInvalidStateTransition)
	}

	return nil
}

// ResetForRefresh возвращает терминальную запись в pending и будит воркер.
func (q *QueryRepo) ResetForRefresh(ctx context.Context, id string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	sql := `
		UPDATE queries
		SET status = $1, failure_reason = NULL, updated_at = NOW()
		WHERE id = $2 AND status IN ($3, $4)
	`

	result, err := tx.Exec(ctx, sql,
		string(domain.QueryPending),
		id,
		string(domain.QueryCompleted),
		string(domain.QueryFailed),
	)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrQueryNotTerminal)
	}

	if _, err := tx.Exec(ctx, "NOTIFY search_pending;"); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (q *QueryRepo) Delete(ctx context.Context, id string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM queries WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrQueryNotFound)
	}

	return nil
}

func scanQuery(row pgx.Row) (*converter.QueryModel, error) {
	var model converter.QueryModel
	if err := row.Scan(
		&model.ID, &model.OwnerID, &model.SearchText,
		&model.MinPriceCents, &model.MaxPriceCents, &model.MinRating, &model.TargetRetailers,
		&model.Status, &model.FailureReason, &model.CreatedAt, &model.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &model, nil
}

func collectQueries(rows pgx.Rows) ([]*converter.QueryModel, error) {
	var models []*converter.QueryModel
	for rows.Next() {
		model, err := scanQuery(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return models, nil
}
