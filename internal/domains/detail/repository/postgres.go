package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	catalog "car-inventory-backend/internal/domains/catalog/model"
	"car-inventory-backend/internal/domains/detail/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the fetch
// helpers work inside and outside transactions.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const detailSelect = `
	SELECT d.id, d.car_make_id, d.car_model_id, d.year,
	       mk.id, mk.name,
	       md.id, md.car_make_id, md.name
	FROM car_details d
	JOIN car_makes mk ON mk.id = d.car_make_id
	JOIN car_models md ON md.id = d.car_model_id
`

func scanDetail(row pgx.Row) (*model.CarDetail, error) {
	d := &model.CarDetail{
		CarMake:  &catalog.CarMake{},
		CarModel: &catalog.CarModel{},
		Features: []catalog.CarFeature{},
	}
	err := row.Scan(
		&d.ID, &d.CarMakeID, &d.CarModelID, &d.Year,
		&d.CarMake.ID, &d.CarMake.Name,
		&d.CarModel.ID, &d.CarModel.CarMakeID, &d.CarModel.Name,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// =====================================================
// LIST (count + bounded fetch)
// =====================================================

func (r *postgresRepository) List(ctx context.Context, req model.ListDetailsRequest) (*model.ListDetailsResponse, error) {
	clauses, args := buildFilter(req.Filter)
	where := whereClause(clauses)

	// Count uses the same predicate but ignores ordering and paging.
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM car_details d %s`, where)

	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to count car details: %w", err)
	}

	fetchQuery := detailSelect + " " + where
	if orderBy := buildOrderBy(req.Sort); orderBy != "" {
		fetchQuery += " " + orderBy
	}

	fetchArgs := args
	if offset, limit, paged := clampPage(req.Page, req.PageSize); paged {
		fetchArgs = append(fetchArgs, limit, offset)
		fetchQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(fetchArgs)-1, len(fetchArgs))
	}

	rows, err := r.pool.Query(ctx, fetchQuery, fetchArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list car details: %w", err)
	}
	defer rows.Close()

	items := []model.CarDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan car detail: %w", err)
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read car details: %w", err)
	}

	if err := hydrateFeatures(ctx, r.pool, items); err != nil {
		return nil, err
	}

	return &model.ListDetailsResponse{Items: items, TotalCount: totalCount}, nil
}

// hydrateFeatures attaches each detail's feature list in one query.
func hydrateFeatures(ctx context.Context, q querier, details []model.CarDetail) error {
	if len(details) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(details))
	index := make(map[uuid.UUID]int, len(details))
	for i := range details {
		ids[i] = details[i].ID
		index[details[i].ID] = i
	}

	query := `
		SELECT df.car_detail_id, f.id, f.name
		FROM car_detail_features df
		JOIN car_features f ON f.id = df.car_feature_id
		WHERE df.car_detail_id = ANY($1)
		ORDER BY f.name ASC
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to load detail features: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var detailID uuid.UUID
		var f catalog.CarFeature
		if err := rows.Scan(&detailID, &f.ID, &f.Name); err != nil {
			return fmt.Errorf("failed to scan detail feature: %w", err)
		}
		if i, ok := index[detailID]; ok {
			details[i].Features = append(details[i].Features, f)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read detail features: %w", err)
	}
	return nil
}

func fetchDetail(ctx context.Context, q querier, id uuid.UUID) (*model.CarDetail, error) {
	d, err := scanDetail(q.QueryRow(ctx, detailSelect+" WHERE d.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDetailNotFound
		}
		return nil, fmt.Errorf("failed to get car detail: %w", err)
	}

	single := []model.CarDetail{*d}
	if err := hydrateFeatures(ctx, q, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CarDetail, error) {
	return fetchDetail(ctx, r.pool, id)
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, req model.CreateDetailRequest) (*model.CarDetail, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	id := uuid.New()

	query := `INSERT INTO car_details (id, car_make_id, car_model_id, year) VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, query, id, req.CarMakeID, req.CarModelID, req.Year); err != nil {
		return nil, translateError(err, "failed to create car detail")
	}

	if err := insertFeatures(ctx, tx, id, req.FeatureIDs); err != nil {
		return nil, err
	}

	detail, err := fetchDetail(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return detail, nil
}

// =====================================================
// UPDATE (feature-set reconciliation)
// =====================================================

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, req model.UpdateDetailRequest) (*model.CarDetail, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	item := model.BatchUpdateItem{
		ID:         id,
		CarMakeID:  req.CarMakeID,
		CarModelID: req.CarModelID,
		Year:       req.Year,
		FeatureIDs: req.FeatureIDs,
	}
	detail, err := reconcileDetail(ctx, tx, item)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return detail, nil
}

func (r *postgresRepository) UpdateBatch(ctx context.Context, items []model.BatchUpdateItem) ([]model.CarDetail, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	results := make([]model.CarDetail, 0, len(items))
	for _, item := range items {
		detail, err := reconcileDetail(ctx, tx, item)
		if err != nil {
			// one failed item aborts the whole batch
			return nil, err
		}
		results = append(results, *detail)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return results, nil
}

// reconcileDetail applies one detail's scalar patch and feature-set
// delta inside the caller's transaction. Order: lock row, compute
// delta, delete removed joins, insert added joins, update scalars.
func reconcileDetail(ctx context.Context, tx pgx.Tx, item model.BatchUpdateItem) (*model.CarDetail, error) {
	var lockedID uuid.UUID
	err := tx.QueryRow(ctx,
		`SELECT id FROM car_details WHERE id = $1 FOR UPDATE`,
		item.ID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrDetailNotFound
		}
		return nil, fmt.Errorf("failed to lock car detail: %w", err)
	}

	if item.FeatureIDs != nil {
		current, err := currentFeatureIDs(ctx, tx, item.ID)
		if err != nil {
			return nil, err
		}

		toAdd, toRemove := featureDiff(current, item.FeatureIDs)

		if len(toRemove) > 0 {
			query := `DELETE FROM car_detail_features WHERE car_detail_id = $1 AND car_feature_id = ANY($2)`
			if _, err := tx.Exec(ctx, query, item.ID, toRemove); err != nil {
				return nil, translateError(err, "failed to remove detail features")
			}
		}

		if err := insertFeatures(ctx, tx, item.ID, toAdd); err != nil {
			return nil, err
		}
	}

	if err := updateScalars(ctx, tx, item); err != nil {
		return nil, err
	}

	return fetchDetail(ctx, tx, item.ID)
}

func currentFeatureIDs(ctx context.Context, tx pgx.Tx, detailID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx,
		`SELECT car_feature_id FROM car_detail_features WHERE car_detail_id = $1 FOR UPDATE`,
		detailID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current features: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan feature id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read current features: %w", err)
	}
	return ids, nil
}

func insertFeatures(ctx context.Context, tx pgx.Tx, detailID uuid.UUID, featureIDs []uuid.UUID) error {
	query := `
		INSERT INTO car_detail_features (car_detail_id, car_feature_id)
		VALUES ($1, $2)
		ON CONFLICT (car_detail_id, car_feature_id) DO NOTHING
	`
	for _, featureID := range featureIDs {
		if _, err := tx.Exec(ctx, query, detailID, featureID); err != nil {
			return translateError(err, "failed to add detail feature")
		}
	}
	return nil
}

// updateScalars builds a dynamic SET clause from the non-nil fields.
func updateScalars(ctx context.Context, tx pgx.Tx, item model.BatchUpdateItem) error {
	setClauses := []string{}
	args := []interface{}{item.ID}
	idx := 2

	if item.CarMakeID != nil {
		setClauses = append(setClauses, fmt.Sprintf("car_make_id=$%d", idx))
		args = append(args, *item.CarMakeID)
		idx++
	}
	if item.CarModelID != nil {
		setClauses = append(setClauses, fmt.Sprintf("car_model_id=$%d", idx))
		args = append(args, *item.CarModelID)
		idx++
	}
	if item.Year != nil {
		setClauses = append(setClauses, fmt.Sprintf("year=$%d", idx))
		args = append(args, *item.Year)
		idx++
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE car_details SET %s WHERE id=$1`, strings.Join(setClauses, ", "))
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return translateError(err, "failed to update car detail")
	}
	return nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	count, err := r.DeleteMany(ctx, []uuid.UUID{id})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *postgresRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Join rows go first to avoid FK violations on the parent delete.
	if _, err := tx.Exec(ctx,
		`DELETE FROM car_detail_features WHERE car_detail_id = ANY($1)`, ids); err != nil {
		return 0, translateError(err, "failed to delete detail features")
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM car_details WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, translateError(err, "failed to delete car details")
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return int(cmdTag.RowsAffected()), nil
}

// =====================================================
// ERROR TRANSLATION
// =====================================================

// translateError maps storage errors into the domain taxonomy.
// 23503 = foreign_key_violation, 23505 = unique_violation.
func translateError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return model.NewConstraintViolationError(pgErr.ConstraintName)
		case "23505":
			return model.NewConstraintViolationError(pgErr.ConstraintName)
		case "23514":
			// CHECK constraint. The DTO layer should have caught this,
			// but a database rejection is still invalid input, not a
			// transient failure.
			return model.NewValidationError(fmt.Errorf("check constraint %q violated", pgErr.ConstraintName))
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
