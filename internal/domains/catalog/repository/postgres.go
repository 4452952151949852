package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"car-inventory-backend/internal/domains/catalog/model"
	"car-inventory-backend/pkg/cache"
	"car-inventory-backend/pkg/logger"
)

const (
	makesCacheKey    = "catalog:makes"
	modelsCacheKey   = "catalog:models"
	featuresCacheKey = "catalog:features"
	listCacheTTL     = 10 * time.Minute
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

func (r *postgresRepository) ListMakes(ctx context.Context) ([]model.CarMake, error) {
	var cached []model.CarMake
	if found, _ := r.cache.Get(ctx, makesCacheKey, &cached); found {
		return cached, nil
	}

	query := `SELECT id, name FROM car_makes ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list car makes: %w", err)
	}
	defer rows.Close()

	makes := []model.CarMake{}
	for rows.Next() {
		var m model.CarMake
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan car make: %w", err)
		}
		makes = append(makes, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read car makes: %w", err)
	}

	// Cache failures are non-fatal; the list was already fetched.
	if err := r.cache.Set(ctx, makesCacheKey, makes, listCacheTTL); err != nil {
		logger.Error("failed to cache car makes", err)
	}

	return makes, nil
}

func (r *postgresRepository) ListModels(ctx context.Context) ([]model.CarModel, error) {
	var cached []model.CarModel
	if found, _ := r.cache.Get(ctx, modelsCacheKey, &cached); found {
		return cached, nil
	}

	query := `SELECT id, car_make_id, name FROM car_models ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list car models: %w", err)
	}
	defer rows.Close()

	models := []model.CarModel{}
	for rows.Next() {
		var m model.CarModel
		if err := rows.Scan(&m.ID, &m.CarMakeID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan car model: %w", err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read car models: %w", err)
	}

	if err := r.cache.Set(ctx, modelsCacheKey, models, listCacheTTL); err != nil {
		logger.Error("failed to cache car models", err)
	}

	return models, nil
}

func (r *postgresRepository) ListFeatures(ctx context.Context) ([]model.CarFeature, error) {
	var cached []model.CarFeature
	if found, _ := r.cache.Get(ctx, featuresCacheKey, &cached); found {
		return cached, nil
	}

	query := `SELECT id, name FROM car_features ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list car features: %w", err)
	}
	defer rows.Close()

	features := []model.CarFeature{}
	for rows.Next() {
		var f model.CarFeature
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, fmt.Errorf("failed to scan car feature: %w", err)
		}
		features = append(features, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read car features: %w", err)
	}

	if err := r.cache.Set(ctx, featuresCacheKey, features, listCacheTTL); err != nil {
		logger.Error("failed to cache car features", err)
	}

	return features, nil
}

func (r *postgresRepository) GetModelByID(ctx context.Context, id uuid.UUID) (*model.CarModel, error) {
	query := `SELECT id, car_make_id, name FROM car_models WHERE id = $1`

	var m model.CarModel
	err := r.pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.CarMakeID, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to get car model: %w", err)
	}
	return &m, nil
}

func (r *postgresRepository) InvalidateLists(ctx context.Context) error {
	return r.cache.Delete(ctx, makesCacheKey, modelsCacheKey, featuresCacheKey)
}
