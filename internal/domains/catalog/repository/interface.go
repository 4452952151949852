package repository

import (
	"context"

	"github.com/google/uuid"

	"car-inventory-backend/internal/domains/catalog/model"
)

// Repository provides read access to the reference entities.
// The catalog is read-mostly; list results are cached.
type Repository interface {
	ListMakes(ctx context.Context) ([]model.CarMake, error)
	ListModels(ctx context.Context) ([]model.CarModel, error)
	ListFeatures(ctx context.Context) ([]model.CarFeature, error)

	// GetModelByID resolves a model, used for make/model consistency checks.
	GetModelByID(ctx context.Context, id uuid.UUID) (*model.CarModel, error)

	// InvalidateLists drops the cached list results (called by the seeder).
	InvalidateLists(ctx context.Context) error
}
