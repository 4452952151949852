package repository

import (
	"context"

	"github.com/google/uuid"

	"car-inventory-backend/internal/domains/detail/model"
)

// Repository is the data access contract for car details.
//
// All write operations are transactional: the feature-set delta and the
// scalar update of a detail commit together or not at all, and batch
// operations commit as a single unit.
type Repository interface {
	// List runs a count + bounded fetch pair with the same filter and
	// returns the page envelope. Items are hydrated with make, model
	// and features.
	List(ctx context.Context, req model.ListDetailsRequest) (*model.ListDetailsResponse, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.CarDetail, error)

	Create(ctx context.Context, req model.CreateDetailRequest) (*model.CarDetail, error)

	// Update reconciles the detail's feature set against the requested
	// full-replacement list (nil = no change) and applies scalar fields.
	Update(ctx context.Context, id uuid.UUID, req model.UpdateDetailRequest) (*model.CarDetail, error)

	// UpdateBatch applies Update semantics per item inside one
	// transaction; any failure aborts the whole batch.
	UpdateBatch(ctx context.Context, items []model.BatchUpdateItem) ([]model.CarDetail, error)

	// Delete removes one detail and its feature associations.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteMany removes the given details and their feature
	// associations in one transaction, returning the number of detail
	// rows actually removed.
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error)
}
