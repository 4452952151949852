package service

import (
	"context"

	"github.com/google/uuid"

	"car-inventory-backend/internal/domains/detail/model"
)

// Service implements the car-detail query/mutation contract.
type Service interface {
	ListDetails(ctx context.Context, req model.ListDetailsRequest) (*model.ListDetailsResponse, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*model.CarDetail, error)
	CreateDetail(ctx context.Context, req model.CreateDetailRequest) (*model.CarDetail, error)
	UpdateDetail(ctx context.Context, id uuid.UUID, req model.UpdateDetailRequest) (*model.CarDetail, error)
	UpdateDetails(ctx context.Context, req model.BatchUpdateRequest) ([]model.CarDetail, error)
	DeleteDetail(ctx context.Context, id uuid.UUID) error
	DeleteDetails(ctx context.Context, req model.DeleteDetailsRequest) (int, error)
}
