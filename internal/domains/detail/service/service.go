package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	catalogModel "car-inventory-backend/internal/domains/catalog/model"
	catalogRepo "car-inventory-backend/internal/domains/catalog/repository"
	"car-inventory-backend/internal/domains/detail/model"
	"car-inventory-backend/internal/domains/detail/repository"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type detailService struct {
	detailRepo  repository.Repository
	catalogRepo catalogRepo.Repository
}

func NewDetailService(
	detailRepo repository.Repository,
	catalogRepo catalogRepo.Repository,
) Service {
	return &detailService{
		detailRepo:  detailRepo,
		catalogRepo: catalogRepo,
	}
}

// =====================================================
// QUERIES
// =====================================================

func (s *detailService) ListDetails(ctx context.Context, req model.ListDetailsRequest) (*model.ListDetailsResponse, error) {
	result, err := s.detailRepo.List(ctx, req)
	if err != nil {
		return nil, translate(err)
	}
	return result, nil
}

func (s *detailService) GetDetail(ctx context.Context, id uuid.UUID) (*model.CarDetail, error) {
	detail, err := s.detailRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return detail, nil
}

// =====================================================
// MUTATIONS
// =====================================================

func (s *detailService) CreateDetail(ctx context.Context, req model.CreateDetailRequest) (*model.CarDetail, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	if err := s.checkModelBelongsToMake(ctx, req.CarMakeID, req.CarModelID); err != nil {
		return nil, err
	}

	detail, err := s.detailRepo.Create(ctx, req)
	if err != nil {
		return nil, translate(err)
	}
	return detail, nil
}

func (s *detailService) UpdateDetail(ctx context.Context, id uuid.UUID, req model.UpdateDetailRequest) (*model.CarDetail, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	if err := s.checkPatchConsistency(ctx, id, req.CarMakeID, req.CarModelID); err != nil {
		return nil, err
	}

	detail, err := s.detailRepo.Update(ctx, id, req)
	if err != nil {
		return nil, translate(err)
	}
	return detail, nil
}

func (s *detailService) UpdateDetails(ctx context.Context, req model.BatchUpdateRequest) ([]model.CarDetail, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	for _, item := range req.Items {
		if err := s.checkPatchConsistency(ctx, item.ID, item.CarMakeID, item.CarModelID); err != nil {
			return nil, err
		}
	}

	details, err := s.detailRepo.UpdateBatch(ctx, req.Items)
	if err != nil {
		return nil, translate(err)
	}
	return details, nil
}

func (s *detailService) DeleteDetail(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.detailRepo.Delete(ctx, id)
	if err != nil {
		return translate(err)
	}
	if !deleted {
		return model.NewDetailNotFoundError()
	}
	return nil
}

func (s *detailService) DeleteDetails(ctx context.Context, req model.DeleteDetailsRequest) (int, error) {
	if err := req.Validate(); err != nil {
		return 0, model.NewValidationError(err)
	}

	// Missing ids are not an error; the count just comes back smaller.
	count, err := s.detailRepo.DeleteMany(ctx, req.IDs)
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}

// =====================================================
// CONSISTENCY CHECKS
// =====================================================

// checkModelBelongsToMake rejects a (make, model) pair where the model's
// parent make differs from the supplied make.
func (s *detailService) checkModelBelongsToMake(ctx context.Context, makeID, modelID uuid.UUID) error {
	carModel, err := s.catalogRepo.GetModelByID(ctx, modelID)
	if err != nil {
		if errors.Is(err, catalogModel.ErrModelNotFound) {
			return model.NewConstraintViolationError("carModelId does not exist")
		}
		return model.NewTransientError(fmt.Errorf("failed to resolve car model: %w", err))
	}

	if carModel.CarMakeID != makeID {
		return model.NewModelMakeMismatchError()
	}
	return nil
}

// checkPatchConsistency resolves the effective (make, model) pair of a
// partial update against the persisted record before checking it.
func (s *detailService) checkPatchConsistency(ctx context.Context, id uuid.UUID, makeID, modelID *uuid.UUID) error {
	if makeID == nil && modelID == nil {
		return nil
	}

	existing, err := s.detailRepo.GetByID(ctx, id)
	if err != nil {
		return translate(err)
	}

	effectiveMake := existing.CarMakeID
	if makeID != nil {
		effectiveMake = *makeID
	}
	effectiveModel := existing.CarModelID
	if modelID != nil {
		effectiveModel = *modelID
	}

	return s.checkModelBelongsToMake(ctx, effectiveMake, effectiveModel)
}

// translate maps repository errors into the domain error type.
func translate(err error) error {
	var derr *model.DetailError
	if errors.As(err, &derr) {
		return derr
	}
	if errors.Is(err, model.ErrDetailNotFound) {
		return model.NewDetailNotFoundError()
	}
	return model.NewTransientError(err)
}
