package service

import (
	"context"

	"car-inventory-backend/internal/domains/catalog/model"
	"car-inventory-backend/internal/domains/catalog/repository"
)

type Service interface {
	ListMakes(ctx context.Context) ([]model.CarMake, error)
	ListModels(ctx context.Context) ([]model.CarModel, error)
	ListFeatures(ctx context.Context) ([]model.CarFeature, error)
}

type catalogService struct {
	repo repository.Repository
}

func NewCatalogService(repo repository.Repository) Service {
	return &catalogService{repo: repo}
}

func (s *catalogService) ListMakes(ctx context.Context) ([]model.CarMake, error) {
	return s.repo.ListMakes(ctx)
}

func (s *catalogService) ListModels(ctx context.Context) ([]model.CarModel, error) {
	return s.repo.ListModels(ctx)
}

func (s *catalogService) ListFeatures(ctx context.Context) ([]model.CarFeature, error) {
	return s.repo.ListFeatures(ctx)
}
