package model

import (
	"github.com/google/uuid"

	catalog "car-inventory-backend/internal/domains/catalog/model"
)

// CarDetail is a single car record: make + model + year + features.
// Responses are always hydrated with the related entities so callers
// never need follow-up lookups.
type CarDetail struct {
	ID         uuid.UUID `json:"id"`
	CarMakeID  uuid.UUID `json:"carMakeId"`
	CarModelID uuid.UUID `json:"carModelId"`
	Year       int       `json:"year"`

	CarMake  *catalog.CarMake     `json:"carMake,omitempty"`
	CarModel *catalog.CarModel    `json:"carModel,omitempty"`
	Features []catalog.CarFeature `json:"features"`
}
