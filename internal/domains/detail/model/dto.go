package model

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// First car year on record. The Ford Model T started production in 1908.
const MinYear = 1908

// validYear range-checks an optional year. Min/Max cannot be used here:
// they treat a dereferenced 0 as an empty value and skip the check, so
// an explicit year of 0 would slip through a partial update.
func validYear(value interface{}) error {
	year, _ := value.(*int)
	if year == nil {
		return nil
	}
	if maxYear := time.Now().Year(); *year < MinYear || *year > maxYear {
		return fmt.Errorf("must be between %d and %d", MinYear, maxYear)
	}
	return nil
}

// ========================================
// LIST QUERY DTOs
// ========================================

// DetailFilter narrows the list query. Absent or empty id sets mean
// "no constraint", never "match nothing".
type DetailFilter struct {
	YearMin    *int        `json:"yearMin,omitempty"`
	YearMax    *int        `json:"yearMax,omitempty"`
	MakeIDs    []uuid.UUID `json:"makeIds,omitempty"`
	ModelIDs   []uuid.UUID `json:"modelIds,omitempty"`
	FeatureIDs []uuid.UUID `json:"featureIds,omitempty"`
}

// SortInput is one (column, direction) pair. Direction is ASC or DESC.
type SortInput struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
}

// ListDetailsRequest carries filter + sort + page parameters.
// Page and PageSize must both be present for pagination to apply;
// out-of-range values are clamped, never rejected.
type ListDetailsRequest struct {
	Page     *int          `json:"page,omitempty"`
	PageSize *int          `json:"pageSize,omitempty"`
	Filter   *DetailFilter `json:"filter,omitempty"`
	Sort     []SortInput   `json:"sort,omitempty"`
}

// ListDetailsResponse is the page envelope. TotalCount reflects the
// full matching set, not the page size.
type ListDetailsResponse struct {
	Items      []CarDetail `json:"items"`
	TotalCount int         `json:"totalCount"`
}

// ========================================
// MUTATION DTOs
// ========================================

type CreateDetailRequest struct {
	CarMakeID  uuid.UUID   `json:"carMakeId"`
	CarModelID uuid.UUID   `json:"carModelId"`
	Year       int         `json:"year"`
	FeatureIDs []uuid.UUID `json:"featureIds,omitempty"`
}

func (r CreateDetailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CarMakeID,
			validation.Required.Error("carMakeId is required"),
		),
		validation.Field(&r.CarModelID,
			validation.Required.Error("carModelId is required"),
		),
		validation.Field(&r.Year,
			validation.Required.Error("year is required"),
			validation.Min(MinYear),
			validation.Max(time.Now().Year()),
		),
	)
}

// UpdateDetailRequest is a partial update. Nil scalar fields are left
// untouched. FeatureIDs is a full replacement set: nil means "no change",
// an empty list clears all features.
type UpdateDetailRequest struct {
	CarMakeID  *uuid.UUID  `json:"carMakeId,omitempty"`
	CarModelID *uuid.UUID  `json:"carModelId,omitempty"`
	Year       *int        `json:"year,omitempty"`
	FeatureIDs []uuid.UUID `json:"featureIds,omitempty"`
}

func (r UpdateDetailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Year, validation.By(validYear)),
	)
}

// BatchUpdateItem is one detail's update within a batch.
type BatchUpdateItem struct {
	ID         uuid.UUID   `json:"id"`
	CarMakeID  *uuid.UUID  `json:"carMakeId,omitempty"`
	CarModelID *uuid.UUID  `json:"carModelId,omitempty"`
	Year       *int        `json:"year,omitempty"`
	FeatureIDs []uuid.UUID `json:"featureIds,omitempty"`
}

func (r BatchUpdateItem) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID,
			validation.Required.Error("id is required"),
		),
		validation.Field(&r.Year, validation.By(validYear)),
	)
}

// BatchUpdateRequest updates multiple details in a single transaction.
type BatchUpdateRequest struct {
	Items []BatchUpdateItem `json:"items"`
}

func (r BatchUpdateRequest) Validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Items,
			validation.Required.Error("items must not be empty"),
		),
	); err != nil {
		return err
	}
	for _, item := range r.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type DeleteDetailsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

func (r DeleteDetailsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IDs,
			validation.Required.Error("ids must not be empty"),
		),
	)
}
