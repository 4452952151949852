package model

import (
	"github.com/google/uuid"
)

// CarMake is a car manufacturer, e.g. "Toyota".
type CarMake struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// CarModel belongs to exactly one make.
type CarModel struct {
	ID        uuid.UUID `json:"id"`
	CarMakeID uuid.UUID `json:"carMakeId"`
	Name      string    `json:"name"`
}

// CarFeature is an independent option, e.g. "Sunroof".
type CarFeature struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
