package model

import "errors"

var (
	ErrModelNotFound = errors.New("car model not found")
)
