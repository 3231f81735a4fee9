package domain

import "errors"

var (
	ErrValidation = errors.New("input does not match the current step")
	ErrResolution = errors.New("photo reference could not be resolved")
	ErrStore      = errors.New("report could not be stored")
)
