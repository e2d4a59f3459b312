package service

import "errors"

var (
	ErrInvalidAddress    = errors.New("invalid wallet address")
	ErrInvalidForecastId = errors.New("invalid forecast id")
	ErrForecastNotFound  = errors.New("forecast not found")
	ErrInsufficientStake = errors.New("insufficient stake level")
)
