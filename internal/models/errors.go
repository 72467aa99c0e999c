package models

import "errors"

// Common errors used throughout the application
var (
	ErrRaffleNotFound      = errors.New("raffle not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUnauthorized        = errors.New("unauthorized access")
	ErrInvalidInput        = errors.New("invalid input")
	ErrEmptySelection      = errors.New("no numbers selected")
	ErrReservationExpired  = errors.New("reservation expired")
	ErrInvalidTransition   = errors.New("invalid checkout state transition")
)
