package services

import "errors"

// Domain errors. Controllers translate these to HTTP status codes with
// errors.Is; anything else is a 500.
var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrNoValidItems  = errors.New("no valid items in order")
	ErrInvalidStatus = errors.New("invalid status")
	ErrForbidden     = errors.New("forbidden")
	ErrOrderNotFound = errors.New("order not found")
	ErrPersistence   = errors.New("order could not be saved")
)
