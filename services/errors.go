package services

import (
	"errors"

	"github.com/murali55525/erode-local-sub000/pricing"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrEmptySelection     = errors.New("no items selected")
	ErrIncompleteShipping = errors.New("shipping address and contact are required")
	ErrPaymentFailed      = errors.New("payment verification failed")

	// Pricing sentinels re-exported so handlers match errors in one place.
	ErrInvalidCoupon      = pricing.ErrInvalidCoupon
	ErrInsufficientPoints = pricing.ErrInsufficientPoints
)
