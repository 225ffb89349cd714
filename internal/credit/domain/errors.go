package domain

import "errors"

var (
	ErrConsentRequired = errors.New("consent required")
	ErrScoreRequired   = errors.New("credit assessment required")
	ErrOfferNotFound   = errors.New("loan offer not found")
)
