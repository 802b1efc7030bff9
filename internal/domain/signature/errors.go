package signature

import "errors"

var (
	ErrInvalidSignatureType = errors.New("invalid signature type")
	ErrUnauthorizedType     = errors.New("role may not create this signature type")
	ErrIncompleteEmployees  = errors.New("employee signatures are not yet 100% complete")
	ErrSignatureExists      = errors.New("an active signature of this type already exists for the period")
)
