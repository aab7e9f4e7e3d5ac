package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
	ErrStatusBadGateway     = http.StatusBadGateway
)

var (
	ErrInternalServer   = errors.New("Internal server error")
	ErrClient           = errors.New("Bad request")
	ErrNotFound         = errors.New("Resource not found")
	ErrProductNotFound  = errors.New("Product not found")
	ErrConflict         = errors.New("Conflicting record found")
	ErrSearchUnderlying = errors.New("Search backend unavailable")
	ErrMissingFields    = errors.New("Please provide all required fields: productId, userName, rating, comment")
	ErrInvalidRating    = errors.New("Rating must be an integer between 1 and 5")
	ErrCommentTooLong   = errors.New("Review comment must be at most 500 characters")
)

var errorMap = map[error]int{
	ErrInternalServer:   ErrStatusInternalServer,
	ErrClient:           ErrStatusClient,
	ErrNotFound:         ErrStatusNotFound,
	ErrProductNotFound:  ErrStatusNotFound,
	ErrConflict:         ErrStatusConflict,
	ErrSearchUnderlying: ErrStatusBadGateway,
	ErrMissingFields:    ErrStatusClient,
	ErrInvalidRating:    ErrStatusClient,
	ErrCommentTooLong:   ErrStatusClient,
}

func GetErrorStatusCode(err error) int {
	errStatusCode, ok := errorMap[err]
	if !ok {
		errStatusCode = errorMap[ErrInternalServer]
	}
	return errStatusCode
}
