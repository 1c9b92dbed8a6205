package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/benefind/internal/eligibility"
	"github.com/jonathan/benefind/internal/geocode"
	"github.com/jonathan/benefind/internal/speech"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *geocode.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	var mismatch *geocode.MismatchError
	if errors.As(err, &mismatch) {
		return http.StatusBadRequest
	}
	var unavailable *geocode.UnavailableError
	if errors.As(err, &unavailable) {
		return http.StatusBadGateway
	}
	var synthErr *speech.SynthesisError
	if errors.As(err, &synthErr) {
		return http.StatusBadGateway
	}

	var badState *eligibility.InvalidStateError
	var badSize *eligibility.InvalidHouseholdSizeError
	var badAmount *eligibility.InvalidAmountError
	if errors.As(err, &badState) || errors.As(err, &badSize) || errors.As(err, &badAmount) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
