package webutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dst, rejecting unknown fields,
// trailing data and empty bodies. Failures come back as validation errors.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrValidation("Request body is required")
		}
		return ErrValidationWrap("Invalid request payload: "+err.Error(), err)
	}
	if decoder.More() {
		return ErrValidation("Invalid request payload: unexpected data after JSON object")
	}
	return nil
}
