package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "cafebook/pkg/errors"
)

// DecodeJSON decodes the request body into dst, rejecting unknown fields and
// trailing data. Type mismatches are reported as validation errors.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperrors.InvalidInput("Request body is required")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.InvalidInput("Request body is required")
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return apperrors.Validation("Request body failed validation", map[string]any{
				typeErr.Field: "must be of type " + typeErr.Type.String(),
			})
		}
		return apperrors.InvalidInput("Invalid request body: " + err.Error())
	}
	if dec.More() {
		return apperrors.InvalidInput("Request body must contain a single JSON object")
	}
	return nil
}
