package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Malformed or unparseable request bodies are a 400 here, not huma's
// default 422.
func init() {
	newError := huma.NewError

	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}

		return newError(status, message, errs...)
	}
}
