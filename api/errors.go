package api

import (
	"errors"
	"net/http"

	"github.com/alwitt/herbtrace/models"
)

// failureMessages client messages of a route's failure classes
type failureMessages struct {
	// absent reported when the record does not exist
	absent string
	// failed reported for every other non-validation failure
	failed string
}

/*
statusForError select the HTTP response status for a failed operation. Document store and
encoding failures are always server errors, even when they were joined with a missing record.

	@param err error - the failure
	@param absentStatus int - status reported when the record does not exist on this route
	@return HTTP status
*/
func statusForError(err error, absentStatus int) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrStore), errors.Is(err, models.ErrEncoding):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrNotFound):
		return absentStatus
	default:
		return http.StatusInternalServerError
	}
}

/*
clientMessage select the message returned to the client for a failed operation. Validation
failures carry their own message.

	@param err error - the failure
	@param status int - selected response status
	@param messages failureMessages - route specific messages
	@return response message
*/
func clientMessage(err error, status int, messages failureMessages) string {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	if status == http.StatusNotFound {
		return messages.absent
	}
	return messages.failed
}
