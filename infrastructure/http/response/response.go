package response

import (
	"encoding/json"
	"net/http"

	"github.com/verdemed/verdemed/pkg/apperror"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string               `json:"code"`
	Message string               `json:"message"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// WriteError maps any error to the wire shape {"error":{code,message,errors?}}.
// Unrecognized errors surface as INTERNAL_SERVER_ERROR without leaking detail.
func WriteError(w http.ResponseWriter, err error) {
	appErr := apperror.Map(err)

	WriteJSON(w, appErr.Status, errorEnvelope{
		Error: errorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Errors:  appErr.Errors,
		},
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, apperror.NewAuthentication(message))
}

func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, apperror.NewAuthorization(message))
}
