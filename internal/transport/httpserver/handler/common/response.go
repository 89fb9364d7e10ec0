package common

import (
	"encoding/json"
	"net/http"

	"finance-tracker-go/internal/domain/validation"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

const invalidDataMessage = "The given data was invalid."

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeFieldsError writes the field messages carried by err. It reports false
// when err carries none.
func writeFieldsError(w http.ResponseWriter, status int, code string, err error) bool {
	fields, ok := validation.FieldsOf(err)
	if !ok {
		return false
	}
	writeJSON(w, status, errorEnvelope{Error: errorBody{
		Code:    code,
		Message: invalidDataMessage,
		Fields:  fields,
	}})
	return true
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	writeError(w, status, code, message)
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeJSON(w, status, payload)
}

func DecodeJSON(r *http.Request, dst interface{}) error {
	return decodeJSON(r, dst)
}

// WriteValidationError answers 422 with the rejected fields.
func WriteValidationError(w http.ResponseWriter, err error) bool {
	return writeFieldsError(w, http.StatusUnprocessableEntity, "validation_failed", err)
}

// WriteConflict answers 409 with the rejected fields.
func WriteConflict(w http.ResponseWriter, code string, err error) bool {
	return writeFieldsError(w, http.StatusConflict, code, err)
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
