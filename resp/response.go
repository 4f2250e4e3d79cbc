// Package resp renders the uniform success and error envelopes of the API.
//
// Every response leaving the service is one of:
//
//	{"success": true,  "data": ...}
//	{"success": true,  "data": [...], "pagination": {...}}
//	{"success": true,  "message": "..."}
//	{"success": false, "error": {"code": ..., "message": ..., "field": ...}}
package resp

import (
	"encoding/json"
	"net/http"

	"github.com/questlog/quest-service/ecode"
	"github.com/questlog/quest-service/paging"
)

type dataBody struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type listBody struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Pagination paging.Meta `json:"pagination"`
}

type messageBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorBody struct {
	Success bool       `json:"success"`
	Error   *ErrorInfo `json:"error"`
}

// ErrorInfo is the error block of the failure envelope.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Success handles success responses.
func Success(w http.ResponseWriter, data any) {
	WithStatusCode(w, http.StatusOK, data)
}

// WithStatusCode handles success responses with custom status code.
func WithStatusCode(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, dataBody{Success: true, Data: data})
}

// List handles paginated list responses. The pagination block is always
// present on list responses, even for an empty page.
func List(w http.ResponseWriter, data any, meta paging.Meta) {
	writeJSON(w, http.StatusOK, listBody{Success: true, Data: data, Pagination: meta})
}

// Message handles success responses carrying a confirmation message
// instead of data.
func Message(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, messageBody{Success: true, Message: message})
}

// Fail handles failure responses, translating err into the stable error
// envelope. Errors that are not *ecode.Error render as a generic
// internal error with detail suppressed.
func Fail(w http.ResponseWriter, err error) {
	e := ecode.From(err)
	writeJSON(w, e.Status, errorBody{
		Success: false,
		Error: &ErrorInfo{
			Code:    e.Code,
			Message: e.Message,
			Field:   e.Field,
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
