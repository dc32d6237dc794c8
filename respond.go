package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// envelope is the uniform response shape: { success, data?, message?, count? }.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// writeData sends a successful envelope with a single resource.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeList sends a successful envelope with a collection and its count.
func writeList(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

// writeError sends a failed envelope with a message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

// respondError maps domain errors onto the envelope with the right status:
// 400 validation / bad state, 401 not-owner, 404 absent, 500 otherwise.
func (a *App) respondError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, errNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errNotOwner):
		writeError(w, http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, errValidation), errors.Is(err, errState):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &verrs):
		writeError(w, http.StatusBadRequest, verrs.Error())
	default:
		a.log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Something went wrong")
	}
}
