// Package httpresp centraliza cómo los handlers escriben JSON y traducen los
// kinds de apperr a códigos HTTP.
package httpresp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pet-walks/internal/platform/apperr"
	"pet-walks/internal/platform/logger"
)

const maxBodyBytes = 1 << 20

// ErrorBody es el cuerpo de toda respuesta de error.
type ErrorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor mapea un error al código HTTP que ve la UI.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindCapacity, apperr.KindState:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindProtocol:
		return http.StatusBadGateway
	case apperr.KindNetwork:
		// un 4xx del backend (p.ej. 401/403/422) se propaga tal cual
		if st := apperr.StatusOf(err); st >= 400 && st < 500 {
			return st
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error escribe err como JSON y lo loguea con el kind. Los errores del
// usuario (validation, capacity, state, not found) van a warn; el resto a error.
func Error(w http.ResponseWriter, log logger.Logger, op string, err error, fields logger.Fields) {
	status := StatusFor(err)
	kind := apperr.KindOf(err)

	if log != nil {
		f := logger.Fields{"op": op, "kind": string(kind), "status": status, "err": err}
		for k, v := range fields {
			f[k] = v
		}
		if status >= 500 {
			log.Error("request failed", f)
		} else {
			log.Warn("request rejected", f)
		}
	}

	msg := err.Error()
	if kind == "" {
		msg = "internal error"
	}
	WriteJSON(w, status, ErrorBody{Error: msg, Kind: string(kind)})
}

// DecodeJSON lee el body en dst. Un body inválido es un error de validación.
func DecodeJSON(r *http.Request, op string, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation(op, "empty body")
		}
		return apperr.Validation(op, "invalid json")
	}
	return nil
}
