package apperr

import (
	"errors"
	"fmt"
)

// Kind clasifica un error para que los llamadores puedan recuperarse sin
// comparar strings.
type Kind string

const (
	KindValidation Kind = "validation"
	KindProtocol   Kind = "protocol"
	KindNetwork    Kind = "network"
	KindState      Kind = "state"
	KindCapacity   Kind = "capacity"
	KindNotFound   Kind = "not_found"
)

// Sentinels por kind. errors.Is(err, ErrValidation) es true para cualquier
// *Error de ese kind, aunque esté envuelto con contexto adicional.
var (
	ErrValidation = errors.New("validation error")
	ErrProtocol   = errors.New("protocol error")
	ErrNetwork    = errors.New("network error")
	ErrState      = errors.New("state error")
	ErrCapacity   = errors.New("capacity error")
	ErrNotFound   = errors.New("not found")
)

var sentinels = map[Kind]error{
	KindValidation: ErrValidation,
	KindProtocol:   ErrProtocol,
	KindNetwork:    ErrNetwork,
	KindState:      ErrState,
	KindCapacity:   ErrCapacity,
	KindNotFound:   ErrNotFound,
}

// Error es el error tipado que cruza las capas (adapter -> service -> handler).
type Error struct {
	Kind Kind
	Op   string // operación que falló, p.ej. "tickets.respond"
	Msg  string // mensaje legible
	Err  error  // causa original (opcional)

	// StatusCode del upstream cuando el error viene del backend remoto.
	StatusCode int
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is permite errors.Is(err, apperr.ErrState) sin perder la causa.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

func newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func Validation(op, format string, args ...any) *Error {
	return newf(KindValidation, op, format, args...)
}

func Protocol(op, format string, args ...any) *Error {
	return newf(KindProtocol, op, format, args...)
}

func State(op, format string, args ...any) *Error {
	return newf(KindState, op, format, args...)
}

func Capacity(op, format string, args ...any) *Error {
	return newf(KindCapacity, op, format, args...)
}

func NotFound(op, format string, args ...any) *Error {
	return newf(KindNotFound, op, format, args...)
}

// Network envuelve una falla de transporte o una respuesta no-2xx.
func Network(op string, status int, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Msg: "backend request failed", Err: err, StatusCode: status}
}

// Wrap reclasifica una causa con un kind dado (p.ej. 404 del backend -> NotFound).
func Wrap(kind Kind, op string, status int, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: string(kind), Err: err, StatusCode: status}
}

// KindOf devuelve el kind del primer *Error en la cadena, o "" si no hay.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusOf devuelve el status HTTP del upstream si se conoce.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
