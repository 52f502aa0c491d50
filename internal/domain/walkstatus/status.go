// Package walkstatus define el ciclo de vida de un paseo y los predicados que
// deciden qué se muestra (chat, mapa, tracking) según el estado.
//
// El estado llega del backend como string; se normaliza una sola vez con
// Parse y de ahí en adelante se trabaja con el enum cerrado.
package walkstatus

import "strings"

type Status string

const (
	Solicitado    Status = "Solicitado"
	EsperandoPago Status = "Esperando pago"
	Agendado      Status = "Agendado"
	Activo        Status = "Activo"
	Finalizado    Status = "Finalizado"
	Rechazado     Status = "Rechazado"
	Cancelado     Status = "Cancelado"
)

// All en orden de ciclo de vida.
var All = []Status{Solicitado, EsperandoPago, Agendado, Activo, Finalizado, Rechazado, Cancelado}

var byKey = map[string]Status{
	"solicitado":     Solicitado,
	"esperando pago": EsperandoPago,
	"esperando_pago": EsperandoPago,
	"agendado":       Agendado,
	"activo":         Activo,
	"finalizado":     Finalizado,
	"rechazado":      Rechazado,
	"cancelado":      Cancelado,
}

// Parse normaliza un estado crudo (case-insensitive, con o sin espacios).
// ok=false si está vacío o no se reconoce.
func Parse(raw string) (Status, bool) {
	s, ok := byKey[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

func (s Status) Valid() bool {
	_, ok := byKey[strings.ToLower(string(s))]
	return ok
}

func (s Status) Terminal() bool {
	return s == Finalizado || s == Rechazado || s == Cancelado
}

var transitions = map[Status]map[Status]struct{}{
	Solicitado:    {EsperandoPago: {}, Rechazado: {}, Cancelado: {}},
	EsperandoPago: {Agendado: {}, Cancelado: {}},
	Agendado:      {Activo: {}, Cancelado: {}},
	Activo:        {Finalizado: {}},
	Finalizado:    {},
	Rechazado:     {},
	Cancelado:     {},
}

// CanTransition indica si el paso from -> to es legal.
func CanTransition(from, to Status) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}
