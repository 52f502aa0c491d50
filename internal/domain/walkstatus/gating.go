package walkstatus

import "strings"

// Chat y mapa comparten la misma lógica de gating: visibles en activo o
// finalizado (historial), interactivos solo en activo.

func ChatVisible(s Status) bool     { return s == Activo || s == Finalizado }
func CanSendMessages(s Status) bool { return s == Activo }
func MapVisible(s Status) bool      { return s == Activo || s == Finalizado }
func MapInteractive(s Status) bool  { return s == Activo }
func TrackingVisible(s Status) bool { return s == Activo || s == Finalizado }

// Variantes sobre el string crudo del backend. Nunca fallan: un estado vacío
// o desconocido da false.

func ChatVisibleRaw(raw string) bool {
	s, ok := Parse(raw)
	return ok && ChatVisible(s)
}

func CanSendMessagesRaw(raw string) bool {
	s, ok := Parse(raw)
	return ok && CanSendMessages(s)
}

func MapVisibleRaw(raw string) bool {
	s, ok := Parse(raw)
	return ok && MapVisible(s)
}

func MapInteractiveRaw(raw string) bool {
	s, ok := Parse(raw)
	return ok && MapInteractive(s)
}

func TrackingVisibleRaw(raw string) bool {
	s, ok := Parse(raw)
	return ok && TrackingVisible(s)
}

const (
	ChatUnknownMessage       = "No se pudo determinar el estado del paseo."
	ChatNotRecognizedMessage = "Estado del paseo no reconocido. El chat no está disponible."

	MapUnknownMessage       = "No se pudo determinar el estado del paseo para mostrar el mapa."
	MapNotRecognizedMessage = "Estado del paseo no reconocido. El mapa no está disponible."
)

var chatMessages = map[Status]string{
	Solicitado:    "El chat estará disponible cuando el paseo comience.",
	EsperandoPago: "El chat se habilitará una vez confirmado el pago y comenzado el paseo.",
	Agendado:      "El paseo está agendado. El chat se habilitará cuando el paseo comience.",
	Activo:        "El paseo está en curso. Podés chatear con la otra parte.",
	Finalizado:    "El paseo finalizó. Podés ver el historial de mensajes.",
	Rechazado:     "El paseo fue rechazado. El chat no está disponible.",
	Cancelado:     "El paseo fue cancelado. El chat no está disponible.",
}

var mapMessages = map[Status]string{
	Solicitado:    "El mapa estará disponible cuando el paseo comience.",
	EsperandoPago: "El mapa se habilitará una vez confirmado el pago y comenzado el paseo.",
	Agendado:      "El paseo está agendado. El seguimiento comenzará cuando el paseo inicie.",
	Activo:        "Seguimiento en tiempo real del paseo.",
	Finalizado:    "El paseo finalizó. Podés ver el recorrido realizado.",
	Rechazado:     "El paseo fue rechazado. No hay recorrido para mostrar.",
	Cancelado:     "El paseo fue cancelado. No hay recorrido para mostrar.",
}

// ChatMessage devuelve el mensaje de estado para la vista de chat.
// Vacío -> "unknown"; no vacío pero desconocido -> "not recognized".
func ChatMessage(raw string) string {
	return message(raw, chatMessages, ChatUnknownMessage, ChatNotRecognizedMessage)
}

// MapMessage devuelve el mensaje de estado para la vista de mapa/tracking.
func MapMessage(raw string) string {
	return message(raw, mapMessages, MapUnknownMessage, MapNotRecognizedMessage)
}

func message(raw string, set map[Status]string, unknown, notRecognized string) string {
	if strings.TrimSpace(raw) == "" {
		return unknown
	}
	s, ok := Parse(raw)
	if !ok {
		return notRecognized
	}
	if msg, ok := set[s]; ok {
		return msg
	}
	return notRecognized
}
