package backend

import "pet-walks/internal/domain/tracking"

// Cuerpos que no son entidades de dominio. El backend de desarrollo usa los
// mismos tipos.

// StatusUpdate es el cuerpo de PATCH /tickets/{id}/status y PUT /walks/{id}/status.
type StatusUpdate struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// ReadReceipt es el cuerpo de PUT /chat/walks/{tripId}/messages/read.
type ReadReceipt struct {
	UserID string `json:"userId"`
}

type UpdatedCount struct {
	UpdatedCount int `json:"updatedCount"`
}

type UnreadCount struct {
	UnreadCount int `json:"unreadCount"`
}

// Promotion es la respuesta de POST /walker-registrations/{userId}/promote.
type Promotion struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// Route es la respuesta de GET /walk-maps/walks/{tripId}/route.
type Route struct {
	TripID  string            `json:"tripId"`
	Records []tracking.Record `json:"records"`
}
