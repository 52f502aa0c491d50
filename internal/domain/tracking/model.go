package tracking

import "time"

// Record es una muestra GPS de un paseo en curso. La genera el backend a
// partir de la ubicación que reporta el paseador.
type Record struct {
	ID         string    `json:"id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recordedAt"`
	Address    string    `json:"address,omitempty"`
}

// NewLocation es la ubicación que reporta el paseador, ya validada.
type NewLocation struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Availability indica si el paseo tiene mapa y en qué estado está.
type Availability struct {
	HasMap bool   `json:"hasMap"`
	Status string `json:"status"`
}

// Point es un Record listo para mostrar: dirección resuelta y hora local.
type Point struct {
	ID         string    `json:"id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Address    string    `json:"address"`
	RecordedAt time.Time `json:"recordedAt"`
	Time       string    `json:"time"`
}
