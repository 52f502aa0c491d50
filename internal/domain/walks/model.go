package walks

import (
	"time"

	"pet-walks/internal/domain/walkstatus"
)

type Walk struct {
	ID           string            `json:"id"`
	OwnerID      string            `json:"ownerId"`
	WalkerID     string            `json:"walkerId"`
	Status       walkstatus.Status `json:"status"`
	ScheduledAt  time.Time         `json:"scheduledDateTime"`
	StartAddress string            `json:"startAddress"`
	TotalPrice   float64           `json:"totalPrice"`
	PetIDs       []string          `json:"petIds"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// NewWalk es el pedido del dueño, ya validado.
type NewWalk struct {
	OwnerID      string    `json:"ownerId"`
	WalkerID     string    `json:"walkerId"`
	ScheduledAt  time.Time `json:"scheduledDateTime"`
	StartAddress string    `json:"startAddress"`
	TotalPrice   float64   `json:"totalPrice"`
	PetIDs       []string  `json:"petIds"`
	Notes        string    `json:"notes,omitempty"`
}

// Payment confirma el pago de un paseo. El procesamiento real es externo;
// acá viaja la referencia del pago ya cobrado.
type Payment struct {
	Method    string  `json:"method"`
	Amount    float64 `json:"amount"`
	Reference string  `json:"reference,omitempty"`
}
