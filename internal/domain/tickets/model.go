package tickets

import "time"

type Status string

const (
	StatusPending   Status = "En Espera"
	StatusResolved  Status = "Resuelto"
	StatusCancelled Status = "Cancelada"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusResolved, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal: un ticket respondido no admite otra respuesta.
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusCancelled
}

const (
	MinSubjectLength              = 5
	MinMessageLength              = 10
	MinResponseLength             = 10
	MinCancellationResponseLength = 20
	MinAgentNameLength            = 2
)

type Response struct {
	AgentName string    `json:"agentName"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
}

type Ticket struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	Subject            string    `json:"subject"`
	Message            string    `json:"message"`
	Category           string    `json:"category"`
	Status             Status    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	Response           *Response `json:"response,omitempty"`
	CancellationReason string    `json:"cancellationReason,omitempty"`
}

// NewTicket es el payload de creación, ya validado y recortado.
type NewTicket struct {
	UserID   string `json:"userId"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

// ResponsePayload es lo que se manda al backend al responder.
type ResponsePayload struct {
	Content   string    `json:"content"`
	AgentName string    `json:"agentName"`
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

type CategoryInfo struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Statistics struct {
	Total      int            `json:"total"`
	Pending    int            `json:"pending"`
	Resolved   int            `json:"resolved"`
	Cancelled  int            `json:"cancelled"`
	ByCategory map[string]int `json:"byCategory"`
}
