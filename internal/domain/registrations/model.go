package registrations

import "time"

type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Images guarda las referencias (nombre de archivo / public id) de las tres
// fotos obligatorias. El hosting de imágenes es externo.
type Images struct {
	DNIFront      string `json:"dniFront"`
	DNIBack       string `json:"dniBack"`
	SelfieWithDNI string `json:"selfieWithDni"`
}

// Slots en orden, útil para validar y puntuar.
func (i Images) Slots() []string {
	return []string{i.DNIFront, i.DNIBack, i.SelfieWithDNI}
}

type Registration struct {
	ID               string     `json:"id"`
	UserID           string     `json:"userId"`
	FullName         string     `json:"fullName"`
	Phone            string     `json:"phone"`
	DNI              string     `json:"dni"`
	City             string     `json:"city"`
	Province         string     `json:"province"`
	Images           Images     `json:"images"`
	Status           Status     `json:"status"`
	SubmittedAt      time.Time  `json:"submittedAt"`
	ReviewedAt       *time.Time `json:"reviewedAt"`
	ReviewedBy       string     `json:"reviewedBy,omitempty"`
	AdminNotes       string     `json:"adminNotes,omitempty"`
	ApplicationScore *int       `json:"applicationScore"`
}

type Stats struct {
	Total             int `json:"total"`
	Pending           int `json:"pending"`
	Approved          int `json:"approved"`
	Rejected          int `json:"rejected"`
	UnderReview       int `json:"under_review"`
	RecentSubmissions int `json:"recentSubmissions"`
}
