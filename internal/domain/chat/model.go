package chat

import "time"

type SenderType string

const (
	SenderOwner  SenderType = "owner"
	SenderWalker SenderType = "walker"
)

func (s SenderType) Valid() bool {
	return s == SenderOwner || s == SenderWalker
}

// MaxMessageLength en runes, medido después de trim.
const MaxMessageLength = 500

// Message es el registro tal como lo guarda el backend.
type Message struct {
	ID         string     `json:"id"`
	TripID     string     `json:"tripId"`
	SenderID   string     `json:"senderId"`
	SenderType SenderType `json:"senderType"`
	SenderName string     `json:"senderName"`
	Content    string     `json:"content"`
	SentAt     time.Time  `json:"sentAt"`
	IsRead     bool       `json:"isRead"`
}

// Thread agrupa los mensajes de un paseo. ChatID vacío = el chat todavía no existe.
type Thread struct {
	ChatID   string    `json:"chatId"`
	Messages []Message `json:"messages"`
}

// NewMessage es lo que se manda a persistir.
type NewMessage struct {
	TripID     string     `json:"-"`
	SenderID   string     `json:"senderId"`
	SenderType SenderType `json:"senderType"`
	SenderName string     `json:"senderName"`
	Content    string     `json:"content"`
}

// MessageDTO es la forma que consume la vista.
type MessageDTO struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Sender     SenderType `json:"sender"`
	SenderID   string     `json:"senderId"`
	SenderName string     `json:"senderName"`
	Timestamp  time.Time  `json:"timestamp"`
	Time       string     `json:"time"` // HH:MM en la zona del negocio
	Read       bool       `json:"read"`
}
