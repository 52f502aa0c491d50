package memory

import (
	"context"
	"sort"
	"sync"

	"pet-walks/internal/domain/chat"
)

type ChatRepo struct {
	mu     sync.RWMutex
	byTrip map[string][]chat.Message
}

func NewChatRepo() *ChatRepo {
	return &ChatRepo{
		byTrip: make(map[string][]chat.Message),
	}
}

func (r *ChatRepo) Append(ctx context.Context, m chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTrip[m.TripID] = append(r.byTrip[m.TripID], m)
	return nil
}

// Messages en orden de envío.
func (r *ChatRepo) Messages(ctx context.Context, tripID string) ([]chat.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]chat.Message{}, r.byTrip[tripID]...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SentAt.Before(out[j].SentAt)
	})
	return out, nil
}

func (r *ChatRepo) MarkRead(ctx context.Context, tripID, readerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	msgs := r.byTrip[tripID]
	for i := range msgs {
		if msgs[i].SenderID != readerID && !msgs[i].IsRead {
			msgs[i].IsRead = true
			n++
		}
	}
	return n, nil
}
