package postgres

import (
	"context"
	"database/sql"

	"pet-walks/internal/domain/chat"
)

type ChatRepo struct {
	db *sql.DB
}

func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) Append(ctx context.Context, m chat.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (
			id, trip_id, sender_id, sender_type, sender_name, content, sent_at, is_read
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		m.ID,
		m.TripID,
		m.SenderID,
		string(m.SenderType),
		m.SenderName,
		m.Content,
		m.SentAt,
		m.IsRead,
	)
	return err
}

func (r *ChatRepo) Messages(ctx context.Context, tripID string) ([]chat.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, trip_id, sender_id, sender_type, sender_name, content, sent_at, is_read
		FROM chat_messages
		WHERE trip_id = $1
		ORDER BY sent_at ASC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]chat.Message, 0)
	for rows.Next() {
		var m chat.Message
		var senderType string
		if err := rows.Scan(
			&m.ID,
			&m.TripID,
			&m.SenderID,
			&senderType,
			&m.SenderName,
			&m.Content,
			&m.SentAt,
			&m.IsRead,
		); err != nil {
			return nil, err
		}
		m.SenderType = chat.SenderType(senderType)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ChatRepo) MarkRead(ctx context.Context, tripID, readerID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE chat_messages SET is_read = TRUE
		WHERE trip_id = $1 AND sender_id <> $2 AND NOT is_read
	`, tripID, readerID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
