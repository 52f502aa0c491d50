package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-walks/internal/domain/tickets"
)

type TicketsRepo struct {
	db *sql.DB
}

func NewTicketsRepo(db *sql.DB) *TicketsRepo {
	return &TicketsRepo{db: db}
}

const ticketColumns = `
	id, user_id, subject, message, category, status,
	created_at, updated_at,
	response_agent, response_content, response_date,
	cancellation_reason`

func (r *TicketsRepo) Create(ctx context.Context, t tickets.Ticket) error {
	agent, content, date := responseArgs(t.Response)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tickets (`+ticketColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		t.ID,
		t.UserID,
		t.Subject,
		t.Message,
		t.Category,
		string(t.Status),
		t.CreatedAt,
		t.UpdatedAt,
		agent, content, date,
		t.CancellationReason,
	)
	return err
}

func (r *TicketsRepo) Get(ctx context.Context, id string) (tickets.Ticket, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return tickets.Ticket{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id)
	t, err := scanTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return tickets.Ticket{}, ErrNotFound
	}
	return t, err
}

func (r *TicketsRepo) List(ctx context.Context) ([]tickets.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tickets.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TicketsRepo) Update(ctx context.Context, t tickets.Ticket) error {
	agent, content, date := responseArgs(t.Response)
	res, err := r.db.ExecContext(ctx, `
		UPDATE tickets SET
			status = $2,
			updated_at = $3,
			response_agent = $4,
			response_content = $5,
			response_date = $6,
			cancellation_reason = $7
		WHERE id = $1
	`,
		t.ID,
		string(t.Status),
		t.UpdatedAt,
		agent, content, date,
		t.CancellationReason,
	)
	if err != nil {
		return err
	}
	return expectOne(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTicket(s scanner) (tickets.Ticket, error) {
	var t tickets.Ticket
	var status string
	var agent, content sql.NullString
	var date sql.NullTime
	if err := s.Scan(
		&t.ID,
		&t.UserID,
		&t.Subject,
		&t.Message,
		&t.Category,
		&status,
		&t.CreatedAt,
		&t.UpdatedAt,
		&agent,
		&content,
		&date,
		&t.CancellationReason,
	); err != nil {
		return tickets.Ticket{}, err
	}

	t.Status = tickets.Status(status)
	if content.Valid {
		t.Response = &tickets.Response{AgentName: agent.String, Content: content.String, Date: date.Time}
	}
	return t, nil
}

func responseArgs(resp *tickets.Response) (agent, content sql.NullString, date sql.NullTime) {
	if resp == nil {
		return
	}
	return sql.NullString{String: resp.AgentName, Valid: true},
		sql.NullString{String: resp.Content, Valid: true},
		sql.NullTime{Time: resp.Date, Valid: !resp.Date.IsZero()}
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
