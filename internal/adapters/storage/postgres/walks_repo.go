package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-walks/internal/domain/walks"
	"pet-walks/internal/domain/walkstatus"

	"github.com/jackc/pgx/v5/pgtype"
)

type WalksRepo struct {
	db *sql.DB

	// types escanea text[] a []string a través de database/sql.
	types *pgtype.Map
}

func NewWalksRepo(db *sql.DB) *WalksRepo {
	return &WalksRepo{db: db, types: pgtype.NewMap()}
}

const walkColumns = `
	id, owner_id, walker_id, status, scheduled_at,
	start_address, total_price, pet_ids, notes, created_at`

func (r *WalksRepo) Create(ctx context.Context, w walks.Walk) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO walks (`+walkColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		w.ID,
		w.OwnerID,
		w.WalkerID,
		string(w.Status),
		w.ScheduledAt,
		w.StartAddress,
		w.TotalPrice,
		w.PetIDs,
		w.Notes,
		w.CreatedAt,
	)
	return err
}

func (r *WalksRepo) Get(ctx context.Context, id string) (walks.Walk, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return walks.Walk{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+walkColumns+` FROM walks WHERE id = $1`, id)
	w, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return walks.Walk{}, ErrNotFound
	}
	return w, err
}

func (r *WalksRepo) List(ctx context.Context) ([]walks.Walk, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+walkColumns+` FROM walks ORDER BY scheduled_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]walks.Walk, 0)
	for rows.Next() {
		w, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WalksRepo) Update(ctx context.Context, w walks.Walk) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE walks SET
			status = $2,
			scheduled_at = $3,
			start_address = $4,
			total_price = $5,
			pet_ids = $6,
			notes = $7
		WHERE id = $1
	`,
		w.ID,
		string(w.Status),
		w.ScheduledAt,
		w.StartAddress,
		w.TotalPrice,
		w.PetIDs,
		w.Notes,
	)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *WalksRepo) scan(s scanner) (walks.Walk, error) {
	var w walks.Walk
	var status string
	if err := s.Scan(
		&w.ID,
		&w.OwnerID,
		&w.WalkerID,
		&status,
		&w.ScheduledAt,
		&w.StartAddress,
		&w.TotalPrice,
		r.types.SQLScanner(&w.PetIDs),
		&w.Notes,
		&w.CreatedAt,
	); err != nil {
		return walks.Walk{}, err
	}
	w.Status = walkstatus.Status(status)
	return w, nil
}
