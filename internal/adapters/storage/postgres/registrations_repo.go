package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-walks/internal/domain/registrations"
)

type RegistrationsRepo struct {
	db *sql.DB
}

func NewRegistrationsRepo(db *sql.DB) *RegistrationsRepo {
	return &RegistrationsRepo{db: db}
}

const registrationColumns = `
	id, user_id, full_name, phone, dni, city, province,
	dni_front, dni_back, selfie_with_dni,
	status, submitted_at, reviewed_at, reviewed_by, admin_notes,
	application_score`

func (r *RegistrationsRepo) Create(ctx context.Context, reg registrations.Registration) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO walker_registrations (`+registrationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		reg.ID,
		reg.UserID,
		reg.FullName,
		reg.Phone,
		reg.DNI,
		reg.City,
		reg.Province,
		reg.Images.DNIFront,
		reg.Images.DNIBack,
		reg.Images.SelfieWithDNI,
		string(reg.Status),
		reg.SubmittedAt,
		reg.ReviewedAt,
		reg.ReviewedBy,
		reg.AdminNotes,
		reg.ApplicationScore,
	)
	return err
}

func (r *RegistrationsRepo) Get(ctx context.Context, id string) (registrations.Registration, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return registrations.Registration{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+registrationColumns+` FROM walker_registrations WHERE id = $1`, id)
	reg, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return registrations.Registration{}, ErrNotFound
	}
	return reg, err
}

func (r *RegistrationsRepo) List(ctx context.Context) ([]registrations.Registration, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+registrationColumns+` FROM walker_registrations ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]registrations.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r *RegistrationsRepo) Update(ctx context.Context, reg registrations.Registration) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE walker_registrations SET
			full_name = $2, phone = $3, dni = $4, city = $5, province = $6,
			dni_front = $7, dni_back = $8, selfie_with_dni = $9,
			status = $10, reviewed_at = $11, reviewed_by = $12, admin_notes = $13,
			application_score = $14
		WHERE id = $1
	`,
		reg.ID,
		reg.FullName,
		reg.Phone,
		reg.DNI,
		reg.City,
		reg.Province,
		reg.Images.DNIFront,
		reg.Images.DNIBack,
		reg.Images.SelfieWithDNI,
		string(reg.Status),
		reg.ReviewedAt,
		reg.ReviewedBy,
		reg.AdminNotes,
		reg.ApplicationScore,
	)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *RegistrationsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM walker_registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func scanRegistration(s scanner) (registrations.Registration, error) {
	var reg registrations.Registration
	var status string
	var reviewedAt sql.NullTime
	var score sql.NullInt64
	if err := s.Scan(
		&reg.ID,
		&reg.UserID,
		&reg.FullName,
		&reg.Phone,
		&reg.DNI,
		&reg.City,
		&reg.Province,
		&reg.Images.DNIFront,
		&reg.Images.DNIBack,
		&reg.Images.SelfieWithDNI,
		&status,
		&reg.SubmittedAt,
		&reviewedAt,
		&reg.ReviewedBy,
		&reg.AdminNotes,
		&score,
	); err != nil {
		return registrations.Registration{}, err
	}

	reg.Status = registrations.Status(status)
	if reviewedAt.Valid {
		t := reviewedAt.Time
		reg.ReviewedAt = &t
	}
	if score.Valid {
		v := int(score.Int64)
		reg.ApplicationScore = &v
	}
	return reg, nil
}
