package repository

import (
	"context"
	"errors"
	"fmt"

	"canteen-connect/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CrowdRepository struct {
	db *pgxpool.Pool
}

func NewCrowdRepository(db *pgxpool.Pool) *CrowdRepository {
	return &CrowdRepository{db: db}
}

// Insert appends a sample to the log. Samples are never updated or deleted.
func (r *CrowdRepository) Insert(ctx context.Context, personCount int) (model.CrowdSample, error) {
	var s model.CrowdSample
	err := r.db.QueryRow(ctx,
		"INSERT INTO crowd_samples (person_count) VALUES ($1) RETURNING id, person_count, created_at",
		personCount).Scan(&s.ID, &s.PersonCount, &s.CreatedAt)
	if err != nil {
		return model.CrowdSample{}, fmt.Errorf("failed to insert crowd sample: %w", err)
	}
	return s, nil
}

// Latest returns the most recently created sample. The id tiebreak keeps
// ordering deterministic for samples sharing a timestamp.
func (r *CrowdRepository) Latest(ctx context.Context) (model.CrowdSample, error) {
	var s model.CrowdSample
	err := r.db.QueryRow(ctx,
		"SELECT id, person_count, created_at FROM crowd_samples ORDER BY created_at DESC, id DESC LIMIT 1").
		Scan(&s.ID, &s.PersonCount, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CrowdSample{}, ErrNotFound
		}
		return model.CrowdSample{}, fmt.Errorf("failed to get latest crowd sample: %w", err)
	}
	return s, nil
}

// History returns up to limit samples, most recent first.
func (r *CrowdRepository) History(ctx context.Context, limit int) ([]model.CrowdSample, error) {
	rows, err := r.db.Query(ctx,
		"SELECT id, person_count, created_at FROM crowd_samples ORDER BY created_at DESC, id DESC LIMIT $1",
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list crowd history: %w", err)
	}
	defer rows.Close()

	samples := []model.CrowdSample{}
	for rows.Next() {
		var s model.CrowdSample
		if err := rows.Scan(&s.ID, &s.PersonCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan crowd sample: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
