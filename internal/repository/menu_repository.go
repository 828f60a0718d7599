package repository

import (
	"context"
	"errors"
	"fmt"

	"canteen-connect/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MenuRepository struct {
	db *pgxpool.Pool
}

func NewMenuRepository(db *pgxpool.Pool) *MenuRepository {
	return &MenuRepository{db: db}
}

// RunAtomic executes fn within a transaction scoped to this repository's pool.
func (r *MenuRepository) RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return runAtomic(ctx, r.db, fn)
}

const menuItemColumns = "id, name, price, description, category, is_available, average_rating, image_url, created_at, updated_at"

func scanMenuItem(row pgx.Row) (model.MenuItem, error) {
	var m model.MenuItem
	err := row.Scan(&m.ID, &m.Name, &m.Price, &m.Description, &m.Category,
		&m.IsAvailable, &m.AverageRating, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// ListAvailable returns available menu items, newest first.
func (r *MenuRepository) ListAvailable(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := executor(ctx, r.db).Query(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE is_available = TRUE ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	items := []model.MenuItem{}
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *MenuRepository) GetByID(ctx context.Context, id int64) (model.MenuItem, error) {
	m, err := scanMenuItem(executor(ctx, r.db).QueryRow(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MenuItem{}, ErrNotFound
		}
		return model.MenuItem{}, fmt.Errorf("failed to get menu item: %w", err)
	}
	return m, nil
}

// GetForUpdate locks the menu item row for the duration of the enclosing
// transaction so concurrent rating submissions on the same item serialize.
func (r *MenuRepository) GetForUpdate(ctx context.Context, id int64) (model.MenuItem, error) {
	m, err := scanMenuItem(executor(ctx, r.db).QueryRow(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MenuItem{}, ErrNotFound
		}
		return model.MenuItem{}, fmt.Errorf("failed to lock menu item: %w", err)
	}
	return m, nil
}

func (r *MenuRepository) Create(ctx context.Context, m model.MenuItem) (model.MenuItem, error) {
	created, err := scanMenuItem(executor(ctx, r.db).QueryRow(ctx,
		`INSERT INTO menu_items (name, price, description, category, image_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+menuItemColumns,
		m.Name, m.Price, m.Description, m.Category, m.ImageURL))
	if err != nil {
		return model.MenuItem{}, fmt.Errorf("failed to create menu item: %w", err)
	}
	return created, nil
}

// MenuItemPatch carries the fields of a partial update; nil means unchanged.
type MenuItemPatch struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	IsAvailable *bool    `json:"isAvailable"`
	ImageURL    *string  `json:"imageUrl"`
}

func (r *MenuRepository) Update(ctx context.Context, id int64, p MenuItemPatch) (model.MenuItem, error) {
	updated, err := scanMenuItem(executor(ctx, r.db).QueryRow(ctx,
		`UPDATE menu_items SET
			name         = COALESCE($2, name),
			price        = COALESCE($3, price),
			description  = COALESCE($4, description),
			category     = COALESCE($5, category),
			is_available = COALESCE($6, is_available),
			image_url    = COALESCE($7, image_url),
			updated_at   = now()
		 WHERE id = $1
		 RETURNING `+menuItemColumns,
		id, p.Name, p.Price, p.Description, p.Category, p.IsAvailable, p.ImageURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MenuItem{}, ErrNotFound
		}
		return model.MenuItem{}, fmt.Errorf("failed to update menu item: %w", err)
	}
	return updated, nil
}

// Delete removes the menu item; its ratings go with it through the
// ON DELETE CASCADE foreign key, so the cascade cannot be partial.
func (r *MenuRepository) Delete(ctx context.Context, id int64) error {
	tag, err := executor(ctx, r.db).Exec(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MenuRepository) InsertRating(ctx context.Context, rating model.Rating) (model.Rating, error) {
	err := executor(ctx, r.db).QueryRow(ctx,
		`INSERT INTO ratings (menu_item_id, user_id, score, comment)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		rating.MenuItemID, rating.UserID, rating.Score, rating.Comment).
		Scan(&rating.ID, &rating.CreatedAt)
	if err != nil {
		if uniqueViolation(err) {
			return model.Rating{}, ErrDuplicate
		}
		return model.Rating{}, fmt.Errorf("failed to insert rating: %w", err)
	}
	return rating, nil
}

// AverageScore recomputes the mean score over all ratings of the item.
// Zero ratings yields 0, not NULL.
func (r *MenuRepository) AverageScore(ctx context.Context, menuItemID int64) (float64, error) {
	var avg float64
	err := executor(ctx, r.db).QueryRow(ctx,
		"SELECT COALESCE(AVG(score), 0) FROM ratings WHERE menu_item_id = $1", menuItemID).
		Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average score: %w", err)
	}
	return avg, nil
}

func (r *MenuRepository) SetAverageRating(ctx context.Context, menuItemID int64, avg float64) error {
	_, err := executor(ctx, r.db).Exec(ctx,
		"UPDATE menu_items SET average_rating = $1, updated_at = now() WHERE id = $2", avg, menuItemID)
	if err != nil {
		return fmt.Errorf("failed to set average rating: %w", err)
	}
	return nil
}
