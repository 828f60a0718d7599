package service

import (
	"context"
	"errors"
	"strings"

	"canteen-connect/internal/model"
	"canteen-connect/internal/repository"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidMenuItem  = errors.New("name, category and a non-negative price are required")
	ErrInvalidScore     = errors.New("score must be an integer between 1 and 5")
	ErrAlreadyRated     = errors.New("you have already rated this item")
)

type MenuService struct {
	repo *repository.MenuRepository
}

func NewMenuService(repo *repository.MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

// ListAvailable returns the public menu: available items, newest first.
func (s *MenuService) ListAvailable(ctx context.Context) ([]model.MenuItem, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *MenuService) Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	if item.Name == "" || item.Category == "" || item.Price < 0 {
		return model.MenuItem{}, ErrInvalidMenuItem
	}
	return s.repo.Create(ctx, item)
}

// Update applies a partial update. Unknown ids map to ErrMenuItemNotFound.
// Availability is not checked here: admins may edit unavailable items.
func (s *MenuService) Update(ctx context.Context, id int64, patch repository.MenuItemPatch) (model.MenuItem, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return model.MenuItem{}, ErrInvalidMenuItem
	}
	item, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.MenuItem{}, ErrMenuItemNotFound
		}
		return model.MenuItem{}, err
	}
	return item, nil
}

// Delete removes the item and, through the cascading foreign key, every
// rating referencing it in the same atomic statement.
func (s *MenuService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return err
	}
	return nil
}

// SubmitRating records one user's score for a menu item and recomputes the
// item's average. The whole sequence runs in a single transaction with the
// item row locked, so two concurrent submissions on the same item serialize
// and neither average write is lost. Duplicate (item, user) pairs are
// rejected by the ratings unique index even if both requests pass the lock.
func (s *MenuService) SubmitRating(ctx context.Context, menuItemID, userID int64, score int, comment string) (model.Rating, float64, error) {
	if score < 1 || score > 5 {
		return model.Rating{}, 0, ErrInvalidScore
	}

	var (
		rating     model.Rating
		newAverage float64
	)
	err := s.repo.RunAtomic(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetForUpdate(ctx, menuItemID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrMenuItemNotFound
			}
			return err
		}

		inserted, err := s.repo.InsertRating(ctx, model.Rating{
			MenuItemID: menuItemID,
			UserID:     userID,
			Score:      score,
			Comment:    comment,
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrAlreadyRated
			}
			return err
		}
		rating = inserted

		avg, err := s.repo.AverageScore(ctx, menuItemID)
		if err != nil {
			return err
		}
		newAverage = avg

		return s.repo.SetAverageRating(ctx, menuItemID, avg)
	})
	if err != nil {
		return model.Rating{}, 0, err
	}
	return rating, newAverage, nil
}
