package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"canteen-connect/internal/model"
	"canteen-connect/internal/repository"

	"github.com/go-chi/chi/v5"
)

func menuItemIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.ListAvailable(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

type createMenuItemRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
}

func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req createMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.menu.Create(r.Context(), model.MenuItem{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":  "Menu item added successfully",
		"menuItem": item,
	})
}

func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := menuItemIDParam(r)
	if !ok {
		respondMessage(w, http.StatusNotFound, "Menu item not found")
		return
	}

	var patch repository.MenuItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.menu.Update(r.Context(), id, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Menu item updated successfully",
		"menuItem": item,
	})
}

func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := menuItemIDParam(r)
	if !ok {
		respondMessage(w, http.StatusNotFound, "Menu item not found")
		return
	}

	if err := h.menu.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Menu item deleted successfully")
}

type rateMenuItemRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

func (h *Handler) RateMenuItem(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFrom(r)
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, ok := menuItemIDParam(r)
	if !ok {
		respondMessage(w, http.StatusNotFound, "Menu item not found")
		return
	}

	var req rateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rating, newAverage, err := h.menu.SubmitRating(r.Context(), id, identity.UserID, req.Score, req.Comment)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":          "Rating added successfully",
		"rating":           rating,
		"newAverageRating": newAverage,
	})
}
