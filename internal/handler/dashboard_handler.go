package handler

import (
	"errors"
	"net/http"

	"canteen-connect/internal/model"
	"canteen-connect/internal/service"

	"golang.org/x/sync/errgroup"
)

type dashboardCrowd struct {
	PersonCount int    `json:"personCount"`
	CrowdLevel  string `json:"crowdLevel"`
	Color       string `json:"color"`
}

// Dashboard assembles in one response what the dashboard view polls for:
// the current crowd state and the available menu. Both fetches run in
// parallel; an empty crowd log yields a null crowd field, not an error.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var (
		crowd *dashboardCrowd
		items []model.MenuItem
	)

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		sample, classification, err := h.crowd.Latest(ctx)
		if err != nil {
			if errors.Is(err, service.ErrNoSamples) {
				return nil
			}
			return err
		}
		crowd = &dashboardCrowd{
			PersonCount: sample.PersonCount,
			CrowdLevel:  classification.Level,
			Color:       classification.Color,
		}
		return nil
	})

	g.Go(func() error {
		var err error
		items, err = h.menu.ListAvailable(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"crowd": crowd,
		"menu":  items,
	})
}
