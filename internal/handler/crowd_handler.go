package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"canteen-connect/internal/service"
)

type reportCrowdRequest struct {
	PersonCount *int `json:"personCount"`
}

func (h *Handler) ReportCrowd(w http.ResponseWriter, r *http.Request) {
	var req reportCrowdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PersonCount == nil {
		respondMessage(w, http.StatusBadRequest, "Invalid person count")
		return
	}

	sample, err := h.crowd.Record(r.Context(), *req.PersonCount)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":   "Crowd data reported successfully",
		"crowdData": sample,
	})
}

type latestCrowdResponse struct {
	PersonCount int       `json:"personCount"`
	CrowdLevel  string    `json:"crowdLevel"`
	Color       string    `json:"color"`
	Timestamp   time.Time `json:"timestamp"`
}

func (h *Handler) LatestCrowd(w http.ResponseWriter, r *http.Request) {
	sample, classification, err := h.crowd.Latest(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, latestCrowdResponse{
		PersonCount: sample.PersonCount,
		CrowdLevel:  classification.Level,
		Color:       classification.Color,
		Timestamp:   sample.CreatedAt,
	})
}

type crowdHistoryEntry struct {
	PersonCount int       `json:"personCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (h *Handler) CrowdHistory(w http.ResponseWriter, r *http.Request) {
	limit := service.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	samples, err := h.crowd.History(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}

	history := make([]crowdHistoryEntry, 0, len(samples))
	for _, s := range samples {
		history = append(history, crowdHistoryEntry{PersonCount: s.PersonCount, CreatedAt: s.CreatedAt})
	}
	respondJSON(w, http.StatusOK, history)
}
