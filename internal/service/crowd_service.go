package service

import (
	"context"
	"errors"

	"canteen-connect/internal/model"
	"canteen-connect/internal/repository"
)

var (
	ErrInvalidPersonCount = errors.New("person count must be a non-negative integer")
	ErrNoSamples          = errors.New("no crowd data available")
)

const DefaultHistoryLimit = 24

// Classification labels a person count with a crowd level and the color the
// dashboard renders it in.
type Classification struct {
	Level string
	Color string
}

// Classify maps a person count onto a crowd tier. Boundary values belong to
// the calmer tier: 25 is still Not Busy, 50 is still Busy.
func Classify(personCount int) Classification {
	switch {
	case personCount > 50:
		return Classification{Level: "Crowded", Color: "red"}
	case personCount > 25:
		return Classification{Level: "Busy", Color: "yellow"}
	default:
		return Classification{Level: "Not Busy", Color: "green"}
	}
}

type CrowdService struct {
	repo *repository.CrowdRepository
}

func NewCrowdService(repo *repository.CrowdRepository) *CrowdService {
	return &CrowdService{repo: repo}
}

// Record appends an immutable sample to the crowd log.
func (s *CrowdService) Record(ctx context.Context, personCount int) (model.CrowdSample, error) {
	if personCount < 0 {
		return model.CrowdSample{}, ErrInvalidPersonCount
	}
	return s.repo.Insert(ctx, personCount)
}

// Latest returns the newest sample with its classification. An empty log is
// reported as ErrNoSamples rather than a synthetic zero sample.
func (s *CrowdService) Latest(ctx context.Context) (model.CrowdSample, Classification, error) {
	sample, err := s.repo.Latest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.CrowdSample{}, Classification{}, ErrNoSamples
		}
		return model.CrowdSample{}, Classification{}, err
	}
	return sample, Classify(sample.PersonCount), nil
}

// History returns up to limit samples, most recent first. Non-positive
// limits fall back to the default of 24.
func (s *CrowdService) History(ctx context.Context, limit int) ([]model.CrowdSample, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.repo.History(ctx, limit)
}
