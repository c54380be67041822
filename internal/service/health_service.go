package service

import (
	"context"
	"socialhub/internal/repository"
)

type HealthStatus struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

type HealthService interface {
	Check(ctx context.Context) (*HealthStatus, error)
}

type healthService struct {
	healthRepo repository.HealthRepository
}

func NewHealthService(healthRepo repository.HealthRepository) HealthService {
	return &healthService{healthRepo: healthRepo}
}

func (s *healthService) Check(ctx context.Context) (*HealthStatus, error) {
	if err := s.healthRepo.Ping(ctx); err != nil {
		return nil, err
	}

	return &HealthStatus{Status: "ok", Storage: s.healthRepo.Driver()}, nil
}
