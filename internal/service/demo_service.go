package service

import (
	"context"

	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/repository"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// DemoService exposes the placeholder demo resource.
type DemoService struct {
	demos repository.DemoRepository
}

// NewDemoService builds the service.
func NewDemoService(demos repository.DemoRepository) *DemoService {
	return &DemoService{demos: demos}
}

// Create inserts a new demo record.
func (s *DemoService) Create(ctx context.Context) (*domain.Demo, error) {
	demo := &domain.Demo{}
	if err := s.demos.Create(ctx, demo); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return demo, nil
}

// List returns all demo records.
func (s *DemoService) List(ctx context.Context) ([]domain.Demo, error) {
	demos, err := s.demos.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return demos, nil
}
