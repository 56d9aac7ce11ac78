package services

import (
	"context"

	"pawBack/internal/models"
)

// ServiceTypeRepo may be the plain SQL repository or its redis-backed cache.
type ServiceTypeRepo interface {
	GetServiceTypes(ctx context.Context) ([]models.ServiceType, error)
}

type ServiceTypeService struct {
	ServiceTypeRepo ServiceTypeRepo
}

func (s *ServiceTypeService) ListServiceTypes(ctx context.Context) ([]models.ServiceType, error) {
	types, err := s.ServiceTypeRepo.GetServiceTypes(ctx)
	if err != nil {
		return nil, wrapTransport("list service types", err)
	}
	return types, nil
}
