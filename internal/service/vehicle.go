package service

import (
	"context"
	"fmt"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
}

func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo}
}

func (s *vehicleService) AddVehicle(ctx context.Context, v *domain.Vehicle) error {
	if v.Make == "" || v.Model == "" || v.LicensePlate == "" {
		return fmt.Errorf("%w: make, model and license plate are required", domain.ErrValidation)
	}
	if v.PricePerDayCents <= 0 {
		return fmt.Errorf("%w: price per day must be positive", domain.ErrValidation)
	}
	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}
	return s.vehicleRepo.Create(ctx, v)
}

func (s *vehicleService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, v *domain.Vehicle) error {
	if _, err := s.vehicleRepo.GetByID(ctx, v.ID); err != nil {
		return err
	}
	return s.vehicleRepo.Update(ctx, v)
}

func (s *vehicleService) ListVehicles(ctx context.Context, status string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	return s.vehicleRepo.List(ctx, status, page, pageSize)
}
