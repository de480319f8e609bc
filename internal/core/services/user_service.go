package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/out"
)

type UserService struct {
	storagePort out.StoragePort
	cachePort   out.CachePort
	logger      out.LoggerPort
}

func NewUserService(
	storagePort out.StoragePort,
	cachePort out.CachePort,
	logger out.LoggerPort,
) *UserService {
	return &UserService{
		storagePort: storagePort,
		cachePort:   cachePort,
		logger:      logger.WithModule("UserService"),
	}
}

func (s *UserService) registerUser(ctx context.Context, fullName string, role domain.Role) (*domain.User, error) {
	if fullName == "" {
		return nil, domain.NewError(domain.ErrInvalidRequest, "User name is required.")
	}

	user := domain.User{
		ID:       uuid.NewString(),
		FullName: fullName,
		Role:     role,
	}
	if err := s.storagePort.CreateUser(ctx, user); err != nil {
		s.logger.Error("users.register.failed", out.LogFields{
			"role":  role,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("users.register.failed: %w", err)
	}

	s.logger.Info("users.registered", out.LogFields{
		"userId": user.ID,
		"role":   role,
	})

	return &user, nil
}

func (s *UserService) RegisterDoctor(ctx context.Context, fullName string) (*domain.User, error) {
	return s.registerUser(ctx, fullName, domain.RoleDoctor)
}

func (s *UserService) RegisterPatient(ctx context.Context, fullName string) (*domain.User, error) {
	return s.registerUser(ctx, fullName, domain.RolePatient)
}

// RemoveDoctor удаляет врача вместе с его незавершенными слотами,
// завершенные слоты остаются как история
func (s *UserService) RemoveDoctor(ctx context.Context, id string) (string, error) {
	doctor, err := s.storagePort.GetDoctor(ctx, id)
	if err != nil {
		return "", fmt.Errorf("users.doctor.fetch_failed: %w", err)
	}
	if doctor == nil {
		return "", domain.NewError(domain.ErrDoctorNotFound, "Unable to delete doctor because he doesn't exists.")
	}

	if err := s.storagePort.DeleteIncompleteByDoctor(ctx, id); err != nil {
		return "", fmt.Errorf("users.doctor.cascade_failed: %w", err)
	}
	if err := s.storagePort.DeleteUser(ctx, id); err != nil {
		return "", fmt.Errorf("users.doctor.delete_failed: %w", err)
	}

	if s.cachePort != nil {
		s.cachePort.InvalidateDoctor(ctx, id)
	}

	s.logger.Info("users.doctor.removed", out.LogFields{
		"doctorId": id,
	})

	return fmt.Sprintf("Doctor with id: [%s] is deleted successfully.", id), nil
}

// RemovePatient удаляет пациента вместе с его незавершенными слотами
func (s *UserService) RemovePatient(ctx context.Context, id string) (string, error) {
	patient, err := s.storagePort.GetPatient(ctx, id)
	if err != nil {
		return "", fmt.Errorf("users.patient.fetch_failed: %w", err)
	}
	if patient == nil {
		return "", domain.NewError(domain.ErrPatientNotFound, "Unable to delete patient because he doesn't exists.")
	}

	if err := s.storagePort.DeleteIncompleteByPatient(ctx, id); err != nil {
		return "", fmt.Errorf("users.patient.cascade_failed: %w", err)
	}
	if err := s.storagePort.DeleteUser(ctx, id); err != nil {
		return "", fmt.Errorf("users.patient.delete_failed: %w", err)
	}

	// Незавершенные слоты пациента могли быть у разных врачей
	if s.cachePort != nil {
		s.cachePort.InvalidateAll(ctx)
	}

	s.logger.Info("users.patient.removed", out.LogFields{
		"patientId": id,
	})

	return fmt.Sprintf("Patient with id: [%s] is deleted successfully.", id), nil
}
