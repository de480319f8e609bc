package services

import (
	"context"
	"fmt"
	"time"

	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/out"
)

type AppointmentService struct {
	storagePort out.StoragePort
	cachePort   out.CachePort
	logger      out.LoggerPort

	// Источник текущего времени, подменяется в тестах
	now func() time.Time
}

func NewAppointmentService(
	storagePort out.StoragePort,
	cachePort out.CachePort,
	logger out.LoggerPort,
) *AppointmentService {
	return &AppointmentService{
		storagePort: storagePort,
		cachePort:   cachePort,
		logger:      logger.WithModule("AppointmentService"),
		now:         time.Now,
	}
}

// loadDoctorAppointments возвращает все слоты врача, сначала смотрим в кэш
func (s *AppointmentService) loadDoctorAppointments(ctx context.Context, doctorID string) ([]domain.Appointment, error) {
	if s.cachePort != nil {
		if appointments, exists := s.cachePort.GetDoctorAppointments(ctx, doctorID); exists {
			s.logger.Debug("appointments.cache.hit", out.LogFields{
				"doctorId": doctorID,
				"count":    len(appointments),
			})
			return appointments, nil
		}
	}

	appointments, err := s.storagePort.ListDoctorAppointments(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("appointments.fetch_failed: %w", err)
	}

	if s.cachePort != nil {
		s.cachePort.StoreDoctorAppointments(ctx, doctorID, appointments)
	}

	return appointments, nil
}

// invalidateDoctorCache сбрасывает кэш слотов врача после любой мутации
func (s *AppointmentService) invalidateDoctorCache(ctx context.Context, doctorID string) {
	if s.cachePort != nil {
		s.cachePort.InvalidateDoctor(ctx, doctorID)
	}
}
