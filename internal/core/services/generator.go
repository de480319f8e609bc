package services

import (
	"context"
	"fmt"
	"time"

	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/in"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/out"
	"github.com/suchimauz/his-appointment-scheduler/internal/utils"
)

// Рабочий день каждого врача начинается с 08:00
const workdayStartHour = 8

const (
	minSlotDurationMinutes = 30
	maxSlotDurationMinutes = 60
	maxHoursPerDay         = 10
)

// validateGenerationRequest проверяет параметры генерации.
// При нарушении слоты не производятся вообще
func validateGenerationRequest(req in.GenerateAppointmentsRequest, now time.Time) *domain.Error {
	if req.HoursPerDay <= 0 || req.HoursPerDay > maxHoursPerDay {
		return domain.NewError(domain.ErrInvalidRequest, "Invalid number of Hours Per Day.")
	}
	if req.Duration < minSlotDurationMinutes || req.Duration > maxSlotDurationMinutes {
		return domain.NewError(domain.ErrInvalidRequest, "Invalid appointment duration.")
	}
	if utils.StartCurrentDay(req.StartDate).Before(utils.StartCurrentDay(now)) {
		return domain.NewError(domain.ErrInvalidRequest, "Start date cannot be in past.")
	}
	if req.EndDate.Before(req.StartDate) {
		return domain.NewError(domain.ErrInvalidRequest, "End date cannot be before start date.")
	}
	// Дневной бюджет должен делиться на длительность слота нацело,
	// иначе счетчик остатка никогда не дойдет до нуля
	if (req.HoursPerDay*60)%req.Duration != 0 {
		return domain.NewError(domain.ErrInvalidRequest, "Working hours must be divisible by appointment duration.")
	}
	return nil
}

// generateCandidates детерминированно строит упорядоченную по времени сетку
// окон-кандидатов. Внутри каждого дня каждое третье окно помечается
// перерывом: два рабочих окна, затем Coffee Break, и так по кругу
func generateCandidates(req in.GenerateAppointmentsRequest) []domain.CandidateSlot {
	candidates := make([]domain.CandidateSlot, 0)
	slotDuration := time.Duration(req.Duration) * time.Minute

	firstDay := utils.StartCurrentDay(req.StartDate)
	lastDay := utils.StartCurrentDay(req.EndDate)

	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		cursor := day.Add(workdayStartHour * time.Hour)
		budget := req.HoursPerDay * 60
		coffeeBreak := 0

		for budget > 0 {
			candidate := domain.CandidateSlot{
				DoctorID:  req.DoctorID,
				StartTime: cursor,
				EndTime:   cursor.Add(slotDuration),
			}
			if coffeeBreak == 2 {
				candidate.Break = true
				coffeeBreak = 0
			} else {
				coffeeBreak++
			}
			candidates = append(candidates, candidate)

			cursor = candidate.EndTime
			budget -= req.Duration
		}
	}

	return candidates
}

// CreateAppointments генерирует сетку слотов для врача, сверяет ее с уже
// существующими слотами и атомарно фиксирует пакет в хранилище
func (s *AppointmentService) CreateAppointments(ctx context.Context, req in.GenerateAppointmentsRequest) (*domain.GenerationResult, error) {
	s.logger.Info("appointments.generate.started", out.LogFields{
		"doctorId":    req.DoctorID,
		"startDate":   req.StartDate,
		"endDate":     req.EndDate,
		"duration":    req.Duration,
		"hoursPerDay": req.HoursPerDay,
	})

	if err := validateGenerationRequest(req, s.now()); err != nil {
		s.logger.Warn("appointments.generate.invalid_request", out.LogFields{
			"doctorId": req.DoctorID,
			"error":    err.Message,
		})
		return nil, err
	}

	doctor, err := s.storagePort.GetDoctor(ctx, req.DoctorID)
	if err != nil {
		s.logger.Error("appointments.generate.doctor.fetch_failed", out.LogFields{
			"doctorId": req.DoctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("appointments.generate.doctor.fetch_failed: %w", err)
	}
	if doctor == nil {
		return nil, domain.NewError(domain.ErrDoctorNotFound, "Unable to create appointments because doctor doesn't exists.")
	}

	existing, err := s.loadDoctorAppointments(ctx, req.DoctorID)
	if err != nil {
		s.logger.Error("appointments.generate.existing.fetch_failed", out.LogFields{
			"doctorId": req.DoctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	candidates := generateCandidates(req)
	reconciled := reconcile(candidates, existing, s.now())

	if len(reconciled.ordered) == 0 {
		return nil, domain.NewError(domain.ErrNoAppointmentsGenerated, "Unable to create appointments for doctor with id: %s", req.DoctorID)
	}

	// Фиксируем пакет одной транзакцией: либо все, либо ничего
	if err := s.storagePort.CommitGeneration(ctx, reconciled.inserts, reconciled.updates); err != nil {
		s.logger.Error("appointments.generate.commit_failed", out.LogFields{
			"doctorId": req.DoctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("appointments.generate.commit_failed: %w", err)
	}

	s.invalidateDoctorCache(ctx, req.DoctorID)

	result := &domain.GenerationResult{
		Appointments: make([]domain.Appointment, 0, len(reconciled.ordered)),
		Conflicts:    reconciled.conflicts,
	}
	for _, appointment := range reconciled.ordered {
		result.Appointments = append(result.Appointments, *appointment)
	}

	s.logger.Info("appointments.generate.finished", out.LogFields{
		"doctorId":  req.DoctorID,
		"total":     len(result.Appointments),
		"inserted":  len(reconciled.inserts),
		"updated":   len(reconciled.updates),
		"conflicts": len(reconciled.conflicts),
	})

	return result, nil
}
