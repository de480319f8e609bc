package services

import (
	"context"
	"fmt"

	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/in"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/out"
	"github.com/suchimauz/his-appointment-scheduler/internal/utils"
)

// ListAppointments возвращает слоты, видимые вызывающему по его роли:
// регистратор видит все, врач - свои начиная со вчерашнего дня,
// пациент - только свои
func (s *AppointmentService) ListAppointments(ctx context.Context, role domain.Role, callerID string) ([]domain.Appointment, error) {
	if role == "" {
		return nil, domain.NewError(domain.ErrNoRole, "There is no needed role for given user.")
	}

	appointments, err := s.storagePort.ListAppointments(ctx)
	if err != nil {
		s.logger.Error("appointments.list.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("appointments.list.fetch_failed: %w", err)
	}

	visible := make([]domain.Appointment, 0, len(appointments))
	today := utils.StartCurrentDay(s.now())

	for _, appointment := range appointments {
		switch role {
		case domain.RoleTechnician:
			visible = append(visible, appointment)
		case domain.RoleDoctor:
			// Врачу в общем списке не показываем слоты старше вчерашнего дня
			if appointment.DoctorID == callerID &&
				!utils.StartCurrentDay(appointment.StartTime).AddDate(0, 0, 1).Before(today) {
				visible = append(visible, appointment)
			}
		default:
			if appointment.PatientID != nil && *appointment.PatientID == callerID {
				visible = append(visible, appointment)
			}
		}
	}

	if len(visible) == 0 {
		return nil, domain.NewError(domain.ErrNoAppointmentsFound, "There is no appointments in database.")
	}

	return visible, nil
}

// ListAppointmentsInPeriod сужает множество слотов по временным границам
// и правилам владения для роли вызывающего
func (s *AppointmentService) ListAppointmentsInPeriod(ctx context.Context, filter in.AppointmentFilter, role domain.Role, callerID string) ([]domain.Appointment, error) {
	if role == "" {
		return nil, domain.NewError(domain.ErrNoRole, "There is no needed role for given user.")
	}
	if filter.StartDate.After(filter.EndDate) {
		return nil, domain.NewError(domain.ErrInvalidRange, "Start date can't be after end date.")
	}

	appointments, err := s.storagePort.ListAppointments(ctx)
	if err != nil {
		s.logger.Error("appointments.period.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("appointments.period.fetch_failed: %w", err)
	}

	// Слот попадает в период, если начинается не раньше startDate
	// и его день не позже дня endDate
	lastDay := utils.StartCurrentDay(filter.EndDate)
	inPeriod := func(appointment domain.Appointment) bool {
		return !appointment.StartTime.Before(filter.StartDate) &&
			!utils.StartCurrentDay(appointment.StartTime).After(lastDay)
	}

	visible := make([]domain.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		if !inPeriod(appointment) {
			continue
		}

		switch role {
		case domain.RoleDoctor, domain.RoleTechnician:
			// Явный целевой врач сужает выборку, без него - вся сетка
			if filter.UserID == "" || appointment.DoctorID == filter.UserID {
				visible = append(visible, appointment)
			}
		case domain.RolePatient:
			if appointment.PatientID != nil && *appointment.PatientID == callerID {
				visible = append(visible, appointment)
			}
		}
	}

	if len(visible) == 0 {
		return nil, domain.NewError(domain.ErrNoAppointmentsFound, "There is no appointments for given filters.")
	}

	return visible, nil
}
