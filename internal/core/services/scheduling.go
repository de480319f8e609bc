package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/in"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/out"
)

// Шаблон корректного идентификатора пациента
var patientIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

func (s *AppointmentService) fetchAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.storagePort.GetAppointment(ctx, id)
	if err != nil {
		s.logger.Error("appointments.fetch_failed", out.LogFields{
			"appointmentId": id,
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("appointments.fetch_failed: %w", err)
	}
	return appointment, nil
}

// GetAppointment возвращает один слот по идентификатору
func (s *AppointmentService) GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.fetchAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.NewError(domain.ErrAppointmentNotFound, "Unable to get appointment, because it doesn't exists.")
	}
	return appointment, nil
}

// ScheduleAppointment назначает пациента на свободный слот.
// Слот-перерыв забронировать нельзя
func (s *AppointmentService) ScheduleAppointment(ctx context.Context, req in.ScheduleAppointmentRequest) (*domain.Appointment, error) {
	appointment, err := s.fetchAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.NewError(domain.ErrAppointmentNotFound, "Unable to schedule appointment because it doesn't exists.")
	}

	if appointment.IsBreak() {
		return nil, domain.NewError(domain.ErrAlreadyOnBreak, "You cannot schedule this appointment because doctor is on coffee break as usual.")
	}

	if req.PatientID == "" {
		return nil, domain.NewError(domain.ErrNoPatientSelected, "Unable to schedule appointment because patient is not selected.")
	}

	patient, err := s.storagePort.GetPatient(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("appointments.schedule.patient.fetch_failed: %w", err)
	}
	if patient == nil {
		return nil, domain.NewError(domain.ErrPatientNotFound, "Unable to schedule appointment because patient does not exists.")
	}

	appointment.PatientID = &req.PatientID
	appointment.Note = req.Note
	if err := s.storagePort.UpdateAppointment(ctx, *appointment); err != nil {
		return nil, fmt.Errorf("appointments.schedule.update_failed: %w", err)
	}
	s.invalidateDoctorCache(ctx, appointment.DoctorID)

	s.logger.Info("appointments.scheduled", out.LogFields{
		"appointmentId": appointment.ID,
		"patientId":     req.PatientID,
	})

	return appointment, nil
}

// UpdateAppointment - свободное редактирование слота регистратурой.
// nil PatientID снимает пациента, пустой или некорректный идентификатор
// обновляет только note
func (s *AppointmentService) UpdateAppointment(ctx context.Context, req in.UpdateAppointmentRequest) (*domain.Appointment, error) {
	appointment, err := s.fetchAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.NewError(domain.ErrAppointmentNotFound, "Unable to update appointment because it doesn't exists.")
	}

	switch {
	case req.PatientID == nil:
		appointment.PatientID = nil
		appointment.Note = req.Note
	case *req.PatientID == "" || !patientIDPattern.MatchString(*req.PatientID):
		appointment.Note = req.Note
	default:
		patient, err := s.storagePort.GetPatient(ctx, *req.PatientID)
		if err != nil {
			return nil, fmt.Errorf("appointments.update.patient.fetch_failed: %w", err)
		}
		if patient == nil {
			return nil, domain.NewError(domain.ErrPatientNotFound, "Unable to update patient in appointment because patient doesn't exists.")
		}
		appointment.PatientID = req.PatientID
		appointment.Note = req.Note
	}

	if err := s.storagePort.UpdateAppointment(ctx, *appointment); err != nil {
		return nil, fmt.Errorf("appointments.update_failed: %w", err)
	}
	s.invalidateDoctorCache(ctx, appointment.DoctorID)

	return appointment, nil
}

// CompleteAppointment помечает слот завершенным.
// Разрешено только врачу, которому принадлежит слот
func (s *AppointmentService) CompleteAppointment(ctx context.Context, req in.CompleteAppointmentRequest, callerID string) (*domain.Appointment, error) {
	appointment, err := s.fetchAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, domain.NewError(domain.ErrAppointmentNotFound, "Database does not contain appointment with that id.")
	}

	if appointment.DoctorID != callerID {
		return nil, domain.NewError(domain.ErrNotOwner, "You can't complete this appointment because it's not yours.")
	}

	appointment.Completed = true
	appointment.Note = req.Note
	if err := s.storagePort.UpdateAppointment(ctx, *appointment); err != nil {
		return nil, fmt.Errorf("appointments.complete.update_failed: %w", err)
	}
	s.invalidateDoctorCache(ctx, appointment.DoctorID)

	s.logger.Info("appointments.completed", out.LogFields{
		"appointmentId": appointment.ID,
		"doctorId":      appointment.DoctorID,
	})

	return appointment, nil
}

// DeleteAppointment безусловно удаляет найденный слот
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id int64) (string, error) {
	appointment, err := s.fetchAppointment(ctx, id)
	if err != nil {
		return "", err
	}
	if appointment == nil {
		return "", domain.NewError(domain.ErrAppointmentNotFound, "Unable to delete appointment, because it doesn't exists.")
	}

	if err := s.storagePort.DeleteAppointment(ctx, id); err != nil {
		return "", fmt.Errorf("appointments.delete_failed: %w", err)
	}
	s.invalidateDoctorCache(ctx, appointment.DoctorID)

	return fmt.Sprintf("Appointment with id: %d is deleted successfully.", id), nil
}
