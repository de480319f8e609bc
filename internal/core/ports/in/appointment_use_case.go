package in

import (
	"context"
	"time"

	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
)

// GenerateAppointmentsRequest - параметры генерации сетки слотов.
// Не персистится, живет только в рамках одного вызова
type GenerateAppointmentsRequest struct {
	DoctorID    string
	StartDate   time.Time
	EndDate     time.Time
	Duration    int // минуты на один слот
	HoursPerDay int
}

type ScheduleAppointmentRequest struct {
	AppointmentID int64
	PatientID     string
	Note          string
}

// UpdateAppointmentRequest - свободное редактирование слота регистратурой.
// PatientID == nil явно снимает пациента со слота
type UpdateAppointmentRequest struct {
	AppointmentID int64
	Note          string
	PatientID     *string
}

type CompleteAppointmentRequest struct {
	AppointmentID int64
	Note          string
}

// AppointmentFilter - границы выборки слотов за период.
// Пустой UserID означает "все врачи"
type AppointmentFilter struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
}

type AppointmentUseCase interface {
	// Генерация сетки слотов для врача со сверкой с существующими слотами
	CreateAppointments(ctx context.Context, req GenerateAppointmentsRequest) (*domain.GenerationResult, error)

	// Чтение слотов
	GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error)
	ListAppointments(ctx context.Context, role domain.Role, callerID string) ([]domain.Appointment, error)
	ListAppointmentsInPeriod(ctx context.Context, filter AppointmentFilter, role domain.Role, callerID string) ([]domain.Appointment, error)

	// Операции над отдельными слотами
	ScheduleAppointment(ctx context.Context, req ScheduleAppointmentRequest) (*domain.Appointment, error)
	UpdateAppointment(ctx context.Context, req UpdateAppointmentRequest) (*domain.Appointment, error)
	CompleteAppointment(ctx context.Context, req CompleteAppointmentRequest, callerID string) (*domain.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) (string, error)
}
