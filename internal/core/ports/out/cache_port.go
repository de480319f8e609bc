package out

import (
	"context"

	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
)

type CachePort interface {
	// Кэширование списка слотов врача
	GetDoctorAppointments(ctx context.Context, doctorID string) ([]domain.Appointment, bool)
	StoreDoctorAppointments(ctx context.Context, doctorID string, appointments []domain.Appointment)
	InvalidateDoctor(ctx context.Context, doctorID string)

	// Полный сброс - для мутаций, затрагивающих слоты сразу многих врачей
	InvalidateAll(ctx context.Context)
}
