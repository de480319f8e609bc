package out

import (
	"context"

	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
)

// StoragePort - порт хранилища слотов и пользователей.
// Методы поиска возвращают (nil, nil), если запись не найдена
type StoragePort interface {
	// Методы для работы с пользователями
	GetDoctor(ctx context.Context, id string) (*domain.User, error)
	GetPatient(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, user domain.User) error
	DeleteUser(ctx context.Context, id string) error

	// Методы для работы со слотами
	GetAppointment(ctx context.Context, id int64) (*domain.Appointment, error)
	ListAppointments(ctx context.Context) ([]domain.Appointment, error)
	ListDoctorAppointments(ctx context.Context, doctorID string) ([]domain.Appointment, error)
	SaveAppointment(ctx context.Context, appointment *domain.Appointment) error
	UpdateAppointment(ctx context.Context, appointment domain.Appointment) error
	DeleteAppointment(ctx context.Context, id int64) error

	// Атомарная фиксация пакета генерации: либо все вставки и обновления
	// применяются, либо ни одно. Вставленным слотам проставляются ID
	CommitGeneration(ctx context.Context, inserts []*domain.Appointment, updates []domain.Appointment) error

	// Каскадное удаление незавершенных слотов при удалении пользователя,
	// завершенные остаются как история
	DeleteIncompleteByDoctor(ctx context.Context, doctorID string) error
	DeleteIncompleteByPatient(ctx context.Context, patientID string) error
}
