package in

import (
	"context"

	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
)

type UserUseCase interface {
	RegisterDoctor(ctx context.Context, fullName string) (*domain.User, error)
	RegisterPatient(ctx context.Context, fullName string) (*domain.User, error)

	// Удаление пользователя с каскадным удалением его незавершенных слотов
	RemoveDoctor(ctx context.Context, id string) (string, error)
	RemovePatient(ctx context.Context, id string) (string, error)
}
