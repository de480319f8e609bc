package services

import (
	"context"
	"testing"
	"time"

	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
)

func newTestUserService(store *stubStorage) *UserService {
	return NewUserService(store, nil, nopLogger{})
}

func TestRegisterUsers(t *testing.T) {
	t.Run("doctor gets generated id and role", func(t *testing.T) {
		store := newStubStorage()
		service := newTestUserService(store)

		doctor, err := service.RegisterDoctor(context.Background(), "House M.D.")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doctor.ID == "" {
			t.Error("expected generated id")
		}
		if doctor.Role != domain.RoleDoctor {
			t.Errorf("expected doctor role, got %q", doctor.Role)
		}

		stored, _ := store.GetDoctor(context.Background(), doctor.ID)
		if stored == nil {
			t.Fatal("doctor was not persisted")
		}
	})

	t.Run("patient gets generated id and role", func(t *testing.T) {
		store := newStubStorage()
		service := newTestUserService(store)

		patient, err := service.RegisterPatient(context.Background(), "John Doe")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if patient.Role != domain.RolePatient {
			t.Errorf("expected patient role, got %q", patient.Role)
		}
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		service := newTestUserService(newStubStorage())
		_, err := service.RegisterDoctor(context.Background(), "")
		requireDomainError(t, err, domain.ErrInvalidRequest)
	})

	t.Run("generated ids are unique", func(t *testing.T) {
		store := newStubStorage()
		service := newTestUserService(store)

		first, _ := service.RegisterPatient(context.Background(), "John Doe")
		second, _ := service.RegisterPatient(context.Background(), "John Doe")
		if first.ID == second.ID {
			t.Error("two registrations must not share an id")
		}
	})
}

// cascadeFixture: у врача d1 завершенный и незавершенный слоты,
// незавершенный занят пациентом p1
func cascadeFixture(store *stubStorage) {
	store.addUser("d1", domain.RoleDoctor)
	store.addUser("p1", domain.RolePatient)
	patientID := "p1"
	store.appointments = []domain.Appointment{
		{
			ID:        1,
			StartTime: time.Date(2022, 9, 15, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2022, 9, 15, 8, 30, 0, 0, time.UTC),
			DoctorID:  "d1",
			PatientID: &patientID,
			Completed: true,
		},
		{
			ID:        2,
			StartTime: time.Date(2022, 9, 20, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2022, 9, 20, 8, 30, 0, 0, time.UTC),
			DoctorID:  "d1",
			PatientID: &patientID,
		},
	}
	store.nextID = 3
}

func TestRemoveDoctor(t *testing.T) {
	t.Run("cascade keeps completed history", func(t *testing.T) {
		store := newStubStorage()
		cascadeFixture(store)
		service := newTestUserService(store)

		confirmation, err := service.RemoveDoctor(context.Background(), "d1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if confirmation == "" {
			t.Error("expected confirmation message")
		}

		if doctor, _ := store.GetDoctor(context.Background(), "d1"); doctor != nil {
			t.Error("doctor was not removed")
		}
		// Завершенный слот остается, незавершенный удален
		if len(store.appointments) != 1 || store.appointments[0].ID != 1 {
			t.Fatalf("expected only the completed slot to survive, got %d slots", len(store.appointments))
		}
	})

	t.Run("unknown doctor", func(t *testing.T) {
		service := newTestUserService(newStubStorage())
		_, err := service.RemoveDoctor(context.Background(), "ghost")
		requireDomainError(t, err, domain.ErrDoctorNotFound)
	})
}

func TestRemovePatient(t *testing.T) {
	t.Run("cascade keeps completed history", func(t *testing.T) {
		store := newStubStorage()
		cascadeFixture(store)
		service := newTestUserService(store)

		if _, err := service.RemovePatient(context.Background(), "p1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if patient, _ := store.GetPatient(context.Background(), "p1"); patient != nil {
			t.Error("patient was not removed")
		}
		if len(store.appointments) != 1 || !store.appointments[0].Completed {
			t.Fatalf("expected only the completed slot to survive, got %d slots", len(store.appointments))
		}
	})

	t.Run("unknown patient", func(t *testing.T) {
		service := newTestUserService(newStubStorage())
		_, err := service.RemovePatient(context.Background(), "ghost")
		requireDomainError(t, err, domain.ErrPatientNotFound)
	})
}
