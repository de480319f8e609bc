package services

import (
	"context"
	"testing"
	"time"

	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/in"
)

// filterFixture наполняет хранилище слотами двух врачей
// вокруг testNow (2022-09-19): позавчера, вчера и завтра
func filterFixture(store *stubStorage) {
	patientID := "p1"
	store.appointments = []domain.Appointment{
		{
			ID:        1,
			StartTime: time.Date(2022, 9, 17, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2022, 9, 17, 8, 30, 0, 0, time.UTC),
			DoctorID:  "d1",
		},
		{
			ID:        2,
			StartTime: time.Date(2022, 9, 18, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2022, 9, 18, 8, 30, 0, 0, time.UTC),
			DoctorID:  "d1",
			PatientID: &patientID,
		},
		{
			ID:        3,
			StartTime: time.Date(2022, 9, 20, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2022, 9, 20, 8, 30, 0, 0, time.UTC),
			DoctorID:  "d1",
		},
		{
			ID:        4,
			StartTime: time.Date(2022, 9, 20, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2022, 9, 20, 8, 30, 0, 0, time.UTC),
			DoctorID:  "d2",
		},
	}
	store.nextID = 5
}

func appointmentIDs(appointments []domain.Appointment) []int64 {
	ids := make([]int64, 0, len(appointments))
	for _, appointment := range appointments {
		ids = append(ids, appointment.ID)
	}
	return ids
}

func TestListAppointments(t *testing.T) {
	t.Run("missing role", func(t *testing.T) {
		store := newStubStorage()
		filterFixture(store)
		service := newTestService(store)

		_, err := service.ListAppointments(context.Background(), "", "d1")
		requireDomainError(t, err, domain.ErrNoRole)
	})

	t.Run("technician sees everything", func(t *testing.T) {
		store := newStubStorage()
		filterFixture(store)
		service := newTestService(store)

		appointments, err := service.ListAppointments(context.Background(), domain.RoleTechnician, "t1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(appointments) != 4 {
			t.Fatalf("expected all 4 appointments, got %v", appointmentIDs(appointments))
		}
	})

	t.Run("doctor sees own slots from yesterday onward", func(t *testing.T) {
		store := newStubStorage()
		filterFixture(store)
		service := newTestService(store)

		appointments, err := service.ListAppointments(context.Background(), domain.RoleDoctor, "d1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Слот за 17-е число уже скрыт, чужой врач d2 не виден
		got := appointmentIDs(appointments)
		if len(got) != 2 || got[0] != 2 || got[1] != 3 {
			t.Fatalf("expected ids [2 3], got %v", got)
		}
	})

	t.Run("patient sees only own bookings", func(t *testing.T) {
		store := newStubStorage()
		filterFixture(store)
		service := newTestService(store)

		appointments, err := service.ListAppointments(context.Background(), domain.RolePatient, "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(appointments) != 1 || appointments[0].ID != 2 {
			t.Fatalf("expected only appointment 2, got %v", appointmentIDs(appointments))
		}
	})

	t.Run("empty result is an error", func(t *testing.T) {
		service := newTestService(newStubStorage())
		_, err := service.ListAppointments(context.Background(), domain.RoleTechnician, "t1")
		requireDomainError(t, err, domain.ErrNoAppointmentsFound)
	})
}

func TestListAppointmentsInPeriod(t *testing.T) {
	period := func(from, to time.Time) in.AppointmentFilter {
		return in.AppointmentFilter{StartDate: from, EndDate: to}
	}

	t.Run("scenario: inverted range fails before any data is read", func(t *testing.T) {
		store := newStubStorage()
		filterFixture(store)
		service := newTestService(store)

		_, err := service.ListAppointmentsInPeriod(
			context.Background(),
			period(time.Date(2022, 9, 21, 0, 0, 0, 0, time.UTC), time.Date(2022, 9, 17, 0, 0, 0, 0, time.UTC)),
			domain.RoleTechnician,
			"t1",
		)
		requireDomainError(t, err, domain.ErrInvalidRange)
	})

	t.Run("missing role", func(t *testing.T) {
		service := newTestService(newStubStorage())
		_, err := service.ListAppointmentsInPeriod(
			context.Background(),
			period(time.Date(2022, 9, 17, 0, 0, 0, 0, time.UTC), time.Date(2022, 9, 20, 0, 0, 0, 0, time.UTC)),
			"",
			"t1",
		)
		requireDomainError(t, err, domain.ErrNoRole)
	})

	t.Run("bounds include the whole last day", func(t *testing.T) {
		store := newStubStorage()
		filterFixture(store)
		service := newTestService(store)

		// endDate указывает на полночь 20-го, но слоты 20-го в 08:00 попадают
		appointments, err := service.ListAppointmentsInPeriod(
			context.Background(),
			period(time.Date(2022, 9, 18, 0, 0, 0, 0, time.UTC), time.Date(2022, 9, 20, 0, 0, 0, 0, time.UTC)),
			domain.RoleTechnician,
			"t1",
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := appointmentIDs(appointments)
		if len(got) != 3 || got[0] != 2 || got[1] != 3 || got[2] != 4 {
			t.Fatalf("expected ids [2 3 4], got %v", got)
		}
	})

	t.Run("target doctor narrows the grid", func(t *testing.T) {
		store := newStubStorage()
		filterFixture(store)
		service := newTestService(store)

		filter := period(time.Date(2022, 9, 17, 0, 0, 0, 0, time.UTC), time.Date(2022, 9, 20, 0, 0, 0, 0, time.UTC))
		filter.UserID = "d2"
		appointments, err := service.ListAppointmentsInPeriod(context.Background(), filter, domain.RoleDoctor, "d1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(appointments) != 1 || appointments[0].ID != 4 {
			t.Fatalf("expected only appointment 4, got %v", appointmentIDs(appointments))
		}
	})

	t.Run("patient is limited to own bookings regardless of filter", func(t *testing.T) {
		store := newStubStorage()
		filterFixture(store)
		service := newTestService(store)

		filter := period(time.Date(2022, 9, 17, 0, 0, 0, 0, time.UTC), time.Date(2022, 9, 20, 0, 0, 0, 0, time.UTC))
		filter.UserID = "d1"
		appointments, err := service.ListAppointmentsInPeriod(context.Background(), filter, domain.RolePatient, "p1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(appointments) != 1 || appointments[0].ID != 2 {
			t.Fatalf("expected only appointment 2, got %v", appointmentIDs(appointments))
		}
	})

	t.Run("empty period is an error", func(t *testing.T) {
		store := newStubStorage()
		filterFixture(store)
		service := newTestService(store)

		_, err := service.ListAppointmentsInPeriod(
			context.Background(),
			period(time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2022, 10, 2, 0, 0, 0, 0, time.UTC)),
			domain.RoleTechnician,
			"t1",
		)
		requireDomainError(t, err, domain.ErrNoAppointmentsFound)
	})
}
