package cache

import (
	"context"
	"testing"
	"time"

	"github.com/suchimauz/his-appointment-scheduler/internal/config"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/out"
)

type nopLogger struct{}

func (nopLogger) Debug(string, out.LogFields)               {}
func (nopLogger) Info(string, out.LogFields)                {}
func (nopLogger) Warn(string, out.LogFields)                {}
func (nopLogger) Error(string, out.LogFields)               {}
func (l nopLogger) WithFields(out.LogFields) out.LoggerPort { return l }
func (l nopLogger) WithModule(string) out.LoggerPort        { return l }

func newTestCache(t *testing.T, size int) *CacheAdapter {
	t.Helper()

	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.Size = size

	adapter, err := NewCacheAdapter(cfg, nopLogger{})
	if err != nil {
		t.Fatalf("failed to init cache: %v", err)
	}
	return adapter
}

func sampleAppointments(doctorID string) []domain.Appointment {
	return []domain.Appointment{
		{
			ID:        1,
			StartTime: time.Date(2022, 9, 20, 8, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2022, 9, 20, 8, 30, 0, 0, time.UTC),
			DoctorID:  doctorID,
		},
	}
}

func TestCacheAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled cache yields nil adapter", func(t *testing.T) {
		cfg := &config.Config{}
		adapter, err := NewCacheAdapter(cfg, nopLogger{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if adapter != nil {
			t.Fatal("expected nil adapter when cache is disabled")
		}
	})

	t.Run("store and get", func(t *testing.T) {
		adapter := newTestCache(t, 10)

		if _, exists := adapter.GetDoctorAppointments(ctx, "d1"); exists {
			t.Fatal("expected miss on empty cache")
		}

		adapter.StoreDoctorAppointments(ctx, "d1", sampleAppointments("d1"))
		appointments, exists := adapter.GetDoctorAppointments(ctx, "d1")
		if !exists {
			t.Fatal("expected hit after store")
		}
		if len(appointments) != 1 || appointments[0].DoctorID != "d1" {
			t.Fatalf("unexpected cached value: %+v", appointments)
		}
	})

	t.Run("stored slice is a copy", func(t *testing.T) {
		adapter := newTestCache(t, 10)

		source := sampleAppointments("d1")
		adapter.StoreDoctorAppointments(ctx, "d1", source)
		source[0].Note = "mutated"

		appointments, _ := adapter.GetDoctorAppointments(ctx, "d1")
		if appointments[0].Note != "" {
			t.Error("cache content must not share memory with the caller")
		}
	})

	t.Run("invalidate doctor removes only that key", func(t *testing.T) {
		adapter := newTestCache(t, 10)
		adapter.StoreDoctorAppointments(ctx, "d1", sampleAppointments("d1"))
		adapter.StoreDoctorAppointments(ctx, "d2", sampleAppointments("d2"))

		adapter.InvalidateDoctor(ctx, "d1")

		if _, exists := adapter.GetDoctorAppointments(ctx, "d1"); exists {
			t.Error("d1 must be invalidated")
		}
		if _, exists := adapter.GetDoctorAppointments(ctx, "d2"); !exists {
			t.Error("d2 must survive targeted invalidation")
		}
	})

	t.Run("invalidate all purges everything", func(t *testing.T) {
		adapter := newTestCache(t, 10)
		adapter.StoreDoctorAppointments(ctx, "d1", sampleAppointments("d1"))
		adapter.StoreDoctorAppointments(ctx, "d2", sampleAppointments("d2"))

		adapter.InvalidateAll(ctx)

		if _, exists := adapter.GetDoctorAppointments(ctx, "d1"); exists {
			t.Error("d1 must be purged")
		}
		if _, exists := adapter.GetDoctorAppointments(ctx, "d2"); exists {
			t.Error("d2 must be purged")
		}
	})

	t.Run("oldest entry is evicted at capacity", func(t *testing.T) {
		adapter := newTestCache(t, 2)
		adapter.StoreDoctorAppointments(ctx, "d1", sampleAppointments("d1"))
		adapter.StoreDoctorAppointments(ctx, "d2", sampleAppointments("d2"))
		adapter.StoreDoctorAppointments(ctx, "d3", sampleAppointments("d3"))

		if _, exists := adapter.GetDoctorAppointments(ctx, "d1"); exists {
			t.Error("oldest entry must be evicted")
		}
		if _, exists := adapter.GetDoctorAppointments(ctx, "d3"); !exists {
			t.Error("newest entry must be present")
		}
	})
}
