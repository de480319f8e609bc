package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/his-appointment-scheduler/internal/config"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/ports/out"
)

// CacheAdapter - LRU-кэш списков слотов, ключ - идентификатор врача
type CacheAdapter struct {
	cache  *lru.Cache[string, []domain.Appointment]
	mu     sync.RWMutex
	logger out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	cache, err := lru.New[string, []domain.Appointment](cfg.Cache.Size)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.Size,
		})
		return nil, err
	}

	return &CacheAdapter{
		cache:  cache,
		logger: logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetDoctorAppointments(ctx context.Context, doctorID string) ([]domain.Appointment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	appointments, exists := c.cache.Get(doctorID)
	if !exists {
		c.logger.Debug("cache.get.miss", out.LogFields{
			"doctorId": doctorID,
		})
		return nil, false
	}

	c.logger.Debug("cache.get.hit", out.LogFields{
		"doctorId": doctorID,
		"count":    len(appointments),
	})
	return appointments, true
}

func (c *CacheAdapter) StoreDoctorAppointments(ctx context.Context, doctorID string, appointments []domain.Appointment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.store", out.LogFields{
		"doctorId": doctorID,
		"count":    len(appointments),
	})

	// Храним копию, чтобы мутации снаружи не портили кэш
	stored := make([]domain.Appointment, len(appointments))
	copy(stored, appointments)

	c.cache.Add(doctorID, stored)
}

func (c *CacheAdapter) InvalidateDoctor(ctx context.Context, doctorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Remove(doctorID)
}

func (c *CacheAdapter) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.purge", out.LogFields{})
	c.cache.Purge()
}
