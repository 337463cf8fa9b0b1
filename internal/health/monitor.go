package health

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"paymux/internal/service/provider"
)

const (
	pollInterval = 5 * time.Second
	retryDelay   = 1 * time.Second
)

type healthMonitor struct {
	defaultService  provider.IPaymentProviderService
	fallbackService provider.IPaymentProviderService
	store           ISnapshotStore
	pollInterval    time.Duration
	retryDelay      time.Duration
}

type IHealthMonitor interface {
	Start(ctx context.Context)
	RunCycle() bool
}

func NewHealthMonitor(
	defaultService, fallbackService provider.IPaymentProviderService,
	store ISnapshotStore,
) IHealthMonitor {
	return &healthMonitor{
		defaultService:  defaultService,
		fallbackService: fallbackService,
		store:           store,
		pollInterval:    pollInterval,
		retryDelay:      retryDelay,
	}
}

// Start launches the polling loop. Both processors are probed sequentially;
// a failure on either side discards the whole cycle and keeps the previous
// snapshot authoritative.
func (m *healthMonitor) Start(ctx context.Context) {
	go func() {
		log.Info().Msg("Health monitor started")
		for {
			delay := m.pollInterval
			if !m.RunCycle() {
				delay = m.retryDelay
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}
	}()
}

// RunCycle performs one poll of both processors and reports whether the
// snapshot was replaced.
func (m *healthMonitor) RunCycle() bool {
	defaultHealth, err := m.defaultService.GetHealth()
	if err != nil {
		log.Warn().Err(err).Msg("Health check failed for default processor")
		return false
	}
	fallbackHealth, err := m.fallbackService.GetHealth()
	if err != nil {
		log.Warn().Err(err).Msg("Health check failed for fallback processor")
		return false
	}

	m.store.Set(Snapshot{
		Default:  *defaultHealth,
		Fallback: *fallbackHealth,
	})
	return true
}
