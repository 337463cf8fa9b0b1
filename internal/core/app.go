package core

import (
	"paymux/internal/health"
	"paymux/internal/ledger"
	"paymux/internal/service/provider"
)

// App is the shared service context: every long-lived component is
// constructed around the same instance. It is built once in main and
// injected, never reached through a package-level singleton.
type App struct {
	DefaultService  provider.IPaymentProviderService
	FallbackService provider.IPaymentProviderService
	Ledger          ledger.IPaymentLedger
	Health          health.ISnapshotStore
	Queue           IQueue
}

func NewApp(
	defaultService, fallbackService provider.IPaymentProviderService,
	queueBufferSize int,
) *App {
	return &App{
		DefaultService:  defaultService,
		FallbackService: fallbackService,
		Ledger:          ledger.NewPaymentLedger(),
		Health:          health.NewSnapshotStore(),
		Queue:           NewQueue(queueBufferSize),
	}
}

// ServiceFor maps a routing decision back to the client that reaches it.
func (a *App) ServiceFor(processor provider.ProcessorType) provider.IPaymentProviderService {
	if processor == provider.DefaultProcessor {
		return a.DefaultService
	}
	return a.FallbackService
}
