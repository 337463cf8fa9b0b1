package core

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"paymux/internal/health"
	"paymux/internal/ledger"
	"paymux/internal/service/provider"
)

const retryDelay = 100 * time.Millisecond

type dispatcher struct {
	app        *App
	retryDelay time.Duration
}

type IDispatcher interface {
	Start(ctx context.Context, amountGoroutines int)
}

func NewDispatcher(app *App) IDispatcher {
	return &dispatcher{app, retryDelay}
}

func (d *dispatcher) Start(ctx context.Context, amountGoroutines int) {
	for i := 0; i < amountGoroutines; i++ {
		go d.dispatch(ctx, i)
	}
	log.Info().Int("goroutines", amountGoroutines).Msg("Dispatcher started")
}

func (d *dispatcher) dispatch(ctx context.Context, workerId int) {
	for {
		payment, ok := d.app.Queue.Consume(ctx)
		if !ok {
			log.Debug().Int("worker", workerId).Msg("Dispatch worker shutting down")
			return
		}
		d.deliver(ctx, payment)
	}
}

// deliver retries a payment until a processor accepts it or rejects it as a
// duplicate. There is deliberately no attempt cap and no backoff growth; the
// routing decision is re-evaluated on every attempt so a payment can switch
// processors mid-sequence as health changes.
//
// Duplicate suppression relies entirely on the 422 classification: if a
// submission times out after the processor actually accepted it, the retry
// only stays safe because the processor deduplicates by correlation id.
func (d *dispatcher) deliver(ctx context.Context, payment *Payment) {
	for {
		if ok := d.attempt(payment); ok {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(d.retryDelay):
		}
	}
}

// attempt reports whether the payment reached a terminal outcome.
func (d *dispatcher) attempt(payment *Payment) bool {
	processor, err := health.SelectProcessor(d.app.Health.Current())
	if err != nil {
		return false
	}

	requestedAt := time.Now().UTC().Truncate(time.Second)
	err = d.app.ServiceFor(processor).PostPayment(payment.CorrelationId, payment.Amount, requestedAt)
	if err != nil {
		if errors.Is(err, provider.ErrDuplicate) {
			// The processor already holds this payment; no local record.
			log.Warn().Str("correlationId", payment.CorrelationId).Msg("Payment already exists")
			return true
		}
		return false
	}

	d.app.Ledger.Insert(ledger.Record{
		Amount:      payment.Amount,
		RequestedAt: requestedAt.UnixMilli(),
		Processor:   processor,
	})
	return true
}
