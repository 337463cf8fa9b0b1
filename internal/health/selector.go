package health

import (
	"errors"

	"paymux/internal/service/provider"
)

// ResponseTimeCeilingMs is the viability threshold: a processor reporting a
// latency floor above it is not worth routing to even when it is up.
const ResponseTimeCeilingMs = 10_000

var ErrNoProcessorAvailable = errors.New("no payment processor is available at the moment")

func viable(h provider.ServiceHealthResponse) bool {
	return !h.Failing && h.MinResponseTime <= ResponseTimeCeilingMs
}

// SelectProcessor picks the processor a payment should be routed to, given
// the snapshot it is handed. It prefers the default processor (lower cost)
// and never blocks or mutates state.
func SelectProcessor(snapshot Snapshot) (provider.ProcessorType, error) {
	if viable(snapshot.Default) {
		return provider.DefaultProcessor, nil
	}
	if viable(snapshot.Fallback) {
		return provider.FallbackProcessor, nil
	}
	return "", ErrNoProcessorAvailable
}
