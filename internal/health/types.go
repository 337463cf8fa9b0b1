package health

import "paymux/internal/service/provider"

// Snapshot is the latest health view of both processors. It is replaced
// wholesale on every successful monitor cycle; readers never observe a mix
// of two cycles. The zero value ("not failing, zero latency") is the
// authoritative view until the first poll completes.
type Snapshot struct {
	Default  provider.ServiceHealthResponse
	Fallback provider.ServiceHealthResponse
}
