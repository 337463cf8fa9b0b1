package provider

import "errors"

type ServiceHealthResponse struct {
	Failing         bool `json:"failing"`
	MinResponseTime int  `json:"minResponseTime"`
}

type ProcessorType string

const (
	DefaultProcessor  ProcessorType = "default"
	FallbackProcessor ProcessorType = "fallback"
)

var (
	// ErrDuplicate means the processor already holds a payment with this
	// correlation id (HTTP 422). Terminal, never retried.
	ErrDuplicate = errors.New("payment already processed by the provider")
	// ErrUnavailable covers network failures and non-2xx responses other
	// than 422. Always retryable.
	ErrUnavailable = errors.New("payment processor unavailable")
)
