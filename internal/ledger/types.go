package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"paymux/internal/service/provider"
)

type Record struct {
	Amount      float64
	RequestedAt int64
	Processor   provider.ProcessorType
}

type ProcessorSummary struct {
	TotalRequests int
	TotalAmount   decimal.Decimal
}

type RangeSummary struct {
	Default  ProcessorSummary
	Fallback ProcessorSummary
}

// Body renders the summary as the fixed-shape JSON object the protocol
// returns, with amounts formatted to exactly two decimal digits.
func (s *RangeSummary) Body() []byte {
	return fmt.Appendf(nil,
		`{"default":{"totalRequests":%d,"totalAmount":%s},"fallback":{"totalRequests":%d,"totalAmount":%s}}`,
		s.Default.TotalRequests, s.Default.TotalAmount.StringFixed(2),
		s.Fallback.TotalRequests, s.Fallback.TotalAmount.StringFixed(2),
	)
}
