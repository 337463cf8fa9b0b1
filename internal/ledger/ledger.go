package ledger

import (
	"sync"

	"github.com/shopspring/decimal"

	"paymux/internal/service/provider"
)

type paymentLedger struct {
	mu      sync.RWMutex
	records []Record
}

type IPaymentLedger interface {
	Insert(record Record)
	QueryRange(startMs, endMs int64) *RangeSummary
	Clear()
}

func NewPaymentLedger() IPaymentLedger {
	return &paymentLedger{
		records: make([]Record, 0, 4096),
	}
}

func (l *paymentLedger) Insert(record Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
}

// QueryRange aggregates records with startMs <= RequestedAt <= endMs,
// inclusive on both bounds. Amounts are summed as absolute values to guard
// against sign inconsistencies in upstream-reported amounts.
func (l *paymentLedger) QueryRange(startMs, endMs int64) *RangeSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	summary := &RangeSummary{
		Default:  ProcessorSummary{TotalAmount: decimal.Zero},
		Fallback: ProcessorSummary{TotalAmount: decimal.Zero},
	}
	for _, record := range l.records {
		if record.RequestedAt < startMs || record.RequestedAt > endMs {
			continue
		}
		amount := decimal.NewFromFloat(record.Amount).Abs()
		if record.Processor == provider.DefaultProcessor {
			summary.Default.TotalRequests++
			summary.Default.TotalAmount = summary.Default.TotalAmount.Add(amount)
		} else {
			summary.Fallback.TotalRequests++
			summary.Fallback.TotalAmount = summary.Fallback.TotalAmount.Add(amount)
		}
	}
	return summary
}

func (l *paymentLedger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = l.records[:0]
}
