package core

import "context"

type queue struct {
	items chan *Payment
}

type IQueue interface {
	Publish(p *Payment)
	Consume(ctx context.Context) (*Payment, bool)
}

func NewQueue(bufferSize int) IQueue {
	return &queue{
		items: make(chan *Payment, bufferSize),
	}
}

// Publish blocks when the buffer is full. Backpressure on the protocol loop
// beats dropping a payment.
func (q *queue) Publish(p *Payment) {
	q.items <- p
}

func (q *queue) Consume(ctx context.Context) (*Payment, bool) {
	select {
	case <-ctx.Done():
		return nil, false
	case p := <-q.items:
		return p, true
	}
}
