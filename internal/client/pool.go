package client

import (
	"context"

	"github.com/jackc/puddle/v2"
	"github.com/rs/zerolog/log"
)

type clientPool struct {
	pool *puddle.Pool[*ProcessorClient]
}

type IClientPool interface {
	Acquire(ctx context.Context) (*puddle.Resource[*ProcessorClient], error)
	Close()
}

// NewClientPool builds a bounded pool of protocol connections. Connections
// are created on demand and recycled out when the liveness probe fails.
func NewClientPool(udsPath string, maxSize int32) (IClientPool, error) {
	pool, err := puddle.NewPool(&puddle.Config[*ProcessorClient]{
		Constructor: func(ctx context.Context) (*ProcessorClient, error) {
			return Connect(udsPath)
		},
		Destructor: func(c *ProcessorClient) {
			c.Close()
		},
		MaxSize: maxSize,
	})
	if err != nil {
		return nil, err
	}
	return &clientPool{pool}, nil
}

func (p *clientPool) Acquire(ctx context.Context) (*puddle.Resource[*ProcessorClient], error) {
	for {
		resource, err := p.pool.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		if resource.Value().IsClosed() {
			log.Warn().Msg("Recycling dead processor connection")
			resource.Destroy()
			continue
		}
		return resource, nil
	}
}

func (p *clientPool) Close() {
	p.pool.Close()
}
