package health

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"paymux/internal/service/provider"
)

func TestSelectPrefersDefaultWhenViable(t *testing.T) {
	snapshot := Snapshot{
		Default:  provider.ServiceHealthResponse{Failing: false, MinResponseTime: 5000},
		Fallback: provider.ServiceHealthResponse{Failing: false, MinResponseTime: 10},
	}

	processor, err := SelectProcessor(snapshot)

	assert.NoError(t, err)
	assert.Equal(t, provider.DefaultProcessor, processor)
}

func TestSelectFallsBackWhenDefaultFailing(t *testing.T) {
	snapshot := Snapshot{
		Default:  provider.ServiceHealthResponse{Failing: true},
		Fallback: provider.ServiceHealthResponse{Failing: false, MinResponseTime: 3000},
	}

	processor, err := SelectProcessor(snapshot)

	assert.NoError(t, err)
	assert.Equal(t, provider.FallbackProcessor, processor)
}

func TestSelectFallsBackWhenDefaultTooSlow(t *testing.T) {
	snapshot := Snapshot{
		Default:  provider.ServiceHealthResponse{Failing: false, MinResponseTime: ResponseTimeCeilingMs + 1},
		Fallback: provider.ServiceHealthResponse{Failing: false, MinResponseTime: 200},
	}

	processor, err := SelectProcessor(snapshot)

	assert.NoError(t, err)
	assert.Equal(t, provider.FallbackProcessor, processor)
}

func TestSelectFailsWhenNeitherViable(t *testing.T) {
	snapshot := Snapshot{
		Default:  provider.ServiceHealthResponse{Failing: true},
		Fallback: provider.ServiceHealthResponse{Failing: true},
	}

	_, err := SelectProcessor(snapshot)

	assert.ErrorIs(t, err, ErrNoProcessorAvailable)
}

func TestSelectZeroSnapshotIsViable(t *testing.T) {
	processor, err := SelectProcessor(Snapshot{})

	assert.NoError(t, err)
	assert.Equal(t, provider.DefaultProcessor, processor)
}

func TestSelectAcceptsThresholdBoundary(t *testing.T) {
	snapshot := Snapshot{
		Default: provider.ServiceHealthResponse{Failing: false, MinResponseTime: ResponseTimeCeilingMs},
	}

	processor, err := SelectProcessor(snapshot)

	assert.NoError(t, err)
	assert.Equal(t, provider.DefaultProcessor, processor)
}
