package protocol

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paymux/internal/core"
	"paymux/internal/ledger"
	"paymux/internal/service/provider"
)

type noopProviderService struct {
	purges atomic.Int32
}

func (s *noopProviderService) GetHealth() (*provider.ServiceHealthResponse, error) {
	return &provider.ServiceHealthResponse{}, nil
}

func (s *noopProviderService) PostPayment(string, float64, time.Time) error { return nil }

func (s *noopProviderService) Purge() error {
	s.purges.Add(1)
	return nil
}

func newProtocolTestApp() *core.App {
	return core.NewApp(&noopProviderService{}, &noopProviderService{}, 16)
}

func TestPaymentCodecRoundTrip(t *testing.T) {
	payment := &core.Payment{CorrelationId: "4a7901b8-7d0d-4f50-8155-64af29c815ef", Amount: 19.90}

	encoded, err := EncodePayment(payment)
	require.NoError(t, err)

	decoded, err := DecodePayment(encoded)
	require.NoError(t, err)
	assert.Equal(t, payment, decoded)
}

func TestDecodePaymentLengthMismatch(t *testing.T) {
	_, err := DecodePayment([]byte{})
	assert.ErrorIs(t, err, ErrMalformedPayment)

	_, err = DecodePayment([]byte{5, 'a', 'b'})
	assert.ErrorIs(t, err, ErrMalformedPayment)
}

func framePut(t *testing.T, payment *core.Payment) []byte {
	t.Helper()
	encoded, err := EncodePayment(payment)
	require.NoError(t, err)

	var buf bytes.Buffer
	buf.WriteByte(CmdPutOpcode)
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint16(len(encoded))))
	buf.Write(encoded)
	return buf.Bytes()
}

func TestReadCommandPut(t *testing.T) {
	payment := &core.Payment{CorrelationId: "c1", Amount: 2.50}
	reader := bufio.NewReader(bytes.NewReader(framePut(t, payment)))

	command, err := ReadCommand(reader)

	require.NoError(t, err)
	put, ok := command.(*PutCommand)
	require.True(t, ok)
	assert.Equal(t, payment, put.Payment)
}

func TestReadCommandGet(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(CmdGetOpcode)
	require.NoError(t, binary.Write(&buf, binary.BigEndian, [2]int64{-100, 2_000_000}))
	reader := bufio.NewReader(&buf)

	command, err := ReadCommand(reader)

	require.NoError(t, err)
	get, ok := command.(*GetCommand)
	require.True(t, ok)
	assert.Equal(t, int64(-100), get.StartMs)
	assert.Equal(t, int64(2_000_000), get.EndMs)
}

func TestReadCommandPurge(t *testing.T) {
	reader := bufio.NewReader(bytes.NewReader([]byte{CmdPurgeOpcode}))

	command, err := ReadCommand(reader)

	require.NoError(t, err)
	assert.IsType(t, &PurgeCommand{}, command)
}

func TestReadCommandUnknownOpcode(t *testing.T) {
	reader := bufio.NewReader(bytes.NewReader([]byte{99}))

	_, err := ReadCommand(reader)

	assert.ErrorContains(t, err, "unknown command opcode")
}

func TestReadCommandShortBody(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(CmdPutOpcode)
	require.NoError(t, binary.Write(&buf, binary.BigEndian, uint16(10)))
	buf.Write([]byte{1, 2, 3})
	reader := bufio.NewReader(&buf)

	_, err := ReadCommand(reader)

	assert.Error(t, err)
}

func TestPutExecuteEnqueues(t *testing.T) {
	app := newProtocolTestApp()
	payment := &core.Payment{CorrelationId: "c1", Amount: 1.00}

	var out bytes.Buffer
	err := (&PutCommand{Payment: payment}).Execute(bufio.NewWriter(&out), app)

	require.NoError(t, err)
	assert.Zero(t, out.Len())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	queued, ok := app.Queue.Consume(ctx)
	require.True(t, ok)
	assert.Equal(t, payment, queued)
}

func TestGetExecuteWritesFramedSummary(t *testing.T) {
	app := newProtocolTestApp()
	app.Ledger.Insert(ledger.Record{Amount: 19.9, RequestedAt: 500, Processor: provider.DefaultProcessor})

	var out bytes.Buffer
	writer := bufio.NewWriter(&out)
	err := (&GetCommand{StartMs: 0, EndMs: math.MaxInt64}).Execute(writer, app)
	require.NoError(t, err)

	raw := out.Bytes()
	require.GreaterOrEqual(t, len(raw), 2)
	size := binary.BigEndian.Uint16(raw[:2])
	body := raw[2:]
	require.Len(t, body, int(size))
	assert.Equal(t,
		`{"default":{"totalRequests":1,"totalAmount":19.90},"fallback":{"totalRequests":0,"totalAmount":0.00}}`,
		string(body),
	)
}

func TestPurgeExecuteClearsLedger(t *testing.T) {
	app := newProtocolTestApp()
	app.Ledger.Insert(ledger.Record{Amount: 5, RequestedAt: 1, Processor: provider.FallbackProcessor})

	var out bytes.Buffer
	err := (&PurgeCommand{}).Execute(bufio.NewWriter(&out), app)

	require.NoError(t, err)
	summary := app.Ledger.QueryRange(0, math.MaxInt64)
	assert.Zero(t, summary.Fallback.TotalRequests)
	assert.Equal(t, int32(1), app.DefaultService.(*noopProviderService).purges.Load())
	assert.Equal(t, int32(1), app.FallbackService.(*noopProviderService).purges.Load())
}
