package protocol

import (
	"encoding/binary"
	"errors"
	"math"

	"paymux/internal/core"
)

var ErrMalformedPayment = errors.New("malformed payment encoding")

// EncodePayment renders the compact wire form of a payment:
// u8 correlation-id length, raw id bytes, f64 amount bits. Big-endian,
// no terminators.
func EncodePayment(p *core.Payment) ([]byte, error) {
	if len(p.CorrelationId) > math.MaxUint8 {
		return nil, ErrMalformedPayment
	}
	buf := make([]byte, 0, 1+len(p.CorrelationId)+8)
	buf = append(buf, byte(len(p.CorrelationId)))
	buf = append(buf, p.CorrelationId...)
	buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(p.Amount))
	return buf, nil
}

func DecodePayment(data []byte) (*core.Payment, error) {
	if len(data) < 1 {
		return nil, ErrMalformedPayment
	}
	idLen := int(data[0])
	if len(data) != 1+idLen+8 {
		return nil, ErrMalformedPayment
	}
	return &core.Payment{
		CorrelationId: string(data[1 : 1+idLen]),
		Amount:        math.Float64frombits(binary.BigEndian.Uint64(data[1+idLen:])),
	}, nil
}
