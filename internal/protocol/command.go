package protocol

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/rs/zerolog/log"

	"paymux/internal/core"
)

const (
	CmdPutOpcode   byte = 42
	CmdGetOpcode   byte = 43
	CmdPurgeOpcode byte = 44
)

// ICommand is the closed command union: one variant per opcode, one
// Execute per variant. Commands live only for the duration of a single
// request.
type ICommand interface {
	Execute(w *bufio.Writer, app *core.App) error
}

type PutCommand struct {
	Payment *core.Payment
}

type GetCommand struct {
	StartMs int64
	EndMs   int64
}

type PurgeCommand struct{}

// ReadCommand reads one opcode and its body from the stream. The opcode to
// variant mapping lives only here. Any error is fatal to the connection.
func ReadCommand(r *bufio.Reader) (ICommand, error) {
	opcode, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	switch opcode {
	case CmdPutOpcode:
		return readPut(r)
	case CmdGetOpcode:
		return readGet(r)
	case CmdPurgeOpcode:
		return &PurgeCommand{}, nil
	default:
		return nil, fmt.Errorf("unknown command opcode: %d", opcode)
	}
}

func readPut(r *bufio.Reader) (*PutCommand, error) {
	var size uint16
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return nil, err
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	payment, err := DecodePayment(data)
	if err != nil {
		return nil, err
	}
	return &PutCommand{Payment: payment}, nil
}

func readGet(r *bufio.Reader) (*GetCommand, error) {
	var bounds [2]int64
	if err := binary.Read(r, binary.BigEndian, &bounds); err != nil {
		return nil, err
	}
	return &GetCommand{StartMs: bounds[0], EndMs: bounds[1]}, nil
}

// Execute only hands the payment to the submission queue; the caller learns
// nothing about eventual delivery beyond "accepted for processing".
func (c *PutCommand) Execute(w *bufio.Writer, app *core.App) error {
	app.Queue.Publish(c.Payment)
	return nil
}

func (c *GetCommand) Execute(w *bufio.Writer, app *core.App) error {
	body := app.Ledger.QueryRange(c.StartMs, c.EndMs).Body()
	if len(body) > math.MaxUint16 {
		return fmt.Errorf("summary body too large: %d bytes", len(body))
	}
	if err := binary.Write(w, binary.BigEndian, uint16(len(body))); err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	return w.Flush()
}

// Execute purges the upstream processors best-effort before clearing the
// local ledger; upstream failures are logged and ignored.
func (c *PurgeCommand) Execute(w *bufio.Writer, app *core.App) error {
	if err := app.DefaultService.Purge(); err != nil {
		log.Debug().Err(err).Msg("default processor purge failed")
	}
	if err := app.FallbackService.Purge(); err != nil {
		log.Debug().Err(err).Msg("fallback processor purge failed")
	}
	app.Ledger.Clear()
	return nil
}
