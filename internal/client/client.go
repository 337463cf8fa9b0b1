package client

import (
	"bufio"
	"encoding/binary"
	"io"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"paymux/internal/core"
	"paymux/internal/protocol"
)

// ProcessorClient speaks the private binary protocol over one persistent
// Unix-domain connection. It is not safe for concurrent use; the pool hands
// each caller an exclusive instance.
type ProcessorClient struct {
	conn   *net.UnixConn
	reader *bufio.Reader
	writer *bufio.Writer
}

func Connect(udsPath string) (*ProcessorClient, error) {
	addr := &net.UnixAddr{Name: udsPath, Net: "unix"}
	conn, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		return nil, err
	}
	return &ProcessorClient{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}, nil
}

func (c *ProcessorClient) PutPayment(payment *core.Payment) error {
	encoded, err := protocol.EncodePayment(payment)
	if err != nil {
		return err
	}
	if err := c.writer.WriteByte(protocol.CmdPutOpcode); err != nil {
		return err
	}
	if err := binary.Write(c.writer, binary.BigEndian, uint16(len(encoded))); err != nil {
		return err
	}
	if _, err := c.writer.Write(encoded); err != nil {
		return err
	}
	return c.writer.Flush()
}

// GetSummaryRange returns the raw JSON summary body for the inclusive
// millisecond range covered by from/to.
func (c *ProcessorClient) GetSummaryRange(from, to time.Time) ([]byte, error) {
	if err := c.writer.WriteByte(protocol.CmdGetOpcode); err != nil {
		return nil, err
	}
	bounds := [2]int64{from.UnixMilli(), to.UnixMilli()}
	if err := binary.Write(c.writer, binary.BigEndian, bounds); err != nil {
		return nil, err
	}
	if err := c.writer.Flush(); err != nil {
		return nil, err
	}

	var size uint16
	if err := binary.Read(c.reader, binary.BigEndian, &size); err != nil {
		return nil, err
	}
	body := make([]byte, size)
	if _, err := io.ReadFull(c.reader, body); err != nil {
		return nil, err
	}
	return body, nil
}

func (c *ProcessorClient) Purge() error {
	if err := c.writer.WriteByte(protocol.CmdPurgeOpcode); err != nil {
		return err
	}
	return c.writer.Flush()
}

func (c *ProcessorClient) Close() error {
	return c.conn.Close()
}

// IsClosed probes connection liveness via the peer credential of the
// socket. A recycled or reset connection fails the probe and gets dropped
// from the pool.
func (c *ProcessorClient) IsClosed() bool {
	raw, err := c.conn.SyscallConn()
	if err != nil {
		return true
	}
	var credErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		_, credErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	return ctrlErr != nil || credErr != nil
}
