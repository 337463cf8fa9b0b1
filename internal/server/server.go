package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"os"

	"github.com/rs/zerolog/log"

	"paymux/internal/core"
	"paymux/internal/protocol"
)

type commandServer struct {
	app *core.App
}

type ICommandServer interface {
	Serve(ctx context.Context, listener net.Listener) error
}

func NewCommandServer(app *core.App) ICommandServer {
	return &commandServer{app}
}

// Listen binds the Unix-domain socket, unlinking any stale file first and
// opening permissions so the front API container can reach it.
func Listen(udsPath string) (net.Listener, error) {
	_ = os.Remove(udsPath)
	listener, err := net.Listen("unix", udsPath)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(udsPath, 0o666); err != nil {
		listener.Close()
		return nil, err
	}
	return listener, nil
}

// Serve accepts connections until the context is cancelled or the listener
// is closed. Each connection runs an independent command loop; one
// connection dying never affects another.
func (s *commandServer) Serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		go s.handleConnection(conn)
	}
}

func (s *commandServer) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	writer := bufio.NewWriter(conn)

	for {
		command, err := protocol.ReadCommand(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn().Err(err).Msg("Connection terminated on protocol error")
			}
			return
		}
		if err := command.Execute(writer, s.app); err != nil {
			log.Error().Err(err).Msg("Command execution failed")
			return
		}
	}
}
