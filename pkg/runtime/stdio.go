package runtime

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// stdioTransport serves the MCP protocol over stdin/stdout. Stdout belongs to
// the protocol; all diagnostics go through the logger, which writes to stderr.
type stdioTransport struct {
	server *mcp.Server
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}
	errCh  chan error
}

var _ Transport = &stdioTransport{}

func newStdioTransport(server *mcp.Server, logger *zap.Logger) *stdioTransport {
	return &stdioTransport{
		server: server,
		logger: logger,
		done:   make(chan struct{}),
		errCh:  make(chan error, 1),
	}
}

func (t *stdioTransport) Start(ctx context.Context) error {
	ctx, t.cancel = context.WithCancel(ctx)

	t.logger.Info("starting stdio transport")
	go func() {
		defer close(t.done)
		err := t.server.Run(ctx, &mcp.StdioTransport{})
		if err != nil && !errors.Is(err, context.Canceled) {
			t.logger.Error("stdio transport failed", zap.Error(err))
			t.errCh <- err
			return
		}
		t.logger.Debug("stdio transport finished")
	}()

	return nil
}

func (t *stdioTransport) Stop(ctx context.Context) error {
	if t.cancel != nil {
		t.cancel()
	}

	select {
	case <-t.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (t *stdioTransport) Err() <-chan error {
	return t.errCh
}
