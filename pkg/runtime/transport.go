package runtime

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/promptforge/promptforge/pkg/config"
	"github.com/promptforge/promptforge/pkg/health"
)

// Transport wraps a live MCP server in a client-facing protocol mechanism.
// Start returns once the transport is accepting traffic; failures after that
// surface on Err. Stop is graceful and must not hang the process.
type Transport interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Err() <-chan error
}

// newTransport maps a transport kind to a concrete transport. The set is
// closed; the config layer validates it eagerly, so the default branch only
// fires when a caller bypasses validation.
func newTransport(cfg *config.Config, server *mcp.Server, probe *health.Probe, logger *zap.Logger) (Transport, error) {
	switch cfg.Server.Transport {
	case config.TransportStdio:
		return newStdioTransport(server, logger), nil
	case config.TransportStreamableHTTP:
		return newHTTPTransport(cfg.Server.HTTP, server, probe, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedTransport, cfg.Server.Transport)
	}
}
