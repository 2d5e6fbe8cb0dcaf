package runtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/promptforge/promptforge/pkg/config"
	"github.com/promptforge/promptforge/pkg/health"
)

// httpTransport serves the MCP protocol over streamable HTTP, with optional
// health probe endpoints on the same listener.
type httpTransport struct {
	cfg    *config.HTTPConfig
	server *mcp.Server
	probe  *health.Probe
	logger *zap.Logger
	srv    *http.Server
	errCh  chan error
}

var _ Transport = &httpTransport{}

func newHTTPTransport(cfg *config.HTTPConfig, server *mcp.Server, probe *health.Probe, logger *zap.Logger) *httpTransport {
	return &httpTransport{
		cfg:    cfg,
		server: server,
		probe:  probe,
		logger: logger,
		errCh:  make(chan error, 1),
	}
}

func (t *httpTransport) Start(ctx context.Context) error {
	stateless := t.cfg.Stateless != nil && *t.cfg.Stateless

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return t.server
	}, &mcp.StreamableHTTPOptions{
		Stateless: stateless,
	})

	mux := http.NewServeMux()
	mux.Handle(t.cfg.BasePath, handler)
	t.logger.Debug("registered MCP handler", zap.String("path", t.cfg.BasePath))

	if t.cfg.Health != nil && t.cfg.Health.Enabled != nil && *t.cfg.Health.Enabled {
		t.probe.Register(mux, t.cfg.Health)
		t.logger.Debug("registered health probes",
			zap.String("liveness_path", t.cfg.Health.LivenessPath),
			zap.String("readiness_path", t.cfg.Health.ReadinessPath))
	}

	t.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", t.cfg.Port),
		Handler: mux,
	}

	t.logger.Info("starting streamable HTTP transport", zap.Int("port", t.cfg.Port), zap.Bool("stateless", stateless))
	go func() {
		err := t.srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logger.Error("HTTP server error", zap.Error(err))
			t.errCh <- err
		}
	}()

	return nil
}

func (t *httpTransport) Stop(ctx context.Context) error {
	if t.srv == nil {
		return nil
	}

	t.logger.Info("shutting down HTTP transport")
	if err := t.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}

func (t *httpTransport) Err() <-chan error {
	return t.errCh
}
