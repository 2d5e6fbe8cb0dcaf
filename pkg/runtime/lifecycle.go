// Package runtime composes a server instance from a storage backend and a
// transport, and owns its start/stop lifecycle. Startup is strictly ordered:
// the storage handle exists before the server is built, and the server is
// live before the transport wraps it. Shutdown reverses only the started
// phases and happens at most once.
package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/promptforge/promptforge/pkg/config"
	"github.com/promptforge/promptforge/pkg/health"
	"github.com/promptforge/promptforge/pkg/runtime/finitestate"
	"github.com/promptforge/promptforge/pkg/storage"
)

// Startup phase names, used in PhaseError.
const (
	PhaseStorage   = "storage"
	PhaseServer    = "server"
	PhaseTransport = "transport"
)

// stopTimeout bounds the shutdown sequence so a stuck transport cannot hang
// the process.
const stopTimeout = 10 * time.Second

// PhaseError reports which startup phase failed. Phases that already
// succeeded are not rolled back; the caller decides what to do with the
// partially started instance.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s phase failed: %s", e.Phase, e.Err.Error())
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Lifecycle owns one storage+server+transport triple. It is created by
// exactly one caller, started once, and stopped at most once; a second stop
// request is a no-op guarded by the state machine, not an error.
type Lifecycle struct {
	cfg     *config.Config
	logger  *zap.Logger
	machine *finitestate.Machine
	probe   *health.Probe

	store     storage.Store
	server    *mcp.Server
	transport Transport

	// factory seams; tests swap these to instrument phase ordering
	newStore     func(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (storage.Store, error)
	newTransport func(cfg *config.Config, server *mcp.Server, probe *health.Probe, logger *zap.Logger) (Transport, error)
}

// NewLifecycle creates a lifecycle for the given config. Nothing is started
// until Start or Run is called.
func NewLifecycle(cfg *config.Config, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		cfg:          cfg,
		logger:       logger,
		machine:      finitestate.New(finitestate.StateCreated, finitestate.LifecycleTransitions),
		probe:        health.NewProbe(),
		newStore:     storage.New,
		newTransport: newTransport,
	}
}

// State returns the current lifecycle state.
func (l *Lifecycle) State() string {
	return l.machine.GetState()
}

// Start brings the instance up in order: storage, then server, then
// transport. A phase failure surfaces as a PhaseError naming the phase;
// phases that already came up stay up.
func (l *Lifecycle) Start(ctx context.Context) error {
	l.logger.Info("starting server",
		zap.String("server_name", l.cfg.Server.Name),
		zap.String("server_version", l.cfg.Server.Version),
		zap.String("transport", l.cfg.Server.Transport),
		zap.String("storage_type", l.cfg.Storage.Type))

	store, err := l.newStore(ctx, l.cfg.Storage, l.logger)
	if err != nil {
		return &PhaseError{Phase: PhaseStorage, Err: err}
	}
	l.store = store
	if err := l.machine.Transition(finitestate.StateStorageReady); err != nil {
		return &PhaseError{Phase: PhaseStorage, Err: err}
	}
	l.logger.Debug("storage ready", zap.String("storage_type", l.cfg.Storage.Type))

	l.server = makeServer(l.cfg, l.store, l.logger)
	if err := l.machine.Transition(finitestate.StateServerReady); err != nil {
		return &PhaseError{Phase: PhaseServer, Err: err}
	}
	l.logger.Debug("server ready")

	transport, err := l.newTransport(l.cfg, l.server, l.probe, l.logger)
	if err != nil {
		return &PhaseError{Phase: PhaseTransport, Err: err}
	}
	if err := transport.Start(ctx); err != nil {
		return &PhaseError{Phase: PhaseTransport, Err: err}
	}
	l.transport = transport
	if err := l.machine.Transition(finitestate.StateTransportReady); err != nil {
		return &PhaseError{Phase: PhaseTransport, Err: err}
	}
	l.logger.Debug("transport ready")

	if err := l.machine.Transition(finitestate.StateRunning); err != nil {
		return &PhaseError{Phase: PhaseTransport, Err: err}
	}
	l.probe.SetReady(true)
	l.logger.Info("server running")
	return nil
}

// Run starts the instance and blocks until the context is canceled (the
// termination signal) or the transport fails, then runs the shutdown
// sequence. Cancellation interrupts only the wait, never an in-flight
// startup phase.
func (l *Lifecycle) Run(ctx context.Context) error {
	if err := l.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		l.logger.Info("received shutdown signal")
		l.Stop()
		return nil
	case err := <-l.transport.Err():
		l.logger.Error("transport failed while running", zap.Error(err))
		l.Stop()
		return err
	}
}

// Stop runs the shutdown sequence exactly once: transport first, then the
// server-side teardown (storage handle). Repeated or concurrent calls are
// no-ops thanks to the state machine's terminal-state check. Shutdown errors
// are logged and swallowed so they can never keep the process alive.
func (l *Lifecycle) Stop() {
	if !l.machine.TransitionBool(finitestate.StateStopping) {
		l.logger.Debug("stop requested but shutdown already ran or instance never started",
			zap.String("state", l.machine.GetState()))
		return
	}

	l.probe.SetReady(false)
	l.logger.Info("stopping server")

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	if l.transport != nil {
		if err := l.transport.Stop(ctx); err != nil {
			l.logger.Error("error stopping transport", zap.Error(err))
		}
	}

	if l.store != nil {
		if err := l.store.Close(); err != nil {
			l.logger.Error("error closing storage", zap.Error(err))
		}
	}

	if err := l.machine.Transition(finitestate.StateStopped); err != nil {
		l.logger.Error("failed to reach stopped state", zap.Error(err))
		return
	}
	l.logger.Info("server stopped")
}
