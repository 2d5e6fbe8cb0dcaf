// Package health serves liveness and readiness probes on the HTTP transport.
// Readiness follows the server lifecycle: it flips true when the instance
// reaches running and back to false as soon as shutdown begins.
package health

import (
	"net/http"
	"sync/atomic"

	"github.com/promptforge/promptforge/pkg/config"
)

type Probe struct {
	ready atomic.Bool
}

func NewProbe() *Probe {
	return &Probe{}
}

// SetReady marks the instance ready (or not) to receive traffic.
func (p *Probe) SetReady(ready bool) {
	p.ready.Store(ready)
}

func (p *Probe) liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (p *Probe) readiness(w http.ResponseWriter, r *http.Request) {
	if !p.ready.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Register mounts the probe endpoints on mux at the configured paths.
func (p *Probe) Register(mux *http.ServeMux, cfg *config.HealthConfig) {
	mux.HandleFunc(cfg.LivenessPath, p.liveness)
	mux.HandleFunc(cfg.ReadinessPath, p.readiness)
}
