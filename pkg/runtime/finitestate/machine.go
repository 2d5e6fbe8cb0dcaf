// Package finitestate tracks the server lifecycle through its ordered states.
// Transitions only move forward along the startup path, and the terminal
// stopping/stopped path can be entered exactly once.
package finitestate

import (
	"errors"
	"fmt"
	"sync"
)

// Lifecycle states, in startup order.
const (
	StateCreated        = "created"
	StateStorageReady   = "storage-ready"
	StateServerReady    = "server-ready"
	StateTransportReady = "transport-ready"
	StateRunning        = "running"
	StateStopping       = "stopping"
	StateStopped        = "stopped"
)

// ErrInvalidTransition reports a transition the table does not allow.
var ErrInvalidTransition = errors.New("invalid state transition")

// LifecycleTransitions is the transition table for a server instance.
// Stopping is reachable only from running, which is what makes a second stop
// request a no-op instead of an error.
var LifecycleTransitions = map[string][]string{
	StateCreated:        {StateStorageReady},
	StateStorageReady:   {StateServerReady},
	StateServerReady:    {StateTransportReady},
	StateTransportReady: {StateRunning},
	StateRunning:        {StateStopping},
	StateStopping:       {StateStopped},
	StateStopped:        {},
}

// Machine is a small finite state machine over a fixed transition table.
// All transition checks are serialized by an internal mutex so the
// "stop exactly once" guarantee holds even under concurrent callers.
type Machine struct {
	mu          sync.Mutex
	current     string
	transitions map[string][]string
}

// New creates a machine in the given initial state.
func New(initial string, transitions map[string][]string) *Machine {
	return &Machine{
		current:     initial,
		transitions: transitions,
	}
}

// GetState returns the current state.
func (m *Machine) GetState() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Transition moves the machine to state, or fails with ErrInvalidTransition
// when the table does not allow it from the current state.
func (m *Machine) Transition(state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transitionLocked(state)
}

// TransitionBool is Transition without the error detail; it reports whether
// the transition happened.
func (m *Machine) TransitionBool(state string) bool {
	return m.Transition(state) == nil
}

// TransitionIfCurrentState transitions to next only when the machine is
// currently in current; the check and the move are one atomic step.
func (m *Machine) TransitionIfCurrentState(current, next string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != current {
		return fmt.Errorf("%w: expected current state %s, found %s", ErrInvalidTransition, current, m.current)
	}
	return m.transitionLocked(next)
}

func (m *Machine) transitionLocked(state string) error {
	for _, allowed := range m.transitions[m.current] {
		if allowed == state {
			m.current = state
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, state)
}
