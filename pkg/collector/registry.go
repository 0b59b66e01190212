package collector

import (
	"sync"

	"xfollow/pkg/logger"
)

// Registry keeps one State per namespace for the lifetime of the process
type Registry struct {
	mu     sync.Mutex
	states map[string]*State
	logger logger.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Registry{
		states: make(map[string]*State),
		logger: log,
	}
}

// Acquire returns the State for namespace, creating it on first use.
// resumed is true when an existing State was returned.
func (r *Registry) Acquire(namespace string) (state *State, resumed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.states[namespace]; ok {
		return existing, true
	}

	state = NewState(r.logger.WithField("namespace", namespace))
	r.states[namespace] = state
	r.logger.InfoWithFields("collection state initialized", map[string]interface{}{
		"namespace": namespace,
		"session":   state.ID,
	})
	return state, false
}
