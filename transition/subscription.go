package transition

import "github.com/waypost/navtree/node"

// Subscribe registers a transition-state subscriber. The current state is
// replayed immediately, then every state change follows. The returned cancel
// function removes the subscription and closes the channel; safe to call
// more than once.
//
// Like the controller's snapshot stream, publication never blocks: a full
// buffer drops its oldest pending state so the channel converges on the
// latest.
func (m *Machine) Subscribe() (<-chan State, func()) {
	ch := make(chan State, m.bufferSize)
	id := node.NewKey()

	m.mu.Lock()
	m.subsMu.Lock()
	m.subs[id] = ch
	m.subsMu.Unlock()
	ch <- m.state
	m.mu.Unlock()

	cancel := func() {
		m.subsMu.Lock()
		sub, exists := m.subs[id]
		if exists {
			delete(m.subs, id)
		}
		m.subsMu.Unlock()

		if exists {
			close(sub)
		}
	}
	return ch, cancel
}

func (m *Machine) publish(state State) {
	m.subsMu.RLock()
	defer m.subsMu.RUnlock()

	for _, ch := range m.subs {
		select {
		case ch <- state:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}
