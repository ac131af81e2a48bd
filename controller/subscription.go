package controller

import (
	"context"
	"time"

	"github.com/waypost/navtree/node"
	"github.com/waypost/navtree/observability"
)

// Subscribe registers a snapshot subscriber. The latest snapshot is replayed
// into the channel immediately, then every published snapshot follows. The
// returned cancel function removes the subscription and closes the channel;
// it is safe to call more than once.
//
// Publication never blocks on a subscriber: when a subscriber's buffer is
// full the oldest pending snapshot is dropped so the channel always converges
// on the latest tree. The renderer runs on its own schedule and only ever
// needs the newest state.
func (c *Controller) Subscribe() (<-chan *Snapshot, func()) {
	ch := make(chan *Snapshot, c.bufferSize)
	id := node.NewKey()

	// Registration and replay run under the writer mutex so the replayed
	// snapshot and subsequent publishes enter the channel in version order.
	c.mu.Lock()
	c.subsMu.Lock()
	c.subs[id] = ch
	c.subsMu.Unlock()
	ch <- c.current.Load()
	c.mu.Unlock()

	c.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventSubscribe,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "controller",
		Data:      map[string]any{"subscribers": c.subscriberCount()},
	})

	cancel := func() {
		c.subsMu.Lock()
		sub, exists := c.subs[id]
		if exists {
			delete(c.subs, id)
		}
		c.subsMu.Unlock()

		if !exists {
			return
		}
		close(sub)

		c.observer.OnEvent(context.Background(), observability.Event{
			Type:      EventUnsubscribe,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "controller",
			Data:      map[string]any{"subscribers": c.subscriberCount()},
		})
	}
	return ch, cancel
}

func (c *Controller) subscriberCount() int {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	return len(c.subs)
}

// publish fans the snapshot out to every subscriber. Called with the writer
// mutex held, so snapshots enter each channel in version order.
func (c *Controller) publish(snap *Snapshot) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()

	for _, ch := range c.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// Full buffer: drop the oldest pending snapshot and retry once.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
