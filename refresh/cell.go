// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package refresh

import "sync"

// Cell is an observable value: current value plus subscribe-to-changes.
// The presentation layer subscribes and renders; this core owns the truth.
// Sends to subscribers never block; a slow subscriber misses intermediate
// values but always observes the latest via Get.
type Cell[T any] struct {
	mu   sync.Mutex
	val  T
	subs []chan T
}

func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{val: initial}
}

func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.val
}

func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.val = v
	for _, ch := range c.subs {
		select {
		case ch <- v:
		default:
		}
	}
}

// Subscribe registers a listener. The returned func unsubscribes; it is safe
// to call more than once.
func (c *Cell[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, 1)

	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			c.mu.Lock()
			removed := false
			for i := range c.subs {
				if c.subs[i] == ch {
					c.subs = append(c.subs[:i], c.subs[i+1:]...)
					removed = true
					break
				}
			}
			c.mu.Unlock()
			if removed {
				close(ch)
			}
		})
	}

	return ch, unsubscribe
}
