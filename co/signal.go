// Copyright (c) 2026 The Corral developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co holds small concurrency helpers.
package co

import (
	"sync"
)

// Signal announces changes to any number of waiting goroutines. Unlike
// sync.Cond it is channel based, so waiting can be combined with select.
// The zero value is ready to use.
type Signal struct {
	mu sync.Mutex
	ch chan struct{}
}

func (s *Signal) current() chan struct{} {
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return s.ch
}

// Broadcast wakes all waiters.
func (s *Signal) Broadcast() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch != nil {
		close(s.ch)
		s.ch = nil
	}
}

// NewWaiter creates a Waiter observing broadcasts made after this call.
func (s *Signal) NewWaiter() *Waiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &Waiter{s: s, ch: s.current()}
}

// Waiter receives the broadcasts of a Signal. It is not safe for concurrent use.
type Waiter struct {
	s  *Signal
	ch chan struct{}
}

// C returns a channel that is closed once a broadcast happened since the
// previous call, or since the waiter was created.
func (w *Waiter) C() <-chan struct{} {
	ch := w.ch

	w.s.mu.Lock()
	w.ch = w.s.current()
	w.s.mu.Unlock()

	return ch
}
