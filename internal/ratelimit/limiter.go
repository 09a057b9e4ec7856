// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ratelimit

import (
	"sync"
	"sync/atomic"
	"time"
)

// Decision is the outcome of [Limiter.Admit].
type Decision int

const (
	Allowed Decision = iota
	Blocked
)

// String returns the lowercase decision name, used as a metric label.
func (d Decision) String() string {
	if d == Blocked {
		return "blocked"
	}
	return "allowed"
}

// Err returns [ErrBlocked] for a blocked decision and nil otherwise.
func (d Decision) Err() error {
	if d == Blocked {
		return ErrBlocked
	}
	return nil
}

// entry is the state of one identity. mu makes check, increment and block a
// single step.
type entry struct {
	mu           sync.Mutex
	count        int64
	blockedUntil time.Time
}

// window holds every entry created since the last reset.
type window struct {
	entries sync.Map // string -> *entry
}

func (w *window) entry(identity string) *entry {
	if v, ok := w.entries.Load(identity); ok {
		return v.(*entry)
	}
	v, _ := w.entries.LoadOrStore(identity, &entry{})
	return v.(*entry)
}

// Limiter is a fixed window request counter with a blocking penalty.
// It is safe for concurrent use.
type Limiter struct {
	limit         int64
	blockDuration time.Duration
	now           func() time.Time

	current atomic.Pointer[window]
}

// Option configures a [Limiter].
type Option func(*Limiter)

// WithClock replaces time.Now as the limiter's time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New creates a Limiter admitting limit requests per identity between
// resets and blocking an identity for blockDuration once it goes over.
func New(limit int64, blockDuration time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		limit:         limit,
		blockDuration: blockDuration,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.current.Store(&window{})
	return l
}

// Admit counts one request for identity and decides whether it may proceed.
//
// A request from an identity whose block has not yet expired is rejected
// without being counted. Otherwise the counter is incremented, and when it
// goes over the limit the identity is blocked and the request rejected.
func (l *Limiter) Admit(identity string) Decision {
	e := l.current.Load().entry(identity)

	e.mu.Lock()
	defer e.mu.Unlock()

	now := l.now()
	if e.blockedUntil.After(now) {
		return Blocked
	}

	e.count++
	if e.count > l.limit {
		e.blockedUntil = now.Add(l.blockDuration)
		return Blocked
	}

	return Allowed
}

// Reset starts a new window. Every counter and block recorded so far is
// dropped together.
func (l *Limiter) Reset() {
	l.current.Store(&window{})
}

// Snapshot returns the current counter and block deadline of identity.
// It does not create an entry for unknown identities.
func (l *Limiter) Snapshot(identity string) (count int64, blockedUntil time.Time) {
	v, ok := l.current.Load().entries.Load(identity)
	if !ok {
		return 0, time.Time{}
	}

	e := v.(*entry)
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.count, e.blockedUntil
}
