// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"sync"
	"time"

	"github.com/luxfi/geth/common"
)

// RateLimiter is consulted before a path is debited. A rejection aborts
// the send; it is propagated to the caller, never swallowed. Remove
// returns budget consumed by a send that later unwound, so aborted
// sends do not eat window headroom.
type RateLimiter interface {
	TryInsert(asset common.Address, dstChain uint32, amountShared uint64) error
	Remove(asset common.Address, dstChain uint32, amountShared uint64)
}

// NopLimiter admits every send.
type NopLimiter struct{}

func (NopLimiter) TryInsert(common.Address, uint32, uint64) error { return nil }
func (NopLimiter) Remove(common.Address, uint32, uint64)          {}

// WindowLimiter caps the shared-precision value an asset may send per
// rolling window. The window resets lazily on the first insert after it
// elapses. Assets without a configured limit are unrestricted.
type WindowLimiter struct {
	window time.Duration
	limits map[common.Address]uint64
	used   map[common.Address]uint64
	reset  map[common.Address]time.Time
	now    func() time.Time

	mu sync.Mutex
}

var _ RateLimiter = (*WindowLimiter)(nil)

// NewWindowLimiter creates a limiter with the given window.
func NewWindowLimiter(window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		window: window,
		limits: make(map[common.Address]uint64),
		used:   make(map[common.Address]uint64),
		reset:  make(map[common.Address]time.Time),
		now:    time.Now,
	}
}

// SetLimit caps the asset's per-window outflow. A zero limit removes the
// cap.
func (w *WindowLimiter) SetLimit(asset common.Address, perWindow uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if perWindow == 0 {
		delete(w.limits, asset)
		return
	}
	w.limits[asset] = perWindow
}

// SetClock overrides the limiter's time source.
func (w *WindowLimiter) SetClock(now func() time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.now = now
}

func (w *WindowLimiter) TryInsert(asset common.Address, dstChain uint32, amountShared uint64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	limit, ok := w.limits[asset]
	if !ok {
		return nil
	}

	now := w.now()
	if now.Sub(w.reset[asset]) >= w.window {
		w.used[asset] = 0
		w.reset[asset] = now
	}

	if w.used[asset]+amountShared > limit || w.used[asset]+amountShared < w.used[asset] {
		return ErrRateLimited
	}
	w.used[asset] += amountShared
	return nil
}

// Remove returns previously inserted budget to the current window. Usage
// clamps at zero: if the window rolled over since the insert there is
// nothing left to return.
func (w *WindowLimiter) Remove(asset common.Address, dstChain uint32, amountShared uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.used[asset] <= amountShared {
		w.used[asset] = 0
		return
	}
	w.used[asset] -= amountShared
}
