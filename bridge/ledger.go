// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"github.com/luxfi/geth/common"
)

// LiquidityLedger enforces value conservation per remote path: a path's
// TVL is incremented on every receive and decremented on every send, and
// a send may never take it below zero. Inbound value is accepted
// unconditionally once the messaging layer has authenticated its origin.
type LiquidityLedger struct {
	registry *PathRegistry
}

// NewLiquidityLedger creates a ledger over the given registry's paths.
func NewLiquidityLedger(registry *PathRegistry) *LiquidityLedger {
	return &LiquidityLedger{registry: registry}
}

// Debit removes amount from the path's TVL. Fails hard when the path is
// unregistered or holds less than amount; there is no partial debit.
func (l *LiquidityLedger) Debit(asset common.Address, chain uint32, amount uint64) error {
	l.registry.mu.Lock()
	defer l.registry.mu.Unlock()

	path, ok := l.registry.paths[pathKey{asset: asset, chain: chain}]
	if !ok {
		return ErrRemotePathNotFound
	}
	if path.TVL < amount {
		return ErrInsufficientLiquidity
	}
	path.TVL -= amount
	return nil
}

// Credit adds amount to the path's TVL.
func (l *LiquidityLedger) Credit(asset common.Address, chain uint32, amount uint64) error {
	l.registry.mu.Lock()
	defer l.registry.mu.Unlock()

	path, ok := l.registry.paths[pathKey{asset: asset, chain: chain}]
	if !ok {
		return ErrRemotePathNotFound
	}
	path.TVL += amount
	return nil
}

// TVL reports the path's current balance, zero for unknown paths.
func (l *LiquidityLedger) TVL(asset common.Address, chain uint32) uint64 {
	l.registry.mu.RLock()
	defer l.registry.mu.RUnlock()

	path, ok := l.registry.paths[pathKey{asset: asset, chain: chain}]
	if !ok {
		return 0
	}
	return path.TVL
}
