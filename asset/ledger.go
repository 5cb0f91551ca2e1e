// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import (
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// Ledger is an in-memory fungible asset implementing Handle. Accounts
// must be provisioned before they can receive a mint; burns require a
// sufficient balance.
type Ledger struct {
	balances    map[common.Address]*uint256.Int
	provisioned map[common.Address]bool
	supply      *uint256.Int

	mu sync.RWMutex
}

var _ Handle = (*Ledger)(nil)

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		balances:    make(map[common.Address]*uint256.Int),
		provisioned: make(map[common.Address]bool),
		supply:      uint256.NewInt(0),
	}
}

// Provision marks an account as able to hold the asset.
func (l *Ledger) Provision(addr common.Address) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.provisioned[addr] = true
}

// Credit provisions the account and adds amount to its balance without
// touching supply accounting. Test setup helper.
func (l *Ledger) Credit(addr common.Address, amount *uint256.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.provisioned[addr] = true
	bal := l.balances[addr]
	if bal == nil {
		bal = uint256.NewInt(0)
		l.balances[addr] = bal
	}
	bal.Add(bal, amount)
	l.supply.Add(l.supply, amount)
}

func (l *Ledger) Burn(from common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	bal := l.balances[from]
	if bal == nil || bal.Lt(amount) {
		return ErrInsufficientBalance
	}
	bal.Sub(bal, amount)
	l.supply.Sub(l.supply, amount)
	return nil
}

func (l *Ledger) Mint(to common.Address, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.provisioned[to] {
		return ErrNotProvisioned
	}
	bal := l.balances[to]
	if bal == nil {
		bal = uint256.NewInt(0)
		l.balances[to] = bal
	}
	bal.Add(bal, amount)
	l.supply.Add(l.supply, amount)
	return nil
}

func (l *Ledger) BalanceOf(addr common.Address) *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bal := l.balances[addr]
	if bal == nil {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(bal)
}

func (l *Ledger) IsProvisioned(addr common.Address) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.provisioned[addr]
}

// Supply reports the total outstanding balance.
func (l *Ledger) Supply() *uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return new(uint256.Int).Set(l.supply)
}

// CollectionLedger is an in-memory collection implementing
// CollectibleHandle. Token ownership is tracked per token id.
type CollectionLedger struct {
	owners      map[uint64]common.Address
	provisioned map[common.Address]bool

	mu sync.RWMutex
}

var _ CollectibleHandle = (*CollectionLedger)(nil)

// NewCollectionLedger creates an empty collection.
func NewCollectionLedger() *CollectionLedger {
	return &CollectionLedger{
		owners:      make(map[uint64]common.Address),
		provisioned: make(map[common.Address]bool),
	}
}

// Provision marks an account as able to hold tokens of the collection.
func (c *CollectionLedger) Provision(addr common.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.provisioned[addr] = true
}

func (c *CollectionLedger) Burn(from common.Address, tokenID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	owner, ok := c.owners[tokenID]
	if !ok || owner != from {
		return ErrTokenNotOwned
	}
	delete(c.owners, tokenID)
	return nil
}

func (c *CollectionLedger) Mint(to common.Address, tokenID uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.provisioned[to] {
		return ErrNotProvisioned
	}
	c.owners[tokenID] = to
	return nil
}

func (c *CollectionLedger) OwnerOf(tokenID uint64) (common.Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	owner, ok := c.owners[tokenID]
	return owner, ok
}

func (c *CollectionLedger) IsProvisioned(addr common.Address) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.provisioned[addr]
}
