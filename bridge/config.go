// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"sync"

	"github.com/luxfi/geth/common"
)

// Config holds the deployment's administrative state: the admin
// identity, the global and per-asset pause flags, and the custom
// adapter-params toggle. Mutation is admin-gated; pause never blocks
// registration or the admin toggles themselves.
type Config struct {
	admin               common.Address
	pausedGlobal        bool
	pausedAssets        map[common.Address]bool
	customAdapterParams bool

	mu sync.RWMutex
}

// NewConfig creates a config owned by admin, unpaused, with custom
// adapter params disabled.
func NewConfig(admin common.Address) *Config {
	return &Config{
		admin:        admin,
		pausedAssets: make(map[common.Address]bool),
	}
}

func (c *Config) requireAdmin(caller common.Address) error {
	if caller != c.admin {
		return ErrUnauthorized
	}
	return nil
}

// RequireAdmin fails with ErrUnauthorized unless caller is the admin.
func (c *Config) RequireAdmin(caller common.Address) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requireAdmin(caller)
}

// Admin returns the current administrative identity.
func (c *Config) Admin() common.Address {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.admin
}

// TransferAdmin hands administrative control to next.
func (c *Config) TransferAdmin(caller, next common.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	c.admin = next
	return nil
}

// SetGlobalPause toggles the global circuit breaker.
func (c *Config) SetGlobalPause(caller common.Address, paused bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	c.pausedGlobal = paused
	return nil
}

// SetPause toggles the circuit breaker for one asset.
func (c *Config) SetPause(caller common.Address, asset common.Address, paused bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	c.pausedAssets[asset] = paused
	return nil
}

// EnableCustomAdapterParams toggles acceptance of caller-supplied gas
// parameters on sends.
func (c *Config) EnableCustomAdapterParams(caller common.Address, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.requireAdmin(caller); err != nil {
		return err
	}
	c.customAdapterParams = enabled
	return nil
}

// CustomAdapterParams reports whether custom gas parameters are accepted.
func (c *Config) CustomAdapterParams() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.customAdapterParams
}

// AssertUnpaused fails with ErrPaused when the bridge, or the given
// asset, is paused. Transfer entry points call this first; admin entry
// points never do.
func (c *Config) AssertUnpaused(asset common.Address) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.pausedGlobal || c.pausedAssets[asset] {
		return ErrPaused
	}
	return nil
}
