// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package asset defines the capability interfaces the bridge core uses to
// move value on the local chain, plus in-memory implementations backing
// tests and local deployments. The core never depends on a concrete
// asset; mint/burn authority is injected through these handles.
package asset

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotProvisioned      = errors.New("account not provisioned for asset")
	ErrTokenNotOwned       = errors.New("token not owned by account")
)

// Handle is the mint/burn authority for one fungible asset.
type Handle interface {
	// Burn destroys amount from the holder's balance.
	Burn(from common.Address, amount *uint256.Int) error

	// Mint creates amount for the receiver. Fails with ErrNotProvisioned
	// if the receiver cannot yet hold the asset.
	Mint(to common.Address, amount *uint256.Int) error

	// BalanceOf reports the holder's current balance.
	BalanceOf(addr common.Address) *uint256.Int

	// IsProvisioned reports whether the account can hold the asset.
	IsProvisioned(addr common.Address) bool
}

// CollectibleHandle is the mint/burn authority for one collection of
// non-fungible tokens.
type CollectibleHandle interface {
	Burn(from common.Address, tokenID uint64) error
	Mint(to common.Address, tokenID uint64) error
	OwnerOf(tokenID uint64) (common.Address, bool)
	IsProvisioned(addr common.Address) bool
}
