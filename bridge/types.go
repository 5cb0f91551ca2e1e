// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bridge implements the accounting core of the cross-chain asset
// bridge: path registration, per-path liquidity conservation, decimal
// normalization, claim stashing for unprovisioned receivers, and the
// send/receive pipelines composed in the Gateway.
package bridge

import (
	"errors"
	"math"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
)

// Remote chain ids occupy a 16-bit space; id 0 is reserved.
const MaxChainID = math.MaxUint16

// RemoteAddressLength is the fixed size of remote-side addresses.
const RemoteAddressLength = 32

// Bridge errors
var (
	ErrUnregisteredAsset     = errors.New("asset not registered with bridge")
	ErrAlreadyRegistered     = errors.New("already registered")
	ErrRemotePathNotFound    = errors.New("remote path not found")
	ErrInvalidRemoteAddress  = errors.New("remote address does not match registered path")
	ErrPaused                = errors.New("bridge is paused")
	ErrInvalidAdapterParams  = errors.New("invalid adapter params")
	ErrInsufficientLiquidity = errors.New("insufficient path liquidity")
	ErrAmountTooSmall        = errors.New("amount too small after normalization")
	ErrNotUnwrappable        = errors.New("path does not allow unwrapping")
	ErrClaimNotFound         = errors.New("no claimable entry")
	ErrInvalidChainID        = errors.New("invalid remote chain id")
	ErrInvalidAddressLength  = errors.New("invalid remote address length")
	ErrUnauthorized          = errors.New("caller is not the bridge admin")
	ErrRateLimited           = errors.New("rate limit exceeded")
	ErrAlreadyProcessed      = errors.New("inbound transfer already processed")
)

// AssetPath is one registered (asset, remote chain) pair. TVL is the
// value currently on loan to that remote chain, in shared precision; it
// never goes negative.
type AssetPath struct {
	RemoteAddress [32]byte
	Unwrappable   bool
	TVL           uint64
}

// EventKind discriminates journal entries.
type EventKind uint8

const (
	EventSend EventKind = iota
	EventReceive
	EventClaim
)

// Event is one append-only journal record, ordered by commit order.
type Event struct {
	Kind     EventKind
	Asset    common.Address
	Chain    uint32 // destination chain for sends, source chain for receives
	Receiver [32]byte
	Local    common.Address // local receiver for receives and claims
	Amount   *uint256.Int   // local precision
	TokenID  uint64         // collectible transfers only
	Unwrap   bool
	Stashed  bool
}

func validChainID(chain uint32) bool {
	return chain != 0 && chain <= MaxChainID
}
