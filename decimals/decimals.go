// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package decimals converts amounts between a chain-local precision and
// the shared cross-chain precision carried on the wire. Wire amounts are
// u64 in shared precision; local amounts are 256-bit.
package decimals

import (
	"errors"

	"github.com/holiman/uint256"
)

const (
	// SharedDecimals is the fixed precision of wire amounts.
	SharedDecimals = 6

	// MaxLocalDecimals bounds the local precision an asset may declare.
	// 10^(77-6) fits a uint256 with room to spare; anything higher is a
	// misconfiguration, and past ~83 the rate computation would wrap.
	MaxLocalDecimals = 77
)

var (
	ErrUnsupportedDecimals = errors.New("local decimals outside supported range")
	ErrSharedOverflow      = errors.New("amount exceeds shared precision range")
)

// RateFor returns the local-to-shared conversion rate 10^(localDecimals -
// SharedDecimals) for an asset with the given local precision.
func RateFor(localDecimals uint8) (*uint256.Int, error) {
	if localDecimals < SharedDecimals || localDecimals > MaxLocalDecimals {
		return nil, ErrUnsupportedDecimals
	}
	rate := uint256.NewInt(1)
	ten := uint256.NewInt(10)
	for i := uint8(0); i < localDecimals-SharedDecimals; i++ {
		rate.Mul(rate, ten)
	}
	return rate, nil
}

// ToShared converts a local-precision amount to shared precision by
// truncating division. The remainder is dust; callers that must not drop
// it go through RemoveDust first.
func ToShared(local, rate *uint256.Int) (uint64, error) {
	q := new(uint256.Int).Div(local, rate)
	if !q.IsUint64() {
		return 0, ErrSharedOverflow
	}
	return q.Uint64(), nil
}

// ToLocal converts a shared-precision amount back to local precision.
func ToLocal(shared uint64, rate *uint256.Int) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(shared), rate)
}

// RemoveDust splits local into the largest amount representable in shared
// precision and the non-representable remainder. The dust portion stays
// on this chain; it is never burned and never sent.
func RemoveDust(local, rate *uint256.Int) (post, dust *uint256.Int) {
	post = new(uint256.Int).Div(local, rate)
	post.Mul(post, rate)
	dust = new(uint256.Int).Sub(local, post)
	return post, dust
}
