// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/geth/common"
)

// Claim stash key prefixes.
var (
	coinClaimPrefix        = []byte("claim/coin/")
	collectibleClaimPrefix = []byte("claim/nft/")
)

// ClaimStash durably records value owed to receivers that could not take
// delivery at receive time. Fungible entries accumulate a local-precision
// amount per (asset, receiver); collectible entries are a claimable flag
// per (collection, receiver, token). Entries are consumed exactly once.
type ClaimStash struct {
	db database.Database
}

// NewClaimStash creates a stash over db.
func NewClaimStash(db database.Database) *ClaimStash {
	return &ClaimStash{db: db}
}

func coinClaimKey(asset, receiver common.Address) []byte {
	key := make([]byte, 0, len(coinClaimPrefix)+2*common.AddressLength)
	key = append(key, coinClaimPrefix...)
	key = append(key, asset.Bytes()...)
	key = append(key, receiver.Bytes()...)
	return key
}

func collectibleClaimKey(collection, receiver common.Address, tokenID uint64) []byte {
	key := make([]byte, 0, len(collectibleClaimPrefix)+2*common.AddressLength+8)
	key = append(key, collectibleClaimPrefix...)
	key = append(key, collection.Bytes()...)
	key = append(key, receiver.Bytes()...)
	key = binary.BigEndian.AppendUint64(key, tokenID)
	return key
}

// StashCoin accumulates amount into the receiver's entry.
func (s *ClaimStash) StashCoin(asset, receiver common.Address, amount *uint256.Int) error {
	key := coinClaimKey(asset, receiver)

	total := new(uint256.Int).Set(amount)
	switch raw, err := s.db.Get(key); {
	case err == nil:
		prev := new(uint256.Int).SetBytes(raw)
		total.Add(total, prev)
	case errors.Is(err, database.ErrNotFound):
	default:
		return fmt.Errorf("reading claim entry: %w", err)
	}

	b32 := total.Bytes32()
	return s.db.Put(key, b32[:])
}

// StashedCoin reports the receiver's unclaimed amount, zero if none.
func (s *ClaimStash) StashedCoin(asset, receiver common.Address) (*uint256.Int, error) {
	raw, err := s.db.Get(coinClaimKey(asset, receiver))
	switch {
	case err == nil:
		return new(uint256.Int).SetBytes(raw), nil
	case errors.Is(err, database.ErrNotFound):
		return uint256.NewInt(0), nil
	default:
		return nil, fmt.Errorf("reading claim entry: %w", err)
	}
}

// TakeCoin removes and returns the receiver's entry. Fails with
// ErrClaimNotFound when no entry exists or the stored amount is zero, so
// a second take after a successful one fails.
func (s *ClaimStash) TakeCoin(asset, receiver common.Address) (*uint256.Int, error) {
	key := coinClaimKey(asset, receiver)

	raw, err := s.db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrClaimNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading claim entry: %w", err)
	}

	amount := new(uint256.Int).SetBytes(raw)
	if amount.IsZero() {
		return nil, ErrClaimNotFound
	}
	if err := s.db.Delete(key); err != nil {
		return nil, fmt.Errorf("removing claim entry: %w", err)
	}
	return amount, nil
}

// StashCollectible marks (collection, receiver, token) claimable.
func (s *ClaimStash) StashCollectible(collection, receiver common.Address, tokenID uint64) error {
	return s.db.Put(collectibleClaimKey(collection, receiver, tokenID), []byte{1})
}

// IsCollectibleClaimable reports whether the token awaits a claim.
func (s *ClaimStash) IsCollectibleClaimable(collection, receiver common.Address, tokenID uint64) (bool, error) {
	has, err := s.db.Has(collectibleClaimKey(collection, receiver, tokenID))
	if err != nil {
		return false, fmt.Errorf("reading claim entry: %w", err)
	}
	return has, nil
}

// TakeCollectible removes the claimable flag, failing with
// ErrClaimNotFound when it is not set.
func (s *ClaimStash) TakeCollectible(collection, receiver common.Address, tokenID uint64) error {
	key := collectibleClaimKey(collection, receiver, tokenID)

	has, err := s.db.Has(key)
	if err != nil {
		return fmt.Errorf("reading claim entry: %w", err)
	}
	if !has {
		return ErrClaimNotFound
	}
	if err := s.db.Delete(key); err != nil {
		return fmt.Errorf("removing claim entry: %w", err)
	}
	return nil
}
