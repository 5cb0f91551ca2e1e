// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"sort"
	"sync"

	"github.com/luxfi/geth/common"
)

type pathKey struct {
	asset common.Address
	chain uint32
}

// PathRegistry maps (asset, remote chain) pairs to the asset's address
// on that chain. Registration is one-shot; paths are never deleted in
// normal operation. The registry also keeps a sorted per-asset list of
// known remotes for deterministic enumeration.
type PathRegistry struct {
	paths   map[pathKey]*AssetPath
	remotes map[common.Address][]uint32

	mu sync.RWMutex
}

// NewPathRegistry creates an empty registry.
func NewPathRegistry() *PathRegistry {
	return &PathRegistry{
		paths:   make(map[pathKey]*AssetPath),
		remotes: make(map[common.Address][]uint32),
	}
}

// Register creates the path entry for (asset, chain) with zero TVL.
// The remote address must be exactly 32 bytes; the chain id must fit the
// 16-bit remote id space; re-registration of an existing pair fails.
func (r *PathRegistry) Register(asset common.Address, chain uint32, remote []byte, unwrappable bool) error {
	if !validChainID(chain) {
		return ErrInvalidChainID
	}
	if len(remote) != RemoteAddressLength {
		return ErrInvalidAddressLength
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := pathKey{asset: asset, chain: chain}
	if _, ok := r.paths[key]; ok {
		return ErrAlreadyRegistered
	}

	path := &AssetPath{Unwrappable: unwrappable}
	copy(path.RemoteAddress[:], remote)
	r.paths[key] = path

	chains := append(r.remotes[asset], chain)
	sort.Slice(chains, func(i, j int) bool { return chains[i] < chains[j] })
	r.remotes[asset] = chains

	return nil
}

// Path returns the entry for (asset, chain).
func (r *PathRegistry) Path(asset common.Address, chain uint32) (*AssetPath, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.paths[pathKey{asset: asset, chain: chain}]
	return path, ok
}

// HasPath reports whether (asset, chain) is registered.
func (r *PathRegistry) HasPath(asset common.Address, chain uint32) bool {
	_, ok := r.Path(asset, chain)
	return ok
}

// Remotes returns the asset's registered remote chain ids, ascending.
func (r *PathRegistry) Remotes(asset common.Address) []uint32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]uint32, len(r.remotes[asset]))
	copy(out, r.remotes[asset])
	return out
}
