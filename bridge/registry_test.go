// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

var testAsset = common.HexToAddress("0x00000000000000000000000000000000000000AA")

func remoteAddr(fill byte) []byte {
	out := make([]byte, RemoteAddressLength)
	for i := range out {
		out[i] = fill
	}
	return out
}

func TestRegisterPath(t *testing.T) {
	r := NewPathRegistry()

	require.NoError(t, r.Register(testAsset, 2, remoteAddr(0x11), false))

	path, ok := r.Path(testAsset, 2)
	require.True(t, ok)
	require.Equal(t, uint64(0), path.TVL)
	require.False(t, path.Unwrappable)
	require.Equal(t, byte(0x11), path.RemoteAddress[0])
}

func TestRegisterPathRejections(t *testing.T) {
	r := NewPathRegistry()

	require.ErrorIs(t, r.Register(testAsset, 0, remoteAddr(1), false), ErrInvalidChainID)
	require.ErrorIs(t, r.Register(testAsset, MaxChainID+1, remoteAddr(1), false), ErrInvalidChainID)
	require.ErrorIs(t, r.Register(testAsset, 2, make([]byte, 20), false), ErrInvalidAddressLength)
	require.ErrorIs(t, r.Register(testAsset, 2, nil, false), ErrInvalidAddressLength)

	require.NoError(t, r.Register(testAsset, 2, remoteAddr(1), false))
	require.ErrorIs(t, r.Register(testAsset, 2, remoteAddr(2), true), ErrAlreadyRegistered)

	// The failed re-registration must not have clobbered the entry.
	path, _ := r.Path(testAsset, 2)
	require.Equal(t, byte(1), path.RemoteAddress[0])
	require.False(t, path.Unwrappable)
}

func TestRemotesSorted(t *testing.T) {
	r := NewPathRegistry()
	for _, chain := range []uint32{30, 2, 500, 7} {
		require.NoError(t, r.Register(testAsset, chain, remoteAddr(byte(chain)), false))
	}
	require.Equal(t, []uint32{2, 7, 30, 500}, r.Remotes(testAsset))
	require.Empty(t, r.Remotes(common.Address{}))
}
