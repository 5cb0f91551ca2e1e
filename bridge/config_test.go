// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"testing"

	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

var (
	admin    = common.HexToAddress("0x0000000000000000000000000000000000000AD1")
	stranger = common.HexToAddress("0x0000000000000000000000000000000000000BAD")
)

func TestConfigAdminGate(t *testing.T) {
	c := NewConfig(admin)

	require.ErrorIs(t, c.SetGlobalPause(stranger, true), ErrUnauthorized)
	require.ErrorIs(t, c.SetPause(stranger, testAsset, true), ErrUnauthorized)
	require.ErrorIs(t, c.EnableCustomAdapterParams(stranger, true), ErrUnauthorized)
	require.ErrorIs(t, c.TransferAdmin(stranger, stranger), ErrUnauthorized)

	// Nothing toggled by the rejected calls.
	require.NoError(t, c.AssertUnpaused(testAsset))
	require.False(t, c.CustomAdapterParams())
}

func TestGlobalPause(t *testing.T) {
	c := NewConfig(admin)

	require.NoError(t, c.SetGlobalPause(admin, true))
	require.ErrorIs(t, c.AssertUnpaused(testAsset), ErrPaused)
	require.ErrorIs(t, c.AssertUnpaused(common.Address{}), ErrPaused)

	require.NoError(t, c.SetGlobalPause(admin, false))
	require.NoError(t, c.AssertUnpaused(testAsset))
}

func TestPerAssetPause(t *testing.T) {
	c := NewConfig(admin)
	other := common.HexToAddress("0x00000000000000000000000000000000000000CC")

	require.NoError(t, c.SetPause(admin, testAsset, true))
	require.ErrorIs(t, c.AssertUnpaused(testAsset), ErrPaused)
	require.NoError(t, c.AssertUnpaused(other))

	require.NoError(t, c.SetPause(admin, testAsset, false))
	require.NoError(t, c.AssertUnpaused(testAsset))
}

func TestTransferAdmin(t *testing.T) {
	c := NewConfig(admin)
	next := common.HexToAddress("0x0000000000000000000000000000000000000AD2")

	require.NoError(t, c.TransferAdmin(admin, next))
	require.Equal(t, next, c.Admin())

	require.ErrorIs(t, c.SetGlobalPause(admin, true), ErrUnauthorized)
	require.NoError(t, c.SetGlobalPause(next, true))
}
