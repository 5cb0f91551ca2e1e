// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package asset

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0xA11CE00000000000000000000000000000000001")
	bob   = common.HexToAddress("0xB0B0000000000000000000000000000000000002")
)

func TestLedgerMintRequiresProvisioning(t *testing.T) {
	l := NewLedger()

	err := l.Mint(alice, uint256.NewInt(100))
	require.ErrorIs(t, err, ErrNotProvisioned)
	require.True(t, l.BalanceOf(alice).IsZero())

	l.Provision(alice)
	require.NoError(t, l.Mint(alice, uint256.NewInt(100)))
	require.Equal(t, uint256.NewInt(100), l.BalanceOf(alice))
}

func TestLedgerBurn(t *testing.T) {
	l := NewLedger()
	l.Credit(alice, uint256.NewInt(50))

	require.ErrorIs(t, l.Burn(alice, uint256.NewInt(51)), ErrInsufficientBalance)
	require.ErrorIs(t, l.Burn(bob, uint256.NewInt(1)), ErrInsufficientBalance)

	require.NoError(t, l.Burn(alice, uint256.NewInt(20)))
	require.Equal(t, uint256.NewInt(30), l.BalanceOf(alice))
	require.Equal(t, uint256.NewInt(30), l.Supply())
}

func TestCollectionLedger(t *testing.T) {
	c := NewCollectionLedger()

	require.ErrorIs(t, c.Mint(alice, 7), ErrNotProvisioned)

	c.Provision(alice)
	require.NoError(t, c.Mint(alice, 7))

	owner, ok := c.OwnerOf(7)
	require.True(t, ok)
	require.Equal(t, alice, owner)

	require.ErrorIs(t, c.Burn(bob, 7), ErrTokenNotOwned)
	require.NoError(t, c.Burn(alice, 7))

	_, ok = c.OwnerOf(7)
	require.False(t, ok)
	require.ErrorIs(t, c.Burn(alice, 7), ErrTokenNotOwned)
}
