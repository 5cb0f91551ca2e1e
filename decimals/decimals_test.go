// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package decimals

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestRateFor(t *testing.T) {
	rate, err := RateFor(6)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(1), rate)

	rate, err = RateFor(8)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(100), rate)

	rate, err = RateFor(18)
	require.NoError(t, err)
	require.Equal(t, uint256.NewInt(1_000_000_000_000), rate)

	_, err = RateFor(5)
	require.ErrorIs(t, err, ErrUnsupportedDecimals)
}

func TestRateForBounds(t *testing.T) {
	// The largest supported precision still yields an exact power of ten.
	rate, err := RateFor(MaxLocalDecimals)
	require.NoError(t, err)
	expected := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(MaxLocalDecimals-SharedDecimals))
	require.Equal(t, expected, rate)

	_, err = RateFor(MaxLocalDecimals + 1)
	require.ErrorIs(t, err, ErrUnsupportedDecimals)

	_, err = RateFor(255)
	require.ErrorIs(t, err, ErrUnsupportedDecimals)
}

func TestToSharedTruncates(t *testing.T) {
	rate := uint256.NewInt(10)

	shared, err := ToShared(uint256.NewInt(1000), rate)
	require.NoError(t, err)
	require.Equal(t, uint64(100), shared)

	shared, err = ToShared(uint256.NewInt(1009), rate)
	require.NoError(t, err)
	require.Equal(t, uint64(100), shared)

	shared, err = ToShared(uint256.NewInt(9), rate)
	require.NoError(t, err)
	require.Equal(t, uint64(0), shared)
}

func TestToSharedOverflow(t *testing.T) {
	huge := new(uint256.Int).Lsh(uint256.NewInt(1), 80)
	_, err := ToShared(huge, uint256.NewInt(1))
	require.ErrorIs(t, err, ErrSharedOverflow)
}

func TestToLocal(t *testing.T) {
	rate := uint256.NewInt(1_000_000_000_000)
	require.Equal(t, uint256.NewInt(5_000_000_000_000), ToLocal(5, rate))
}

func TestRemoveDust(t *testing.T) {
	rate := uint256.NewInt(10)

	post, dust := RemoveDust(uint256.NewInt(1007), rate)
	require.Equal(t, uint256.NewInt(1000), post)
	require.Equal(t, uint256.NewInt(7), dust)

	post, dust = RemoveDust(uint256.NewInt(1000), rate)
	require.Equal(t, uint256.NewInt(1000), post)
	require.True(t, dust.IsZero())
}

func TestRemoveDustIdempotent(t *testing.T) {
	rate := uint256.NewInt(1000)
	for _, v := range []uint64{0, 1, 999, 1000, 1001, 123456789} {
		post, _ := RemoveDust(uint256.NewInt(v), rate)
		again, dust := RemoveDust(post, rate)
		require.Equal(t, post, again)
		require.True(t, dust.IsZero())
	}
}

func TestRoundTripPostDust(t *testing.T) {
	rate := uint256.NewInt(100)
	post, _ := RemoveDust(uint256.NewInt(12345), rate)
	shared, err := ToShared(post, rate)
	require.NoError(t, err)
	require.Equal(t, post, ToLocal(shared, rate))
}
