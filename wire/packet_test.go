// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoinPacketRoundTrip(t *testing.T) {
	p := CoinPacket{
		Type:   PacketTypeReceive,
		Amount: 123456789,
		Unwrap: true,
	}
	for i := range p.RemoteAsset {
		p.RemoteAsset[i] = byte(i)
	}
	for i := range p.Receiver {
		p.Receiver[i] = byte(0xff - i)
	}

	buf := EncodeCoin(p)
	require.Len(t, buf, CoinPacketSize)

	got, err := DecodeCoin(buf, PacketTypeReceive)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestCoinPacketRoundTripZeroValues(t *testing.T) {
	p := CoinPacket{Type: PacketTypeReceive}
	got, err := DecodeCoin(EncodeCoin(p), PacketTypeReceive)
	require.NoError(t, err)
	require.Equal(t, p, got)
	require.False(t, got.Unwrap)
}

func TestDecodeCoinLengthStrict(t *testing.T) {
	buf := EncodeCoin(CoinPacket{Type: PacketTypeReceive})

	// One byte short and one byte long both fail; there is no tolerance.
	_, err := DecodeCoin(buf[:CoinPacketSize-1], PacketTypeReceive)
	require.ErrorIs(t, err, ErrMalformedPacket)

	_, err = DecodeCoin(append(buf, 0), PacketTypeReceive)
	require.ErrorIs(t, err, ErrMalformedPacket)

	_, err = DecodeCoin(nil, PacketTypeReceive)
	require.ErrorIs(t, err, ErrMalformedPacket)
}

func TestDecodeCoinRejectsSendType(t *testing.T) {
	buf := EncodeCoin(CoinPacket{Type: PacketTypeSend, Amount: 1})
	_, err := DecodeCoin(buf, PacketTypeReceive)
	require.ErrorIs(t, err, ErrUnexpectedPacketType)
}

func TestCollectiblePacketRoundTrip(t *testing.T) {
	p := CollectiblePacket{Type: PacketTypeReceive, TokenID: 42}
	p.Receiver[0] = 0xab
	p.Receiver[31] = 0xcd

	buf := EncodeCollectible(p)
	require.Len(t, buf, CollectiblePacketSize)

	got, err := DecodeCollectible(buf, PacketTypeReceive)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

func TestDecodeCollectibleRejects(t *testing.T) {
	buf := EncodeCollectible(CollectiblePacket{Type: PacketTypeSend})
	_, err := DecodeCollectible(buf, PacketTypeReceive)
	require.ErrorIs(t, err, ErrUnexpectedPacketType)

	_, err = DecodeCollectible(buf[:10], PacketTypeReceive)
	require.ErrorIs(t, err, ErrMalformedPacket)

	// A coin-sized payload is not a collectible payload.
	_, err = DecodeCollectible(EncodeCoin(CoinPacket{Type: PacketTypeReceive}), PacketTypeReceive)
	require.ErrorIs(t, err, ErrMalformedPacket)
}

func TestCoinEncodingLayout(t *testing.T) {
	var p CoinPacket
	p.Type = PacketTypeReceive
	p.RemoteAsset[0] = 0x11
	p.Receiver[31] = 0x22
	p.Amount = 0x0102030405060708
	p.Unwrap = true

	buf := EncodeCoin(p)
	require.Equal(t, byte(0), buf[0])
	require.Equal(t, byte(0x11), buf[1])
	require.Equal(t, byte(0x22), buf[64])
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, buf[65:73])
	require.Equal(t, byte(1), buf[73])
}

func TestTransferIDDistinct(t *testing.T) {
	payload := EncodeCoin(CoinPacket{Type: PacketTypeReceive, Amount: 7})

	a := TransferID(2, 1, payload)
	b := TransferID(3, 1, payload)
	require.NotEqual(t, a, b)

	// Same inputs give the same id.
	require.Equal(t, a, TransferID(2, 1, payload))

	// Identical payloads delivered under different nonces are distinct
	// transfers and must not collide.
	require.NotEqual(t, a, TransferID(2, 2, payload))

	other := EncodeCoin(CoinPacket{Type: PacketTypeReceive, Amount: 8})
	require.NotEqual(t, a, TransferID(2, 1, other))
}
