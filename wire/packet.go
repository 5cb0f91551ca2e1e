// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package wire implements the fixed-width binary packet format exchanged
// between bridge endpoints. Layouts are byte-exact, big-endian, with no
// padding or versioning field; the leading type byte pins the format.
package wire

import (
	"encoding/binary"
	"errors"

	"github.com/zeebo/blake3"
)

// Packet type tags. The tag names the direction as seen by the pipeline
// that consumes the packet: a transfer payload crossing the wire carries
// PacketTypeReceive because the destination processes it as a receive.
// PacketTypeSend tags the outbound direction for gas/adapter-parameter
// validation and must never appear on an inbound payload.
const (
	PacketTypeReceive uint8 = 0
	PacketTypeSend    uint8 = 1
)

// Exact payload sizes. Decoders accept these lengths and nothing else.
const (
	// CoinPacketSize = 1 type + 32 remote asset + 32 receiver + 8 amount + 1 unwrap
	CoinPacketSize = 74

	// CollectiblePacketSize = 1 type + 32 receiver + 8 token id
	CollectiblePacketSize = 41
)

var (
	ErrMalformedPacket      = errors.New("malformed packet")
	ErrUnexpectedPacketType = errors.New("unexpected packet type")
)

// CoinPacket is the fungible-asset transfer payload.
type CoinPacket struct {
	Type        uint8
	RemoteAsset [32]byte // asset address on the sending chain
	Receiver    [32]byte // left-padded destination account
	Amount      uint64   // shared precision
	Unwrap      bool     // convert to native gas asset on arrival
}

// CollectiblePacket is the non-fungible transfer payload. It carries a
// token identity instead of a quantity and no remote asset address.
type CollectiblePacket struct {
	Type     uint8
	Receiver [32]byte
	TokenID  uint64
}

// EncodeCoin serializes p into its 74-byte wire form.
func EncodeCoin(p CoinPacket) []byte {
	buf := make([]byte, CoinPacketSize)
	buf[0] = p.Type
	copy(buf[1:33], p.RemoteAsset[:])
	copy(buf[33:65], p.Receiver[:])
	binary.BigEndian.PutUint64(buf[65:73], p.Amount)
	if p.Unwrap {
		buf[73] = 1
	}
	return buf
}

// DecodeCoin parses a 74-byte coin payload. The leading type byte must
// equal want; a send-typed packet looping back as a receive is rejected
// here before any state is touched.
func DecodeCoin(payload []byte, want uint8) (CoinPacket, error) {
	if len(payload) != CoinPacketSize {
		return CoinPacket{}, ErrMalformedPacket
	}
	if payload[0] != want {
		return CoinPacket{}, ErrUnexpectedPacketType
	}
	var p CoinPacket
	p.Type = payload[0]
	copy(p.RemoteAsset[:], payload[1:33])
	copy(p.Receiver[:], payload[33:65])
	p.Amount = binary.BigEndian.Uint64(payload[65:73])
	p.Unwrap = payload[73] != 0
	return p, nil
}

// EncodeCollectible serializes p into its 41-byte wire form.
func EncodeCollectible(p CollectiblePacket) []byte {
	buf := make([]byte, CollectiblePacketSize)
	buf[0] = p.Type
	copy(buf[1:33], p.Receiver[:])
	binary.BigEndian.PutUint64(buf[33:41], p.TokenID)
	return buf
}

// DecodeCollectible parses a 41-byte collectible payload.
func DecodeCollectible(payload []byte, want uint8) (CollectiblePacket, error) {
	if len(payload) != CollectiblePacketSize {
		return CollectiblePacket{}, ErrMalformedPacket
	}
	if payload[0] != want {
		return CollectiblePacket{}, ErrUnexpectedPacketType
	}
	var p CollectiblePacket
	p.Type = payload[0]
	copy(p.Receiver[:], payload[1:33])
	p.TokenID = binary.BigEndian.Uint64(payload[33:41])
	return p, nil
}

// TransferID derives a stable identifier for an inbound payload from its
// source chain, the endpoint's delivery nonce, and the raw payload bytes.
// The nonce is what separates two legitimate transfers whose payloads are
// byte-identical (same path, same receiver, same amount); without it the
// second would collide with the first. Used as the replay-guard key.
func TransferID(srcChain uint32, nonce uint64, payload []byte) [32]byte {
	h := blake3.New()
	var hdr [12]byte
	binary.BigEndian.PutUint32(hdr[:4], srcChain)
	binary.BigEndian.PutUint64(hdr[4:], nonce)
	h.Write(hdr[:])
	h.Write(payload)
	var id [32]byte
	copy(id[:], h.Sum(nil))
	return id
}
