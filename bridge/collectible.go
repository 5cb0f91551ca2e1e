// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"bytes"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/Kavorix/aptos-evm-bridge/wire"
)

// SendCollectible dispatches one token of a registered collection to
// dstChain. Collectible transfers carry token identity rather than
// value: no normalization, no liquidity accounting, no unwrap.
func (g *Gateway) SendCollectible(
	sender common.Address,
	collection common.Address,
	dstChain uint32,
	receiver []byte,
	tokenID uint64,
	nativeFee, auxFee *uint256.Int,
	adapterParams []byte,
) (*uint256.Int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	handle, ok := g.collections[collection]
	if !ok {
		return nil, ErrUnregisteredAsset
	}
	if err := g.cfg.AssertUnpaused(collection); err != nil {
		return nil, err
	}
	if !validChainID(dstChain) {
		return nil, ErrInvalidChainID
	}
	if len(receiver) != RemoteAddressLength {
		return nil, ErrInvalidAddressLength
	}

	path, ok := g.registry.Path(collection, dstChain)
	if !ok {
		return nil, ErrRemotePathNotFound
	}
	if err := g.checkAdapterParams(dstChain, adapterParams); err != nil {
		return nil, err
	}

	if err := handle.Burn(sender, tokenID); err != nil {
		return nil, err
	}

	var toAddr [32]byte
	copy(toAddr[:], receiver)
	payload := wire.EncodeCollectible(wire.CollectiblePacket{
		Type:     wire.PacketTypeReceive,
		Receiver: toAddr,
		TokenID:  tokenID,
	})

	refund, err := g.endpoint.Send(dstChain, path.RemoteAddress, payload, nativeFee, auxFee)
	if err != nil {
		// Unwind the burn.
		if mintErr := handle.Mint(sender, tokenID); mintErr != nil {
			g.log.Error("restoring token after dispatch failure", "err", mintErr, "tokenID", tokenID)
		}
		return nil, err
	}

	g.events = append(g.events, Event{
		Kind:     EventSend,
		Asset:    collection,
		Chain:    dstChain,
		Receiver: toAddr,
		TokenID:  tokenID,
	})
	g.log.Info("bridge send collectible", "collection", collection, "dstChain", dstChain, "tokenID", tokenID)

	return refund, nil
}

// ReceiveCollectible processes an inbound collectible payload attributed
// to an authenticated (srcChain, srcAddress) pair under the endpoint's
// delivery nonce. The 41-byte packet embeds no asset address, so only
// the attributed source is re-validated against the registered path.
func (g *Gateway) ReceiveCollectible(collection common.Address, srcChain uint32, srcAddress []byte, nonce uint64, payload []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	handle, ok := g.collections[collection]
	if !ok {
		return ErrUnregisteredAsset
	}
	if err := g.cfg.AssertUnpaused(collection); err != nil {
		return err
	}

	var transferID [32]byte
	if g.seen != nil {
		transferID = wire.TransferID(srcChain, nonce, payload)
		if g.seen[transferID] {
			return ErrAlreadyProcessed
		}
	}

	packet, err := wire.DecodeCollectible(payload, wire.PacketTypeReceive)
	if err != nil {
		return err
	}

	path, ok := g.registry.Path(collection, srcChain)
	if !ok {
		return ErrRemotePathNotFound
	}
	if !bytes.Equal(srcAddress, path.RemoteAddress[:]) {
		return ErrInvalidRemoteAddress
	}

	receiver := common.BytesToAddress(packet.Receiver[:])

	stashed := false
	if handle.IsProvisioned(receiver) {
		if err := handle.Mint(receiver, packet.TokenID); err != nil {
			return err
		}
	} else {
		if err := g.stash.StashCollectible(collection, receiver, packet.TokenID); err != nil {
			return err
		}
		stashed = true
	}

	if g.seen != nil {
		g.seen[transferID] = true
	}

	g.events = append(g.events, Event{
		Kind:     EventReceive,
		Asset:    collection,
		Chain:    srcChain,
		Receiver: packet.Receiver,
		Local:    receiver,
		TokenID:  packet.TokenID,
		Stashed:  stashed,
	})
	g.log.Info("bridge receive collectible", "collection", collection, "srcChain", srcChain, "tokenID", packet.TokenID, "stashed", stashed)

	return nil
}

// ClaimCollectible delivers a stashed token, exactly once. The entry is
// consumed before the mint; a failed mint restores it.
func (g *Gateway) ClaimCollectible(collection, receiver common.Address, tokenID uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	handle, ok := g.collections[collection]
	if !ok {
		return ErrUnregisteredAsset
	}
	if err := g.cfg.AssertUnpaused(collection); err != nil {
		return err
	}

	if err := g.stash.TakeCollectible(collection, receiver, tokenID); err != nil {
		return err
	}

	if err := handle.Mint(receiver, tokenID); err != nil {
		// Put the entry back; the claim did not happen.
		if stashErr := g.stash.StashCollectible(collection, receiver, tokenID); stashErr != nil {
			g.log.Error("restoring claim entry after mint failure", "err", stashErr, "tokenID", tokenID)
		}
		return err
	}

	g.events = append(g.events, Event{
		Kind:    EventClaim,
		Asset:   collection,
		Local:   receiver,
		TokenID: tokenID,
	})
	g.log.Info("bridge claim collectible", "collection", collection, "receiver", receiver, "tokenID", tokenID)

	return nil
}
