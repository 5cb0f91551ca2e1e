// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"bytes"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/Kavorix/aptos-evm-bridge/decimals"
	"github.com/Kavorix/aptos-evm-bridge/wire"
)

// Receive processes a payload the endpoint has attributed to an
// authenticated (srcChain, srcAddress) pair. The nonce is the endpoint's
// per-delivery sequence number; it keys the replay guard, since two
// legitimate transfers can carry byte-identical payloads. The path match is
// re-validated against both the attributed source address and the
// packet's embedded remote asset address; a disagreement means a
// messaging-layer authentication gap or a stale registration and rejects
// the transfer before any state changes.
//
// Value is credited to the path unconditionally once validated, then
// minted to the receiver, or stashed when the receiver cannot yet hold
// the asset.
func (g *Gateway) Receive(assetAddr common.Address, srcChain uint32, srcAddress []byte, nonce uint64, payload []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	info, err := g.assetInfo(assetAddr)
	if err != nil {
		return err
	}
	if err := g.cfg.AssertUnpaused(assetAddr); err != nil {
		return err
	}

	var transferID [32]byte
	if g.seen != nil {
		transferID = wire.TransferID(srcChain, nonce, payload)
		if g.seen[transferID] {
			return ErrAlreadyProcessed
		}
	}

	packet, err := wire.DecodeCoin(payload, wire.PacketTypeReceive)
	if err != nil {
		return err
	}

	path, ok := g.registry.Path(assetAddr, srcChain)
	if !ok {
		return ErrRemotePathNotFound
	}
	if !bytes.Equal(srcAddress, path.RemoteAddress[:]) {
		return ErrInvalidRemoteAddress
	}
	if packet.RemoteAsset != path.RemoteAddress {
		return ErrInvalidRemoteAddress
	}

	if err := g.liquidity.Credit(assetAddr, srcChain, packet.Amount); err != nil {
		return err
	}

	amountLocal := decimals.ToLocal(packet.Amount, info.rate)
	receiver := common.BytesToAddress(packet.Receiver[:])

	stashed := false
	if info.handle.IsProvisioned(receiver) {
		if err := info.handle.Mint(receiver, amountLocal); err != nil {
			// Undo the credit; the transfer did not land.
			g.liquidity.Debit(assetAddr, srcChain, packet.Amount)
			return err
		}
	} else {
		if err := g.stash.StashCoin(assetAddr, receiver, amountLocal); err != nil {
			// Undo the credit; the transfer did not land.
			g.liquidity.Debit(assetAddr, srcChain, packet.Amount)
			return err
		}
		stashed = true
	}

	if g.seen != nil {
		g.seen[transferID] = true
	}

	g.events = append(g.events, Event{
		Kind:     EventReceive,
		Asset:    assetAddr,
		Chain:    srcChain,
		Receiver: packet.Receiver,
		Local:    receiver,
		Amount:   amountLocal,
		Unwrap:   packet.Unwrap,
		Stashed:  stashed,
	})
	g.log.Info("bridge receive",
		"asset", assetAddr,
		"srcChain", srcChain,
		"receiver", receiver,
		"amountShared", packet.Amount,
		"stashed", stashed,
	)

	return nil
}

// Claim delivers the receiver's stashed amount, exactly once. The
// receiver must be provisioned by claim time. The entry is consumed
// before the mint so a durable-store failure cannot leave a minted
// amount still claimable; a failed mint restores the entry.
func (g *Gateway) Claim(assetAddr, receiver common.Address) (*uint256.Int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	info, err := g.assetInfo(assetAddr)
	if err != nil {
		return nil, err
	}
	if err := g.cfg.AssertUnpaused(assetAddr); err != nil {
		return nil, err
	}

	amount, err := g.stash.TakeCoin(assetAddr, receiver)
	if err != nil {
		return nil, err
	}

	if err := info.handle.Mint(receiver, amount); err != nil {
		// Put the entry back; the claim did not happen.
		if stashErr := g.stash.StashCoin(assetAddr, receiver, amount); stashErr != nil {
			g.log.Error("restoring claim entry after mint failure", "err", stashErr, "receiver", receiver)
		}
		return nil, err
	}

	g.events = append(g.events, Event{
		Kind:   EventClaim,
		Asset:  assetAddr,
		Local:  receiver,
		Amount: amount,
	})
	g.log.Info("bridge claim", "asset", assetAddr, "receiver", receiver)

	return amount, nil
}
