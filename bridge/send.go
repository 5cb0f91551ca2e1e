// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"

	"github.com/Kavorix/aptos-evm-bridge/decimals"
	"github.com/Kavorix/aptos-evm-bridge/wire"
)

// SendFrom locks value on this chain and dispatches a transfer packet to
// dstChain. Every step is a hard precondition: pure checks run before
// any state is touched, the burn happens only after the path debit, and
// a dispatch failure unwinds both. Dust below the shared precision stays
// with the sender; only the post-dust amount is burned and sent.
//
// Returns any fee overpayment refunded by the endpoint.
func (g *Gateway) SendFrom(
	sender common.Address,
	assetAddr common.Address,
	dstChain uint32,
	receiver []byte,
	amountLocal *uint256.Int,
	nativeFee, auxFee *uint256.Int,
	unwrap bool,
	adapterParams []byte,
) (*uint256.Int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	info, err := g.assetInfo(assetAddr)
	if err != nil {
		return nil, err
	}
	if err := g.cfg.AssertUnpaused(assetAddr); err != nil {
		return nil, err
	}
	if !validChainID(dstChain) {
		return nil, ErrInvalidChainID
	}
	if len(receiver) != RemoteAddressLength {
		return nil, ErrInvalidAddressLength
	}

	path, ok := g.registry.Path(assetAddr, dstChain)
	if !ok {
		return nil, ErrRemotePathNotFound
	}

	postDust, dust := decimals.RemoveDust(amountLocal, info.rate)
	amountShared, err := decimals.ToShared(postDust, info.rate)
	if err != nil {
		return nil, err
	}
	if amountShared == 0 {
		return nil, ErrAmountTooSmall
	}

	if err := g.checkAdapterParams(dstChain, adapterParams); err != nil {
		return nil, err
	}
	if unwrap && !path.Unwrappable {
		return nil, ErrNotUnwrappable
	}

	if err := g.limiter.TryInsert(assetAddr, dstChain, amountShared); err != nil {
		return nil, err
	}

	if err := g.liquidity.Debit(assetAddr, dstChain, amountShared); err != nil {
		g.limiter.Remove(assetAddr, dstChain, amountShared)
		return nil, err
	}

	if err := info.handle.Burn(sender, postDust); err != nil {
		// Undo the debit; the operation must not commit partially.
		g.liquidity.Credit(assetAddr, dstChain, amountShared)
		g.limiter.Remove(assetAddr, dstChain, amountShared)
		return nil, err
	}

	var toAddr [32]byte
	copy(toAddr[:], receiver)
	payload := wire.EncodeCoin(wire.CoinPacket{
		Type:        wire.PacketTypeReceive,
		RemoteAsset: path.RemoteAddress,
		Receiver:    toAddr,
		Amount:      amountShared,
		Unwrap:      unwrap,
	})

	refund, err := g.endpoint.Send(dstChain, path.RemoteAddress, payload, nativeFee, auxFee)
	if err != nil {
		// Unwind the burn, the debit, and the consumed window budget.
		if mintErr := info.handle.Mint(sender, postDust); mintErr != nil {
			g.log.Error("restoring sender balance after dispatch failure", "err", mintErr)
		}
		g.liquidity.Credit(assetAddr, dstChain, amountShared)
		g.limiter.Remove(assetAddr, dstChain, amountShared)
		return nil, err
	}

	g.events = append(g.events, Event{
		Kind:     EventSend,
		Asset:    assetAddr,
		Chain:    dstChain,
		Receiver: toAddr,
		Amount:   postDust,
		Unwrap:   unwrap,
	})
	g.log.Info("bridge send",
		"asset", assetAddr,
		"dstChain", dstChain,
		"amountShared", amountShared,
		"dust", dust,
		"unwrap", unwrap,
	)

	return refund, nil
}
