// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package messaging

import (
	"sync"

	"github.com/holiman/uint256"
)

// Envelope is one dispatched message as recorded by the Loopback. Nonce
// is the delivery sequence number the endpoint assigns; receivers key
// replay detection on it.
type Envelope struct {
	DstChain   uint32
	DstAddress [32]byte
	Nonce      uint64
	Payload    []byte
}

// Loopback is an in-process Endpoint. It charges a flat native fee,
// records every dispatched envelope, and can be primed to fail the next
// send. Used by tests and single-process deployments.
type Loopback struct {
	// FlatFee is charged per message in the native asset.
	FlatFee *uint256.Int

	// MinAdapterParams is the shortest accepted non-empty gas parameter
	// blob. Zero-length params are always accepted.
	MinAdapterParams int

	sent     []Envelope
	nonce    uint64
	failNext error

	mu sync.Mutex
}

var _ Endpoint = (*Loopback)(nil)

// NewLoopback creates a loopback endpoint with the given flat fee.
func NewLoopback(flatFee uint64) *Loopback {
	return &Loopback{
		FlatFee:          uint256.NewInt(flatFee),
		MinAdapterParams: 2,
	}
}

// FailNext makes the next Send return err without recording anything.
func (lb *Loopback) FailNext(err error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	lb.failNext = err
}

func (lb *Loopback) Send(dstChain uint32, dstAddress [32]byte, payload []byte, nativeFee, auxFee *uint256.Int) (*uint256.Int, error) {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if lb.failNext != nil {
		err := lb.failNext
		lb.failNext = nil
		return nil, err
	}
	if nativeFee == nil || nativeFee.Lt(lb.FlatFee) {
		return nil, ErrInsufficientFee
	}

	cp := make([]byte, len(payload))
	copy(cp, payload)
	lb.nonce++
	lb.sent = append(lb.sent, Envelope{
		DstChain:   dstChain,
		DstAddress: dstAddress,
		Nonce:      lb.nonce,
		Payload:    cp,
	})

	return new(uint256.Int).Sub(nativeFee, lb.FlatFee), nil
}

func (lb *Loopback) Quote(dstChain uint32, payloadSize int, payInAux bool, adapterParams []byte) (*uint256.Int, *uint256.Int, error) {
	if err := lb.ValidateAdapterParams(dstChain, 0, adapterParams); err != nil {
		return nil, nil, err
	}
	if payInAux {
		return uint256.NewInt(0), new(uint256.Int).Set(lb.FlatFee), nil
	}
	return new(uint256.Int).Set(lb.FlatFee), uint256.NewInt(0), nil
}

func (lb *Loopback) ValidateAdapterParams(dstChain uint32, packetType uint8, adapterParams []byte) error {
	if len(adapterParams) != 0 && len(adapterParams) < lb.MinAdapterParams {
		return ErrInvalidGasParams
	}
	return nil
}

// Sent returns the envelopes dispatched so far, in order.
func (lb *Loopback) Sent() []Envelope {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	out := make([]Envelope, len(lb.sent))
	copy(out, lb.sent)
	return out
}
