// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package messaging defines the cross-chain messaging collaborator the
// bridge core hands its packets to. The endpoint is trusted to deliver
// payloads ordered and authenticated between two registered endpoints;
// the core only encodes, dispatches, and accounts.
package messaging

import (
	"errors"

	"github.com/holiman/uint256"
)

var (
	ErrInsufficientFee  = errors.New("insufficient message fee")
	ErrChainUnreachable = errors.New("destination chain unreachable")
	ErrInvalidGasParams = errors.New("invalid gas parameters")
)

// Endpoint is the messaging layer the bridge dispatches through.
type Endpoint interface {
	// Send hands a payload to the relay for the destination chain and
	// address, paying nativeFee plus auxFee. It returns any fee
	// overpayment to be refunded to the caller.
	Send(dstChain uint32, dstAddress [32]byte, payload []byte, nativeFee, auxFee *uint256.Int) (refund *uint256.Int, err error)

	// Quote prices delivery of a payload of the given size.
	Quote(dstChain uint32, payloadSize int, payInAux bool, adapterParams []byte) (nativeFee, auxFee *uint256.Int, err error)

	// ValidateAdapterParams checks caller-supplied gas parameters for the
	// given packet type against the endpoint's per-chain configuration.
	ValidateAdapterParams(dstChain uint32, packetType uint8, adapterParams []byte) error
}
