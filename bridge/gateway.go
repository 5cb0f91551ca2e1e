// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package bridge

import (
	"sync"

	"github.com/holiman/uint256"
	"github.com/luxfi/database"
	"github.com/luxfi/geth/common"
	log "github.com/luxfi/log"

	"github.com/Kavorix/aptos-evm-bridge/asset"
	"github.com/Kavorix/aptos-evm-bridge/decimals"
	"github.com/Kavorix/aptos-evm-bridge/messaging"
	"github.com/Kavorix/aptos-evm-bridge/wire"
)

// assetInfo is the per-asset state the gateway owns: the injected
// mint/burn capability and the local-to-shared decimal rate.
type assetInfo struct {
	handle asset.Handle
	rate   *uint256.Int
}

// Gateway composes the registry, ledger, stash, and gates into the
// bridge's two entry protocols. Every exported operation executes as one
// atomic unit under the gateway mutex: all preconditions are checked
// before any externally visible effect, and a failure leaves no partial
// state behind.
type Gateway struct {
	cfg       *Config
	registry  *PathRegistry
	liquidity *LiquidityLedger
	stash     *ClaimStash
	limiter   RateLimiter
	endpoint  messaging.Endpoint
	log       log.Logger

	assets      map[common.Address]*assetInfo
	collections map[common.Address]asset.CollectibleHandle

	// seen records processed inbound transfer ids when the replay guard
	// is enabled; nil means the endpoint is trusted to deliver each
	// payload exactly once.
	seen map[[32]byte]bool

	events []Event

	mu sync.Mutex
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger replaces the gateway logger.
func WithLogger(l log.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

// WithLimiter installs a rate limiter consulted before every debit.
func WithLimiter(l RateLimiter) Option {
	return func(g *Gateway) { g.limiter = l }
}

// WithReplayGuard makes the receive pipeline reject a payload it has
// already processed. Enable when the endpoint delivers at-least-once
// rather than exactly-once.
func WithReplayGuard() Option {
	return func(g *Gateway) { g.seen = make(map[[32]byte]bool) }
}

// NewGateway creates a bridge gateway administered by admin, stashing
// claims in db and dispatching through endpoint.
func NewGateway(admin common.Address, db database.Database, endpoint messaging.Endpoint, opts ...Option) *Gateway {
	registry := NewPathRegistry()
	g := &Gateway{
		cfg:         NewConfig(admin),
		registry:    registry,
		liquidity:   NewLiquidityLedger(registry),
		stash:       NewClaimStash(db),
		limiter:     NopLimiter{},
		endpoint:    endpoint,
		log:         log.NewTestLogger(log.InfoLevel),
		assets:      make(map[common.Address]*assetInfo),
		collections: make(map[common.Address]asset.CollectibleHandle),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config returns the gateway's administrative state.
func (g *Gateway) Config() *Config { return g.cfg }

// Registry returns the gateway's path registry.
func (g *Gateway) Registry() *PathRegistry { return g.registry }

// Liquidity returns the gateway's liquidity ledger.
func (g *Gateway) Liquidity() *LiquidityLedger { return g.liquidity }

// RegisterAsset binds a fungible asset to the gateway with its mint/burn
// capability and local precision. Admin only; one-shot per asset.
func (g *Gateway) RegisterAsset(caller, assetAddr common.Address, handle asset.Handle, localDecimals uint8) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.cfg.RequireAdmin(caller); err != nil {
		return err
	}
	if _, ok := g.assets[assetAddr]; ok {
		return ErrAlreadyRegistered
	}
	rate, err := decimals.RateFor(localDecimals)
	if err != nil {
		return err
	}
	g.assets[assetAddr] = &assetInfo{handle: handle, rate: rate}
	g.log.Info("asset registered", "asset", assetAddr, "localDecimals", localDecimals)
	return nil
}

// RegisterCollection binds a collectible collection to the gateway.
// Admin only; one-shot per collection.
func (g *Gateway) RegisterCollection(caller, collection common.Address, handle asset.CollectibleHandle) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.cfg.RequireAdmin(caller); err != nil {
		return err
	}
	if _, ok := g.collections[collection]; ok {
		return ErrAlreadyRegistered
	}
	g.collections[collection] = handle
	g.log.Info("collection registered", "collection", collection)
	return nil
}

// SetRemotePath registers the asset's address on a remote chain. Admin
// only. Pause does not block registration.
func (g *Gateway) SetRemotePath(caller, assetAddr common.Address, chain uint32, remote []byte, unwrappable bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.cfg.RequireAdmin(caller); err != nil {
		return err
	}
	if err := g.registry.Register(assetAddr, chain, remote, unwrappable); err != nil {
		return err
	}
	g.log.Info("remote path set", "asset", assetAddr, "chain", chain, "unwrappable", unwrappable)
	return nil
}

// SetGlobalPause toggles the global circuit breaker. Admin only.
func (g *Gateway) SetGlobalPause(caller common.Address, paused bool) error {
	return g.cfg.SetGlobalPause(caller, paused)
}

// SetPause toggles the per-asset circuit breaker. Admin only.
func (g *Gateway) SetPause(caller, assetAddr common.Address, paused bool) error {
	return g.cfg.SetPause(caller, assetAddr, paused)
}

// EnableCustomAdapterParams toggles acceptance of caller-supplied gas
// parameters. Admin only.
func (g *Gateway) EnableCustomAdapterParams(caller common.Address, enabled bool) error {
	return g.cfg.EnableCustomAdapterParams(caller, enabled)
}

// QuoteFee prices a coin transfer to dstChain; a pass-through to the
// endpoint parameterized by the fixed packet size.
func (g *Gateway) QuoteFee(dstChain uint32, payInAux bool, adapterParams []byte) (*uint256.Int, *uint256.Int, error) {
	return g.endpoint.Quote(dstChain, wire.CoinPacketSize, payInAux, adapterParams)
}

// Events returns the journal in commit order.
func (g *Gateway) Events() []Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Event, len(g.events))
	copy(out, g.events)
	return out
}

// checkAdapterParams validates caller-supplied gas parameters for the
// send packet type. With custom params disabled, any non-empty blob is
// rejected so gas overrides cannot slip through silently.
func (g *Gateway) checkAdapterParams(dstChain uint32, params []byte) error {
	if g.cfg.CustomAdapterParams() {
		if err := g.endpoint.ValidateAdapterParams(dstChain, wire.PacketTypeSend, params); err != nil {
			return ErrInvalidAdapterParams
		}
		return nil
	}
	if len(params) != 0 {
		return ErrInvalidAdapterParams
	}
	return nil
}

func (g *Gateway) assetInfo(assetAddr common.Address) (*assetInfo, error) {
	info, ok := g.assets[assetAddr]
	if !ok {
		return nil, ErrUnregisteredAsset
	}
	return info, nil
}
