// Package lapi is a metadata-driven client layer for modular,
// schema-evolving ledger runtimes. Instead of baking the node's
// storage layout and call encodings in at compile time, it resolves
// both at runtime against the node's metadata document while keeping
// the per-module surface strongly typed.
//
// The [Client] owns the read path (resolve → derive key → fetch or
// default). Writes go through the staged extrinsic builder: an
// [XtBuilder] accepts exactly one call and becomes a [ValidXt], the
// only type that can submit. Schema mismatches surface synchronously
// as metadata errors; network failures arrive through the returned
// future.
package lapi

import (
	"context"

	"github.com/blockberries/lapi/async"
	"github.com/blockberries/lapi/codec"
	"github.com/blockberries/lapi/types"
)

// Transport carries raw bytes to and from the remote node. The client
// never opens a connection itself. Errors returned here propagate to
// callers unchanged; the client does not retry.
type Transport interface {
	// Fetch reads the raw value at a storage key. found is false when
	// the node has no entry for the key; that is not an error.
	Fetch(ctx context.Context, key types.StorageKey) (value []byte, found bool, err error)

	// Submit hands a finished extrinsic to the node and returns the
	// resulting block or transaction hash.
	Submit(ctx context.Context, extrinsic []byte) (types.Hash, error)
}

// Signer produces signatures compatible with the runtime's extrinsic
// format. The scheme is opaque to this package.
type Signer interface {
	// AccountID identifies the signing account.
	AccountID() types.AccountID

	// Sign signs the extrinsic payload.
	Sign(payload []byte) (types.Signature, error)
}

// SignedExtra is the module-defined additional data bundled into the
// signed payload of an extrinsic (replay protection and friends).
type SignedExtra interface {
	Encode(e *codec.Encoder)
}

// Runtime bundles the chain-specific bindings a concrete runtime
// supplies once and every module reuses.
type Runtime interface {
	// Extra derives the signed extra from the signer's account nonce.
	Extra(nonce types.Index) SignedExtra
}

// SystemStore is the System module's read surface.
type SystemStore interface {
	// AccountNonce returns the number of prior extrinsics for an
	// account, or the declared default if the account is unknown.
	AccountNonce(ctx context.Context, account types.AccountID) (*async.Future[types.Index], error)
}

// SystemCalls is the System module's write surface on the builder.
type SystemCalls interface {
	// SetCode stages a runtime code replacement.
	SetCode(code []byte) (*ValidXt, error)
}

// BalancesStore is the Balances module's read surface.
type BalancesStore interface {
	// FreeBalance returns the liquid balance of an account, or the
	// declared default if the account is unknown.
	FreeBalance(ctx context.Context, account types.AccountID) (*async.Future[types.Balance], error)
}

// BalancesCalls is the Balances module's write surface on the builder.
type BalancesCalls interface {
	// Transfer stages a transfer of free balance to another account.
	Transfer(to types.Address, amount types.Balance) (*ValidXt, error)
}
