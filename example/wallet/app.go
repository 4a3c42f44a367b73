// Package wallet implements a minimal consumer of the ledger client:
// read balances, stage transfers through the extrinsic builder, and
// submit them.
//
// It demonstrates the intended call shape: schema mismatches fail
// fast and synchronously, network outcomes arrive via the future.
package wallet

import (
	"context"

	"github.com/blockberries/lapi"
	"github.com/blockberries/lapi/types"
)

// Wallet is a single-account view over a ledger client.
type Wallet struct {
	client *lapi.Client
	signer lapi.Signer
}

// New creates a wallet signing as signer.
func New(client *lapi.Client, signer lapi.Signer) *Wallet {
	return &Wallet{client: client, signer: signer}
}

// Balance returns the free balance of any account.
func (w *Wallet) Balance(ctx context.Context, account types.AccountID) (types.Balance, error) {
	fut, err := w.client.FreeBalance(ctx, account)
	if err != nil {
		return types.Balance{}, err
	}
	return fut.Await(ctx)
}

// Nonce returns the wallet account's current nonce.
func (w *Wallet) Nonce(ctx context.Context) (types.Index, error) {
	fut, err := w.client.AccountNonce(ctx, w.signer.AccountID())
	if err != nil {
		return 0, err
	}
	return fut.Await(ctx)
}

// Send transfers amount to another account and waits for the node's
// acknowledgement hash.
func (w *Wallet) Send(ctx context.Context, to types.Address, amount types.Balance) (types.Hash, error) {
	xt, err := w.client.XtBuilder(w.signer).Transfer(to, amount)
	if err != nil {
		return types.Hash{}, err
	}
	return xt.Submit(ctx).Await(ctx)
}
