package lapi

import (
	"context"

	"github.com/blockberries/lapi/async"
	"github.com/blockberries/lapi/codec"
	"github.com/blockberries/lapi/metadata"
	"github.com/blockberries/lapi/types"
)

// Compile-time capability check.
var _ BalancesCalls = (*XtBuilder)(nil)

// FreeBalance reads Balances.FreeBalance for an account.
//
// The free balance is the only balance that matters for most token
// operations; an account the node has never seen resolves to the
// item's declared default rather than an error.
func (c *Client) FreeBalance(ctx context.Context, account types.AccountID) (*async.Future[types.Balance], error) {
	m, err := c.storageMap("Balances", "FreeBalance")
	if err != nil {
		return nil, err
	}
	key := m.Key(account[:])
	def := m.Default()
	return async.Go(func() (types.Balance, error) {
		raw, err := c.fetchOr(ctx, key, def)
		if err != nil {
			return types.Balance{}, err
		}
		return codec.DecodeBalance(raw)
	}), nil
}

// Transfer stages a Balances.transfer call moving amount of free
// balance to another account. The amount travels compact-encoded;
// the destination travels as its lookup-source bytes.
func (b *XtBuilder) Transfer(to types.Address, amount types.Balance) (*ValidXt, error) {
	return b.ModuleCall("Balances", func(mod *metadata.Module) (types.EncodedCall, error) {
		call, err := mod.Call("transfer")
		if err != nil {
			return nil, err
		}
		var e codec.Encoder
		e.Address(to)
		e.CompactU256(&amount)
		return call.Encode(e.Bytes()), nil
	})
}
