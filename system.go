package lapi

import (
	"context"

	"github.com/blockberries/lapi/async"
	"github.com/blockberries/lapi/codec"
	"github.com/blockberries/lapi/metadata"
	"github.com/blockberries/lapi/types"
)

// Compile-time capability check.
var _ SystemCalls = (*XtBuilder)(nil)

// AccountNonce reads System.AccountNonce for an account. A schema
// mismatch fails synchronously; the returned future only carries
// transport and decode outcomes.
func (c *Client) AccountNonce(ctx context.Context, account types.AccountID) (*async.Future[types.Index], error) {
	m, err := c.storageMap("System", "AccountNonce")
	if err != nil {
		return nil, err
	}
	key := m.Key(account[:])
	def := m.Default()
	return async.Go(func() (types.Index, error) {
		raw, err := c.fetchOr(ctx, key, def)
		if err != nil {
			return 0, err
		}
		return codec.DecodeIndex(raw)
	}), nil
}

// SetCode stages a System.set_code call carrying the new runtime code.
func (b *XtBuilder) SetCode(code []byte) (*ValidXt, error) {
	return b.ModuleCall("System", func(mod *metadata.Module) (types.EncodedCall, error) {
		call, err := mod.Call("set_code")
		if err != nil {
			return nil, err
		}
		var e codec.Encoder
		e.ByteSlice(code)
		return call.Encode(e.Bytes()), nil
	})
}

// NonceExtra is the minimal SignedExtra: replay protection derived
// from the account nonce alone.
type NonceExtra struct {
	Nonce types.Index
}

// Encode writes the compact-encoded nonce.
func (x NonceExtra) Encode(e *codec.Encoder) {
	e.CompactUint(uint64(x.Nonce))
}

// BasicRuntime is the identity runtime binding: NonceExtra as the
// signed extra, nothing else.
type BasicRuntime struct{}

// Extra implements Runtime.
func (BasicRuntime) Extra(nonce types.Index) SignedExtra {
	return NonceExtra{Nonce: nonce}
}
