package lapi

import (
	"context"

	"github.com/blockberries/lapi/async"
	"github.com/blockberries/lapi/codec"
	"github.com/blockberries/lapi/metadata"
	"github.com/blockberries/lapi/types"
)

// signedVersion tags a signed extrinsic in the framing byte.
const signedVersion byte = 0x84

// XtBuilder is the initial state of the extrinsic builder: no call
// staged yet. The only transition is ModuleCall, which hands back a
// *ValidXt; there is no way back. A failed or submitted transaction
// means constructing a new builder, not rewinding this one.
type XtBuilder struct {
	client *Client
	signer Signer
}

// ModuleCall resolves the module and invokes build with its
// descriptor to obtain exactly one encoded call. On success the
// returned ValidXt carries the call and is ready to submit; on a
// resolution or encoding failure no transition occurs and the error
// (a *metadata.Error for schema mismatches) is returned synchronously.
func (b *XtBuilder) ModuleCall(module string, build func(*metadata.Module) (types.EncodedCall, error)) (*ValidXt, error) {
	mod, err := b.client.meta.Module(module)
	if err != nil {
		return nil, err
	}
	call, err := build(mod)
	if err != nil {
		return nil, err
	}
	return &ValidXt{client: b.client, signer: b.signer, call: call}, nil
}

// ValidXt is the terminal builder state: exactly one encoded call is
// present. Only this type can submit, so an empty or unvalidated
// extrinsic is unrepresentable at the submission boundary.
type ValidXt struct {
	client *Client
	signer Signer
	call   types.EncodedCall
}

// Call returns the staged encoded call.
func (x *ValidXt) Call() types.EncodedCall {
	return x.call
}

// Submit signs and submits the extrinsic, returning a future that
// resolves to the node's block/transaction hash. The signer's nonce
// is read (not reserved) at submission time; callers submitting
// concurrently for the same account must serialize themselves.
func (x *ValidXt) Submit(ctx context.Context) *async.Future[types.Hash] {
	if len(x.call) == 0 {
		panic("lapi: ValidXt without a call")
	}
	return async.Go(func() (types.Hash, error) {
		nonceFut, err := x.client.AccountNonce(ctx, x.signer.AccountID())
		if err != nil {
			return types.Hash{}, err
		}
		nonce, err := nonceFut.Await(ctx)
		if err != nil {
			return types.Hash{}, err
		}

		extra := x.client.runtime.Extra(nonce)
		xt, err := encodeExtrinsic(x.signer, extra, x.call)
		if err != nil {
			return types.Hash{}, err
		}
		return x.client.transport.Submit(ctx, xt)
	})
}

// encodeExtrinsic signs call||extra and frames the signed extrinsic:
//
//	compact(len(body)) || version || signer || signature || extra || call
func encodeExtrinsic(signer Signer, extra SignedExtra, call types.EncodedCall) ([]byte, error) {
	var payload codec.Encoder
	payload.Raw(call)
	extra.Encode(&payload)

	sig, err := signer.Sign(payload.Bytes())
	if err != nil {
		return nil, err
	}

	var body codec.Encoder
	body.Byte(signedVersion)
	body.AccountID(signer.AccountID())
	body.Raw(sig)
	extra.Encode(&body)
	body.Raw(call)

	var out codec.Encoder
	out.ByteSlice(body.Bytes())
	return out.Bytes(), nil
}
