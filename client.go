package lapi

import (
	"context"

	"github.com/blockberries/lapi/async"
	"github.com/blockberries/lapi/metadata"
	"github.com/blockberries/lapi/types"
)

// Compile-time capability checks.
var (
	_ SystemStore   = (*Client)(nil)
	_ BalancesStore = (*Client)(nil)
)

// Client is the read-path facade. It holds the immutable metadata
// document, the transport collaborator and the runtime bindings;
// it keeps no mutable state, so any number of requests may be in
// flight concurrently against the same Client.
type Client struct {
	meta      *metadata.Metadata
	transport Transport
	runtime   Runtime
}

// New creates a client over a pre-parsed metadata document.
func New(meta *metadata.Metadata, transport Transport, runtime Runtime) *Client {
	return &Client{meta: meta, transport: transport, runtime: runtime}
}

// Metadata returns the document the client resolves against.
func (c *Client) Metadata() *metadata.Metadata {
	return c.meta
}

// FetchOr fetches the raw value at key, resolving to def if the node
// has no entry. This is the single place absence is folded into the
// default; genuine transport errors still fail the future.
func (c *Client) FetchOr(ctx context.Context, key types.StorageKey, def []byte) *async.Future[[]byte] {
	return async.Go(func() ([]byte, error) {
		return c.fetchOr(ctx, key, def)
	})
}

func (c *Client) fetchOr(ctx context.Context, key types.StorageKey, def []byte) ([]byte, error) {
	value, found, err := c.transport.Fetch(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return def, nil
	}
	return value, nil
}

// storageMap resolves module/item to a map accessor. The error, if
// any, is a *metadata.Error surfaced before any network request.
func (c *Client) storageMap(module, item string) (*metadata.StorageMap, error) {
	mod, err := c.meta.Module(module)
	if err != nil {
		return nil, err
	}
	entry, err := mod.Storage(item)
	if err != nil {
		return nil, err
	}
	return entry.Map()
}

// XtBuilder starts a fresh extrinsic builder for one outgoing
// transaction signed by signer. Builders are single-use: stage one
// call, submit, discard.
func (c *Client) XtBuilder(signer Signer) *XtBuilder {
	return &XtBuilder{client: c, signer: signer}
}
