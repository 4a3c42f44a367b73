package lapigrpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/blockberries/lapi"
	"github.com/blockberries/lapi/metadata"
	"github.com/blockberries/lapi/types"
)

// Compile-time interface check.
var _ lapi.Transport = (*Client)(nil)

// Client implements lapi.Transport against a remote node over gRPC.
// gRPC status errors propagate to the caller unchanged; retry policy,
// if any, is the caller's.
type Client struct {
	cc *grpc.ClientConn
}

// Dial connects to a remote node's StateService.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(CramberryCodec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("lapi client: dial %s: %w", addr, err)
	}
	return &Client{cc: cc}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

// Fetch implements lapi.Transport.
func (c *Client) Fetch(ctx context.Context, key types.StorageKey) ([]byte, bool, error) {
	req := &FetchRequest{Key: key}
	resp := new(FetchResponse)
	if err := c.cc.Invoke(ctx, fullMethod("Fetch"), req, resp); err != nil {
		return nil, false, err
	}
	return resp.Value, resp.Found, nil
}

// Submit implements lapi.Transport.
func (c *Client) Submit(ctx context.Context, extrinsic []byte) (types.Hash, error) {
	req := &SubmitRequest{Extrinsic: extrinsic}
	resp := new(SubmitResponse)
	if err := c.cc.Invoke(ctx, fullMethod("Submit"), req, resp); err != nil {
		return types.Hash{}, err
	}
	return resp.Hash, nil
}

// Metadata fetches the node's metadata document and rebuilds the
// resolver from it, so a client can bootstrap against whatever schema
// the node is running.
func (c *Client) Metadata(ctx context.Context) (*metadata.Metadata, error) {
	req := &MetadataRequest{}
	resp := new(MetadataDoc)
	if err := c.cc.Invoke(ctx, fullMethod("Metadata"), req, resp); err != nil {
		return nil, err
	}
	return resp.Build(), nil
}
