package lapigrpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/blockberries/lapi"
	"github.com/blockberries/lapi/metadata"
)

// Node is what the server exposes over the wire: the raw key-value
// surface plus the metadata document describing it.
type Node interface {
	lapi.Transport

	// Metadata returns the node's current metadata document.
	Metadata(ctx context.Context) (*metadata.Metadata, error)
}

// Compile-time interface check.
var _ StateServiceServer = (*Server)(nil)

// Server adapts a Node to the StateService gRPC surface.
type Server struct {
	node Node
}

// NewServer creates a StateService server over the given node.
func NewServer(node Node) *Server {
	return &Server{node: node}
}

// Register registers the service on a gRPC server.
func (s *Server) Register(gs *grpc.Server) {
	RegisterStateServiceServer(gs, s)
}

func (s *Server) Fetch(ctx context.Context, req *FetchRequest) (*FetchResponse, error) {
	value, found, err := s.node.Fetch(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	return &FetchResponse{Value: value, Found: found}, nil
}

func (s *Server) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	hash, err := s.node.Submit(ctx, req.Extrinsic)
	if err != nil {
		return nil, err
	}
	return &SubmitResponse{Hash: hash}, nil
}

func (s *Server) Metadata(ctx context.Context, _ *MetadataRequest) (*MetadataDoc, error) {
	meta, err := s.node.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	doc := DocFromMetadata(meta)
	return &doc, nil
}
