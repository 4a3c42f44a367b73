package lapigrpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
)

const serviceName = "github.com/blockberries/lapi.v1.StateService"

// StateServiceServer is the node-side interface for the StateService.
type StateServiceServer interface {
	Fetch(context.Context, *FetchRequest) (*FetchResponse, error)
	Submit(context.Context, *SubmitRequest) (*SubmitResponse, error)
	Metadata(context.Context, *MetadataRequest) (*MetadataDoc, error)
}

// RegisterStateServiceServer registers the StateService on a gRPC
// server.
func RegisterStateServiceServer(s *grpc.Server, srv StateServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// --- Handler functions ---

func handlerFetch(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(FetchRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(StateServiceServer).Fetch(ctx, req)
}

func handlerSubmit(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(SubmitRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(StateServiceServer).Submit(ctx, req)
}

func handlerMetadata(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
	req := new(MetadataRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(StateServiceServer).Metadata(ctx, req)
}

// fullMethod builds the full gRPC method path.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*StateServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Fetch", Handler: handlerFetch},
		{MethodName: "Submit", Handler: handlerSubmit},
		{MethodName: "Metadata", Handler: handlerMetadata},
	},
	Metadata: "github.com/blockberries/lapi/v1/state.cram",
}
