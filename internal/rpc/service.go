// Package rpc exposes layout assembly over gRPC. Messages are
// google.protobuf.Struct values so the service needs no generated code.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "panelmap.v1.LayoutService"

// LayoutServiceServer is the server API of LayoutService.
//
// Assemble takes {"platform", "title", "size"} and returns {"title", "layouts"};
// a size of 0 asks for every panel size. ListTitles takes {"platform"} and
// returns {"platform", "titles"}.
type LayoutServiceServer interface {
	Assemble(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTitles(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterLayoutServiceServer registers srv with s.
func RegisterLayoutServiceServer(s grpc.ServiceRegistrar, srv LayoutServiceServer) {
	s.RegisterService(&LayoutServiceDesc, srv)
}

func assembleHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LayoutServiceServer).Assemble(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/Assemble",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LayoutServiceServer).Assemble(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listTitlesHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LayoutServiceServer).ListTitles(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/ListTitles",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LayoutServiceServer).ListTitles(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// LayoutServiceDesc is the grpc.ServiceDesc for LayoutService.
var LayoutServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LayoutServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Assemble", Handler: assembleHandler},
		{MethodName: "ListTitles", Handler: listTitlesHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "panelmap/v1/layout.proto",
}

// Client calls LayoutService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Assemble requests the layouts of title on platform; size 0 means all sizes.
func (c *Client) Assemble(ctx context.Context, platform, title string, size int, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(map[string]interface{}{
		"platform": platform,
		"title":    title,
		"size":     size,
	})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/Assemble", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTitles returns the title names of platform.
func (c *Client) ListTitles(ctx context.Context, platform string, opts ...grpc.CallOption) ([]string, error) {
	in, err := structpb.NewStruct(map[string]interface{}{"platform": platform})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ListTitles", in, out, opts...); err != nil {
		return nil, err
	}
	var names []string
	for _, v := range out.GetFields()["titles"].GetListValue().GetValues() {
		names = append(names, v.GetStringValue())
	}
	return names, nil
}
