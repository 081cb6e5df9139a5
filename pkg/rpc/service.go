// Package rpc is the transport glue: a hand-wired gRPC service (no .proto
// schema is part of this corpus, see pkg/wire/codec) exposing six methods
// (HostSession, ListSessions, JoinSession, StartSession, ServerEvents,
// RespondToServerEvent), plus the server/client types that sit on top of it
// and speak domain types.
//
// The shape of CleanServer/CleanClient/serviceDesc below is the same shape
// protoc-gen-go-grpc emits for a service with one server-streaming method
// and five unary ones; it is hand-authored here because no protoc step
// runs in this corpus.
package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/deonlabs/clean-session/pkg/wire"
	"github.com/deonlabs/clean-session/pkg/wire/codec"
)

const serviceName = "clean.Clean"

// CleanServer is the wire-facing service interface: every method operates
// on WireXxx types, never on domain types. Adapter (server.go) implements
// this by converting to/from a Domain.
type CleanServer interface {
	HostSession(context.Context, *wire.WireHostInfo) (*wire.WireSessionData, error)
	ListSessions(context.Context, *wire.WireEmpty) (*wire.WireSessions, error)
	JoinSession(context.Context, *wire.WireJoinInfo) (*wire.WireEmpty, error)
	StartSession(context.Context, *wire.WireStartInfo) (*wire.WireEmpty, error)
	ServerEvents(*wire.WireEventRegister, ServerEventsServer) error
	RespondToServerEvent(context.Context, *wire.WireClientEventResponse) (*wire.WireEmpty, error)
}

// ServerEventsServer is the server side of the ServerEvents stream.
type ServerEventsServer interface {
	Send(*wire.WireServerRequest) error
	grpc.ServerStream
}

type serverEventsServer struct{ grpc.ServerStream }

func (s *serverEventsServer) Send(m *wire.WireServerRequest) error {
	return s.ServerStream.SendMsg(m)
}

// RegisterCleanServer registers srv against the gRPC server the way
// protoc-generated code would.
func RegisterCleanServer(s grpc.ServiceRegistrar, srv CleanServer) {
	s.RegisterService(&serviceDesc, srv)
}

func callOpts(opts []grpc.CallOption) []grpc.CallOption {
	return append(opts, grpc.CallContentSubtype(codec.Name))
}

func hostSessionHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wire.WireHostInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CleanServer).HostSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/HostSession"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CleanServer).HostSession(ctx, req.(*wire.WireHostInfo))
	}
	return interceptor(ctx, in, info, handler)
}

func listSessionsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wire.WireEmpty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CleanServer).ListSessions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/ListSessions"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CleanServer).ListSessions(ctx, req.(*wire.WireEmpty))
	}
	return interceptor(ctx, in, info, handler)
}

func joinSessionHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wire.WireJoinInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CleanServer).JoinSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/JoinSession"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CleanServer).JoinSession(ctx, req.(*wire.WireJoinInfo))
	}
	return interceptor(ctx, in, info, handler)
}

func startSessionHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wire.WireStartInfo)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CleanServer).StartSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/StartSession"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CleanServer).StartSession(ctx, req.(*wire.WireStartInfo))
	}
	return interceptor(ctx, in, info, handler)
}

func respondToServerEventHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wire.WireClientEventResponse)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CleanServer).RespondToServerEvent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/RespondToServerEvent"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CleanServer).RespondToServerEvent(ctx, req.(*wire.WireClientEventResponse))
	}
	return interceptor(ctx, in, info, handler)
}

func serverEventsHandler(srv interface{}, stream grpc.ServerStream) error {
	m := new(wire.WireEventRegister)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(CleanServer).ServerEvents(m, &serverEventsServer{stream})
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CleanServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "HostSession", Handler: hostSessionHandler},
		{MethodName: "ListSessions", Handler: listSessionsHandler},
		{MethodName: "JoinSession", Handler: joinSessionHandler},
		{MethodName: "StartSession", Handler: startSessionHandler},
		{MethodName: "RespondToServerEvent", Handler: respondToServerEventHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "ServerEvents", Handler: serverEventsHandler, ServerStreams: true},
	},
	Metadata: "clean.rpc",
}

// CleanClient is the wire-facing client stub.
type CleanClient interface {
	HostSession(ctx context.Context, in *wire.WireHostInfo, opts ...grpc.CallOption) (*wire.WireSessionData, error)
	ListSessions(ctx context.Context, in *wire.WireEmpty, opts ...grpc.CallOption) (*wire.WireSessions, error)
	JoinSession(ctx context.Context, in *wire.WireJoinInfo, opts ...grpc.CallOption) (*wire.WireEmpty, error)
	StartSession(ctx context.Context, in *wire.WireStartInfo, opts ...grpc.CallOption) (*wire.WireEmpty, error)
	ServerEvents(ctx context.Context, in *wire.WireEventRegister, opts ...grpc.CallOption) (ServerEventsClient, error)
	RespondToServerEvent(ctx context.Context, in *wire.WireClientEventResponse, opts ...grpc.CallOption) (*wire.WireEmpty, error)
}

// ServerEventsClient is the client side of the ServerEvents stream.
type ServerEventsClient interface {
	Recv() (*wire.WireServerRequest, error)
	grpc.ClientStream
}

type serverEventsClient struct{ grpc.ClientStream }

func (c *serverEventsClient) Recv() (*wire.WireServerRequest, error) {
	m := new(wire.WireServerRequest)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type cleanClient struct {
	cc *grpc.ClientConn
}

// NewCleanClient builds the wire-facing client stub over an established
// connection.
func NewCleanClient(cc *grpc.ClientConn) CleanClient {
	return &cleanClient{cc: cc}
}

func (c *cleanClient) HostSession(ctx context.Context, in *wire.WireHostInfo, opts ...grpc.CallOption) (*wire.WireSessionData, error) {
	out := new(wire.WireSessionData)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/HostSession", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cleanClient) ListSessions(ctx context.Context, in *wire.WireEmpty, opts ...grpc.CallOption) (*wire.WireSessions, error) {
	out := new(wire.WireSessions)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ListSessions", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cleanClient) JoinSession(ctx context.Context, in *wire.WireJoinInfo, opts ...grpc.CallOption) (*wire.WireEmpty, error) {
	out := new(wire.WireEmpty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/JoinSession", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cleanClient) StartSession(ctx context.Context, in *wire.WireStartInfo, opts ...grpc.CallOption) (*wire.WireEmpty, error) {
	out := new(wire.WireEmpty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/StartSession", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cleanClient) RespondToServerEvent(ctx context.Context, in *wire.WireClientEventResponse, opts ...grpc.CallOption) (*wire.WireEmpty, error) {
	out := new(wire.WireEmpty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/RespondToServerEvent", in, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *cleanClient) ServerEvents(ctx context.Context, in *wire.WireEventRegister, opts ...grpc.CallOption) (ServerEventsClient, error) {
	stream, err := c.cc.NewStream(ctx, &serviceDesc.Streams[0], "/"+serviceName+"/ServerEvents", callOpts(opts)...)
	if err != nil {
		return nil, err
	}
	x := &serverEventsClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
