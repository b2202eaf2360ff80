package grpc

import (
	"net"

	"github.com/ranorsolutions/barber-booking-web/pkg/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// GRPCService is the gRPC side of the listener. It only carries the standard
// health service, reporting the web service's status, plus reflection.
type GRPCService struct {
	Server  *grpc.Server
	Health  *health.Server
	Service *service.Service
}

// New creates a new gRPC server instance with health checks registered for
// the overall server and for the service name.
func New(svc *service.Service, opts ...grpc.ServerOption) *GRPCService {
	server := grpc.NewServer(opts...)

	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, hs)
	if svc != nil {
		hs.SetServingStatus(svc.Name, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	if svc != nil && svc.Logger != nil {
		svc.Logger.Info("gRPC reflection enabled")
		reflection.Register(server)
	}

	return &GRPCService{
		Server:  server,
		Health:  hs,
		Service: svc,
	}
}

// Serve starts the gRPC server on the provided listener.
func (g *GRPCService) Serve(l net.Listener) error {
	g.Service.Logger.Info("gRPC server listening on %s", l.Addr().String())
	return g.Server.Serve(l)
}

// GracefulStop flips health to NOT_SERVING and shuts down the server cleanly.
func (g *GRPCService) GracefulStop() {
	g.Service.Logger.Info("Stopping gRPC server...")
	g.Health.Shutdown()
	g.Server.GracefulStop()
}
