package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/ranorsolutions/barber-booking-web/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func TestNewCreatesServer(t *testing.T) {
	g := New(service.NewMock())
	assert.NotNil(t, g.Server)
	assert.NotNil(t, g.Health)
}

func TestHealthReportsServing(t *testing.T) {
	svc := service.NewMock()
	g := New(svc)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = g.Serve(l) }()
	defer g.GracefulStop()

	conn, err := grpc.Dial(l.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: svc.Name})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
}

func TestListenAndServe(t *testing.T) {
	g := New(service.NewMock())

	l, _ := net.Listen("tcp", "127.0.0.1:0")

	go func() {
		time.Sleep(200 * time.Millisecond)
		g.GracefulStop()
	}()

	err := g.Serve(l)
	assert.NoError(t, err) // graceful stop exits cleanly
}

func TestListenAndServe_ForcedStop(t *testing.T) {
	g := New(service.NewMock())

	l, _ := net.Listen("tcp", "127.0.0.1:0")

	go func() {
		time.Sleep(100 * time.Millisecond)
		g.Server.Stop() // abrupt shutdown
	}()

	err := g.Serve(l)
	assert.NoError(t, err)
}
