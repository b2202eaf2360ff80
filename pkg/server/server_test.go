package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	httpsvc "github.com/ranorsolutions/barber-booking-web/pkg/http"
	"github.com/ranorsolutions/barber-booking-web/pkg/pages"
	"github.com/ranorsolutions/barber-booking-web/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func newMockService(t *testing.T, protocol string) (*service.Service, *httpsvc.HTTPService) {
	gin.SetMode(gin.TestMode)
	svc := service.NewMock()
	svc.Protocol = protocol

	site, err := pages.NewSite(pages.Options{})
	require.NoError(t, err)
	h, err := httpsvc.New(svc, site, nil)
	require.NoError(t, err)
	return svc, h
}

func TestNew_CreatesServer(t *testing.T) {
	svc, h := newMockService(t, "")
	s, err := New(svc, h)
	assert.NoError(t, err)
	assert.NotNil(t, s)
	assert.NotNil(t, s.Listener)
	assert.NotNil(t, s.GRPC)
	s.Listener.Close()
}

func TestNew_NilService(t *testing.T) {
	s, err := New(nil, nil)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestNew_MissingHTTPService(t *testing.T) {
	svc, _ := newMockService(t, service.ProtocolHTTP)
	s, err := New(svc, nil)
	assert.Error(t, err)
	assert.Nil(t, s)

	svc.Protocol = service.ProtocolGRPC
	s, err = New(svc, nil)
	require.NoError(t, err)
	s.Listener.Close()
}

func TestRun_HTTPOnly(t *testing.T) {
	svc, h := newMockService(t, service.ProtocolHTTP)
	s, err := New(svc, h)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err = s.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRun_GRPCOnly(t *testing.T) {
	svc, h := newMockService(t, service.ProtocolGRPC)
	s, err := New(svc, h)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	err = s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_MixedProtocol(t *testing.T) {
	svc, h := newMockService(t, "")
	s, err := New(svc, h)
	require.NoError(t, err)
	addr := s.Listener.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// HTTP/1 traffic reaches the page router.
	var body []byte
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/book/123")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ = io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
	assert.Contains(t, string(body), "Book Appointment")

	// gRPC traffic on the same port reaches the health service.
	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	rpcCtx, rpcCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer rpcCancel()
	resp, err := grpc_health_v1.NewHealthClient(conn).Check(rpcCtx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestShutdownCompletes(t *testing.T) {
	svc, h := newMockService(t, "")
	s, err := New(svc, h)
	require.NoError(t, err)
	s.Listener.Close()

	l, _ := net.Listen("tcp", "127.0.0.1:0")
	s.Listener = l

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err = s.Shutdown(ctx)
	assert.NoError(t, err)

	// A second shutdown is harmless.
	assert.NoError(t, s.Shutdown(ctx))
}

func TestIgnoreClosed(t *testing.T) {
	assert.NoError(t, ignoreClosed(nil))
	assert.NoError(t, ignoreClosed(http.ErrServerClosed))
	assert.NoError(t, ignoreClosed(grpc.ErrServerStopped))
	assert.NoError(t, ignoreClosed(net.ErrClosed))

	boom := errors.New("boom")
	assert.ErrorIs(t, ignoreClosed(boom), boom)
}
