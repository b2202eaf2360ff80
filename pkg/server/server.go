package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	grpcsvc "github.com/ranorsolutions/barber-booking-web/pkg/grpc"
	httpsvc "github.com/ranorsolutions/barber-booking-web/pkg/http"
	"github.com/ranorsolutions/barber-booking-web/pkg/service"
	"github.com/soheilhy/cmux"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// ShutdownTimeout bounds the graceful shutdown started when Run's context ends.
var ShutdownTimeout = 10 * time.Second

// Server multiplexes HTTP/1 and gRPC traffic over a single listener.
type Server struct {
	GRPC     *grpcsvc.GRPCService
	HTTP     *httpsvc.HTTPService
	Listener net.Listener
	Service  *service.Service
}

func New(svc *service.Service, httpService *httpsvc.HTTPService, opts ...grpc.ServerOption) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if httpService == nil && svc.ServesHTTP() {
		return nil, fmt.Errorf("http service is required for protocol %s", svc.ProtocolName())
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", svc.Port))
	if err != nil {
		return nil, fmt.Errorf("error creating net listener: %w", err)
	}

	return &Server{
		GRPC:     grpcsvc.New(svc, opts...),
		HTTP:     httpService,
		Listener: listener,
		Service:  svc,
	}, nil
}

// Run serves until ctx is done, then shuts down gracefully. It returns the
// context's error after a clean shutdown, or the first serving error.
func (s *Server) Run(ctx context.Context) error {
	m := cmux.New(s.Listener)

	g, gctx := errgroup.WithContext(ctx)

	// Once shutdown has begun, listener errors are expected.
	served := func(err error) error {
		if gctx.Err() != nil {
			return nil
		}
		return ignoreClosed(err)
	}

	if s.Service.ServesGRPC() {
		grpcListener := m.MatchWithWriters(
			cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"),
			cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc+proto"),
		)
		g.Go(func() error {
			return served(s.GRPC.Serve(grpcListener))
		})
	}

	if s.Service.ServesHTTP() {
		httpListener := m.Match(cmux.HTTP1Fast())
		g.Go(func() error {
			return served(s.HTTP.ListenAndServe(httpListener))
		})
	}

	g.Go(func() error { return served(m.Serve()) })

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	s.Service.Logger.Info("%s serving %s on %s", s.Service.Name, s.Service.ProtocolName(), s.Listener.Addr().String())
	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil && err == nil {
		return ctxErr
	}
	return err
}

// Shutdown stops the HTTP server, drains gRPC and closes the shared listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if s.HTTP != nil {
		if err := s.HTTP.Server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if s.GRPC != nil {
		s.GRPC.GracefulStop()
	}
	if s.Listener != nil {
		if err := s.Listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			errs = append(errs, fmt.Errorf("close listener: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ignoreClosed treats the errors produced by an orderly shutdown as success.
func ignoreClosed(err error) error {
	switch {
	case err == nil,
		errors.Is(err, http.ErrServerClosed),
		errors.Is(err, grpc.ErrServerStopped),
		errors.Is(err, cmux.ErrListenerClosed),
		errors.Is(err, net.ErrClosed):
		return nil
	}
	return err
}
