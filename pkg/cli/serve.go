package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ranorsolutions/barber-booking-web/pkg/api"
	"github.com/ranorsolutions/barber-booking-web/pkg/auth"
	httpsvc "github.com/ranorsolutions/barber-booking-web/pkg/http"
	"github.com/ranorsolutions/barber-booking-web/pkg/observability"
	"github.com/ranorsolutions/barber-booking-web/pkg/pages"
	"github.com/ranorsolutions/barber-booking-web/pkg/server"
	"github.com/ranorsolutions/barber-booking-web/pkg/service"
)

// newService is swapped in tests.
var newService = service.New

func newServeCmd() *cobra.Command {
	var port, protocol string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			if port != "" {
				svc.Port = port
			}
			if cmd.Flags().Changed("protocol") {
				svc.Protocol = strings.ToLower(protocol)
			}
			if err := service.ValidateProtocol(svc.Protocol); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, svc)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides PORT)")
	cmd.Flags().StringVar(&protocol, "protocol", "", "serve only http or grpc (overrides SERVICE_PROTOCOL)")
	return cmd
}

func run(ctx context.Context, svc *service.Service) error {
	shutdownTracing, err := observability.InitTracing(ctx, svc)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			svc.Logger.Warn("otel shutdown: %v", err)
		}
	}()

	verifier, err := auth.NewVerifier(ctx, svc.Config.Auth)
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}
	if verifier == nil {
		svc.Logger.Info("no token verifier configured, all requests are anonymous")
	}

	site, err := pages.NewSite(pages.Options{
		OnError: func(c *gin.Context, err error) {
			svc.HandleErr(c, err, "failed to render page", http.StatusInternalServerError)
		},
	})
	if err != nil {
		return fmt.Errorf("load pages: %w", err)
	}

	svc.HTTPHandlers = api.Handlers()
	h, err := httpsvc.New(svc, site, verifier)
	if err != nil {
		return err
	}

	srv, err := server.New(svc, h)
	if err != nil {
		return err
	}

	err = srv.Run(ctx)
	if errors.Is(err, context.Canceled) {
		svc.Logger.Info("server stopped")
		return nil
	}
	return err
}
