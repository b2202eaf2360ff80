package http

import (
	"fmt"
	"net"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	ctxmw "github.com/ranorsolutions/http-common-go/pkg/middleware/context"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/ranorsolutions/barber-booking-web/docs"
	"github.com/ranorsolutions/barber-booking-web/pkg/auth"
	"github.com/ranorsolutions/barber-booking-web/pkg/middleware"
	"github.com/ranorsolutions/barber-booking-web/pkg/pages"
	"github.com/ranorsolutions/barber-booking-web/pkg/route"
	"github.com/ranorsolutions/barber-booking-web/pkg/service"
)

type HTTPService struct {
	Engine  *gin.Engine
	Server  *http.Server
	Service *service.Service
	Site    *pages.Site
}

// New creates the Gin HTTP service for the site. It mounts one handler per
// page route at the root, renders the not-found page for anything else, and
// auto-registers all handlers defined in svc.HTTPHandlers under /api/{version}.
// The verifier may be nil, in which case every request is anonymous.
func New(svc *service.Service, site *pages.Site, verifier auth.Verifier) (*HTTPService, error) {
	if svc == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if site == nil {
		return nil, fmt.Errorf("site cannot be nil")
	}

	var allowedOrigins []string
	if svc.Config != nil {
		allowedOrigins = svc.Config.AllowedOrigins
	}

	engine := gin.New()
	engine.Use(ctxmw.GinContextToContextMiddleware())
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware(svc.Name))
	engine.Use(middleware.AttachTraceContext())
	engine.Use(middleware.RequestLogger(svc.Logger))
	engine.Use(middleware.CORS(allowedOrigins))
	engine.Use(auth.Provider(verifier, svc.Logger))

	for _, page := range route.Pages {
		engine.GET(page.Path, site.Handler(page))
	}
	engine.NoRoute(site.NotFoundHandler())

	engine.StaticFS("/assets", site.Assets())
	engine.GET("/healthz", health(svc))

	basePath := fmt.Sprintf("/api/%s", svc.APIVersion)
	docs.SwaggerInfo.BasePath = basePath
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	group := engine.Group(basePath)
	for _, h := range svc.HTTPHandlers {
		switch h.Method {
		case http.MethodGet:
			group.GET(h.Path, h.Handler...)
		case http.MethodPut:
			group.PUT(h.Path, h.Handler...)
		case http.MethodPost:
			group.POST(h.Path, h.Handler...)
		case http.MethodDelete:
			group.DELETE(h.Path, h.Handler...)
		default:
			svc.Logger.Warn("unrecognized HTTP method for route %s", h.Path)
		}
	}

	server := &http.Server{Handler: engine}

	return &HTTPService{
		Server:  server,
		Engine:  engine,
		Service: svc,
		Site:    site,
	}, nil
}

// ListenAndServe starts serving requests on the given listener.
func (s *HTTPService) ListenAndServe(l net.Listener) error {
	s.Service.Logger.Info("HTTP server listening on %s", formatAddr(l.Addr().String()))
	return s.Server.Serve(l)
}

func health(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": svc.Name,
			"version": svc.Version,
		})
	}
}

var wildcardHost = regexp.MustCompile(`\[::\]`)

// formatAddr normalizes the listener address for readable logs.
func formatAddr(addr string) string {
	return wildcardHost.ReplaceAllString(addr, "http://localhost")
}
