package service

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ranorsolutions/barber-booking-web/pkg/route"
	logs "github.com/ranorsolutions/http-common-go/pkg/log/logger"
)

// Serving protocols accepted in SERVICE_PROTOCOL. Empty serves both.
const (
	ProtocolHTTP = "http"
	ProtocolGRPC = "grpc"
)

const (
	defaultName       = "barber-booking"
	defaultPort       = "4000"
	defaultAPIVersion = "v1"
)

type Service struct {
	Name         string
	Version      string
	APIVersion   string
	Port         string
	Protocol     string
	Logger       *logs.Logger
	HTTPHandlers []*route.Handler
	Config       *Config
}

// Config holds the optional integrations read from the environment.
type Config struct {
	AllowedOrigins []string
	Auth           AuthConfig
	Tracing        TracingConfig
}

type AuthConfig struct {
	Secret                  string
	FirebaseCredentialsPath string
	FirebaseProjectID       string
}

// Enabled reports whether any token verifier is configured.
func (a AuthConfig) Enabled() bool {
	return a.Secret != "" || a.FirebaseCredentialsPath != "" || a.FirebaseProjectID != ""
}

type TracingConfig struct {
	Enabled     bool
	SampleRatio float64
	Endpoint    string
	Insecure    bool
}

// newLogger is swapped in tests.
var newLogger = logs.New

// New -- Create the web service from the environment
func New() (*Service, error) {
	name := getEnv("SERVICE", defaultName)
	version := os.Getenv("VERSION")

	// Create the service logger
	logger, err := newLogger(name, version, os.Getenv("IS_TERMINAL") != "true")
	if err != nil {
		return nil, fmt.Errorf("unable to create service logger: %w", err)
	}

	protocol := strings.ToLower(strings.TrimSpace(os.Getenv("SERVICE_PROTOCOL")))
	if err := ValidateProtocol(protocol); err != nil {
		return nil, err
	}

	svc := &Service{
		Name:       name,
		Version:    version,
		APIVersion: getEnv("API_VERSION", defaultAPIVersion),
		Port:       getEnv("PORT", defaultPort),
		Protocol:   protocol,
		Logger:     logger,
		Config:     configFromEnv(),
	}

	logger.Info("Configured %s %s on port %s (protocol: %s)", svc.Name, svc.Version, svc.Port, svc.ProtocolName())
	return svc, nil
}

// ValidateProtocol rejects anything other than http, grpc or empty.
func ValidateProtocol(protocol string) error {
	switch protocol {
	case "", ProtocolHTTP, ProtocolGRPC:
		return nil
	default:
		return fmt.Errorf("unsupported SERVICE_PROTOCOL %q", protocol)
	}
}

// ProtocolName is the protocol label used in logs.
func (s *Service) ProtocolName() string {
	if s.Protocol == "" {
		return "http+grpc"
	}
	return s.Protocol
}

// ServesHTTP reports whether the HTTP listener should be started.
func (s *Service) ServesHTTP() bool { return s.Protocol != ProtocolGRPC }

// ServesGRPC reports whether the gRPC listener should be started.
func (s *Service) ServesGRPC() bool { return s.Protocol != ProtocolHTTP }

func (s *Service) HandleErr(c *gin.Context, err error, message string, code int) {
	s.Logger.Error("%s %s", err.Error(), message)
	if message == "" {
		c.JSON(code, gin.H{"error": err.Error()})
	} else {
		c.JSON(code, gin.H{"error": err.Error(), "details": message})
	}
}

func configFromEnv() *Config {
	return &Config{
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		Auth: AuthConfig{
			Secret:                  os.Getenv("AUTH_SECRET"),
			FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS"),
			FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		},
		Tracing: TracingConfig{
			Enabled:     envBool("OTEL_ENABLED"),
			SampleRatio: envRatio("OTEL_SAMPLER_RATIO", 0.1),
			Endpoint:    strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
			Insecure:    envBool("OTEL_EXPORTER_OTLP_INSECURE"),
		},
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// envRatio parses a sampling ratio clamped to [0, 1].
func envRatio(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
