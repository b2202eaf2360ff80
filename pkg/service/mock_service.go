package service

import (
	"github.com/ranorsolutions/http-common-go/pkg/log/logger"
)

// NewMock creates a lightweight mock Service for testing without any integrations.
func NewMock() *Service {
	// Build a simple logger that prints to stderr.
	log, _ := logger.New("mock-service", "test", true)

	return &Service{
		Name:       "mock-service",
		Version:    "test",
		APIVersion: defaultAPIVersion,
		Logger:     log,
		Port:       "0",
		Config:     &Config{},
	}
}
