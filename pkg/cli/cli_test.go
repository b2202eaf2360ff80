package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ranorsolutions/barber-booking-web/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoutesCommand(t *testing.T) {
	out, err := execute(t, "routes")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "/dashboard/customer")
	assert.Contains(t, out, "/book/:barberId")
	assert.Contains(t, out, "barberId")
}

func TestRoutesCommandRejectsArgs(t *testing.T) {
	_, err := execute(t, "routes", "extra")
	assert.Error(t, err)
}

func TestServeRejectsUnknownProtocol(t *testing.T) {
	orig := newService
	newService = func() (*service.Service, error) { return service.NewMock(), nil }
	defer func() { newService = orig }()

	_, err := execute(t, "serve", "--protocol", "ftp")
	assert.ErrorContains(t, err, "unsupported SERVICE_PROTOCOL")
}

func TestServeServiceError(t *testing.T) {
	orig := newService
	newService = func() (*service.Service, error) { return nil, errors.New("no logger") }
	defer func() { newService = orig }()

	_, err := execute(t, "serve")
	assert.ErrorContains(t, err, "no logger")
}
