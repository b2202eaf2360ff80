package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ranorsolutions/barber-booking-web/pkg/auth"
	"github.com/ranorsolutions/barber-booking-web/pkg/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedVerifier struct{}

func (fixedVerifier) Verify(_ context.Context, token string) (*auth.Identity, error) {
	return &auth.Identity{UID: token, Role: auth.RoleCustomer}, nil
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(auth.Provider(fixedVerifier{}, nil))
	for _, h := range Handlers() {
		r.Handle(h.Method, h.Path, h.Handler...)
	}
	return r
}

func TestRoutes(t *testing.T) {
	rec := httptest.NewRecorder()
	newEngine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/routes", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var pages []route.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pages))
	assert.Equal(t, route.Pages, pages)
}

func TestSession_Anonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	newEngine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false,"user":null}`, rec.Body.String())
}

func TestSession_Identified(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set("Authorization", "Bearer cust-9")
	rec := httptest.NewRecorder()
	newEngine().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":true,"user":{"uid":"cust-9","role":"customer"}}`, rec.Body.String())
}
