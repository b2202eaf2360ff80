package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ranorsolutions/barber-booking-web/pkg/auth"
	"github.com/ranorsolutions/barber-booking-web/pkg/route"
)

// SessionResponse describes the auth context of the calling request.
type SessionResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *auth.Identity `json:"user"`
}

// Handlers returns the JSON routes mounted under /api/{version}.
func Handlers() []*route.Handler {
	return []*route.Handler{
		{Method: http.MethodGet, Path: "/routes", Handler: []gin.HandlerFunc{Routes}},
		{Method: http.MethodGet, Path: "/session", Handler: []gin.HandlerFunc{Session}},
	}
}

// Routes godoc
// @Summary      List page routes
// @Description  Returns the page route table in dispatch order.
// @Tags         pages
// @Produce      json
// @Success      200  {array}  route.Page
// @Router       /routes [get]
func Routes(c *gin.Context) {
	c.JSON(http.StatusOK, route.Pages)
}

// Session godoc
// @Summary      Current auth context
// @Description  Reports the identity attached to the request, if any.
// @Tags         auth
// @Produce      json
// @Param        Authorization  header  string  false  "Bearer token"
// @Success      200  {object}  SessionResponse
// @Router       /session [get]
func Session(c *gin.Context) {
	id := auth.FromContext(c)
	c.JSON(http.StatusOK, SessionResponse{Authenticated: id != nil, User: id})
}
