// Package pages renders the site's page components. Each page is a static
// template wrapped in the shared layout and navigation bar; the only input a
// page sees is its route parameters and the request's auth context.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ranorsolutions/barber-booking-web/pkg/auth"
	"github.com/ranorsolutions/barber-booking-web/pkg/route"
)

// NotFound is the template rendered when no page route matches.
const NotFound = "not-found"

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

// ErrorHandler reports a page that failed to render.
type ErrorHandler func(c *gin.Context, err error)

type Options struct {
	// Content overrides the embedded content document.
	Content []byte
	OnError ErrorHandler
}

// Site holds the parsed page templates and content.
type Site struct {
	content   *Content
	templates map[string]*template.Template
	onError   ErrorHandler
}

// View is the data handed to a page template.
type View struct {
	Page     route.Page
	Params   map[string]string
	Identity *auth.Identity
	Content  *Content
}

// DashboardPath is the dashboard the navigation bar links to.
func (v *View) DashboardPath() string {
	if v.Identity.IsBarber() {
		return "/dashboard/barber"
	}
	return "/dashboard/customer"
}

func NewSite(opts Options) (*Site, error) {
	raw := opts.Content
	if raw == nil {
		raw = defaultContent
	}
	content, err := ParseContent(raw)
	if err != nil {
		return nil, err
	}

	base, err := template.New("").
		Funcs(template.FuncMap{"icon": icon}).
		ParseFS(templatesFS, "templates/layout.html", "templates/navbar.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	names := make([]string, 0, len(route.Pages)+1)
	for _, p := range route.Pages {
		names = append(names, p.Name)
	}
	names = append(names, NotFound)

	templates := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templatesFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		templates[name] = t
	}

	onError := opts.OnError
	if onError == nil {
		onError = func(c *gin.Context, err error) {
			c.String(http.StatusInternalServerError, err.Error())
		}
	}

	return &Site{content: content, templates: templates, onError: onError}, nil
}

// Content returns the parsed content document.
func (s *Site) Content() *Content { return s.content }

// Assets serves the embedded stylesheet directory.
func (s *Site) Assets() http.FileSystem {
	sub, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// Handler renders page for every request routed to it.
func (s *Site) Handler(page route.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, page.Name, s.NewView(c, page))
	}
}

// NotFoundHandler renders the not-found page with a 404 status.
func (s *Site) NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page := route.Page{Name: NotFound, Path: c.Request.URL.Path, Title: "Page not found"}
		s.render(c, http.StatusNotFound, NotFound, s.NewView(c, page))
	}
}

// NewView collects the route parameters declared by page and the auth context.
func (s *Site) NewView(c *gin.Context, page route.Page) *View {
	params := map[string]string{}
	for _, name := range page.Params() {
		params[name] = c.Param(name)
	}
	return &View{
		Page:     page,
		Params:   params,
		Identity: auth.FromContext(c),
		Content:  s.content,
	}
}

// render executes the page into a buffer so a failed render never leaves a
// partial page on the wire.
func (s *Site) render(c *gin.Context, code int, name string, view *View) {
	t, ok := s.templates[name]
	if !ok {
		s.onError(c, fmt.Errorf("no template for page %q", name))
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", view); err != nil {
		s.onError(c, fmt.Errorf("render %s: %w", name, err))
		return
	}
	c.Data(code, "text/html; charset=utf-8", buf.Bytes())
}
