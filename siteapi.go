// Package siteapi implements the content API behind the Fortium Africa
// marketing site: contact submissions, project and blog publishing with a
// draft/published lifecycle, image uploads, and a token-guarded admin
// surface. The React frontend consumes it over JSON.
package siteapi

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// App holds shared dependencies injected into every handler.
type App struct {
	Echo *echo.Echo

	cfg      Config
	log      zerolog.Logger
	store    *Store
	cache    *ContentCache
	notifier Notifier
	blobs    BlobStore
	limiter  *RateLimiter
}

// New wires the application together. Collaborators are passed in so tests
// can substitute fakes.
func New(cfg Config, store *Store, notifier Notifier, blobs BlobStore, log zerolog.Logger) *App {
	a := &App{
		Echo:     echo.New(),
		cfg:      cfg,
		log:      log,
		store:    store,
		cache:    NewContentCache(store, cfg.CacheTTL),
		notifier: notifier,
		blobs:    blobs,
		limiter:  NewRateLimiter(cfg.ContactRateLimit, cfg.ContactRateWindow),
	}
	a.Echo.HideBanner = true
	a.Echo.Validator = newRequestValidator()
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/health", handleHealth)
	e.Static("/uploads", a.cfg.UploadsDir)

	api := e.Group("/api")
	api.POST("/contact", a.handleContact)
	api.GET("/projects", a.handleListProjects)
	api.GET("/projects/:slug", a.handleGetProject)
	api.GET("/blogs", a.handleListBlogPosts)
	api.GET("/blogs/:slug", a.handleGetBlogPost)

	// Admin routes — every request passes the token guard first.
	admin := api.Group("/admin", a.adminGuard)
	admin.GET("/projects", a.handleAdminListProjects)
	admin.POST("/projects", a.handleCreateProject)
	admin.PUT("/projects/:id", a.handleUpdateProject)
	admin.DELETE("/projects/:id", a.handleDeleteProject)
	admin.GET("/blogs", a.handleAdminListBlogPosts)
	admin.POST("/blogs", a.handleCreateBlogPost)
	admin.PUT("/blogs/:id", a.handleUpdateBlogPost)
	admin.DELETE("/blogs/:id", a.handleDeleteBlogPost)
	admin.POST("/upload-image", a.handleUploadImage)
}

// Start begins serving on the configured address and blocks.
func (a *App) Start() error {
	a.log.Info().Str("addr", a.cfg.Addr).Msg("starting server")
	return a.Echo.Start(a.cfg.Addr)
}

// requestValidator adapts go-playground/validator to Echo's Validator
// interface, reporting fields by their json names.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i any) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		if fe.Tag() == "required" {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s is required", fe.Field()))
		}
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s is invalid", fe.Field()))
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
}
