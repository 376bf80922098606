package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"

	"catalog/internal/infrastructure/http/v1/dto"
	"catalog/internal/infrastructure/http/v1/handlers"
	"catalog/internal/infrastructure/http/v1/middleware"
	"catalog/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Validator checks bearer tokens on /catalog routes
	Validator middleware.TokenValidator

	// Database backs the health checks
	Database handlers.Database

	Catalog handlers.CatalogReader
	Brands  handlers.BrandService
	Types   handlers.TypeService
	Items   handlers.ItemService
	Mapper  *dto.Mapper

	Environment string
	// Development disables HTTPS redirection and HSTS.
	Development bool
	// VerboseErrors exposes internal error causes in responses.
	VerboseErrors bool

	// Authority is the token issuer, used by the OpenAPI security scheme.
	Authority string
	// PathBase is an optional prefix the service is mounted under.
	PathBase string
	// CORSOrigins lists origins allowed to make credentialed requests.
	CORSOrigins []string

	// HTTPLogging adds the remote endpoint to request logs.
	HTTPLogging         bool
	ResponseCompression bool
	// HTTPSPort enables HTTPS redirection and HSTS when non-zero.
	HTTPSPort int
}

// NewRouter creates the Gin engine and wraps it with the handlers that must
// run before routing: path base stripping, CORS and compression.
func NewRouter(cfg RouterConfig) (http.Handler, error) {
	engine, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}

	var h http.Handler = engine
	if cfg.ResponseCompression {
		h = gzhttp.GzipHandler(h)
	}
	h = middleware.CORS(cfg.CORSOrigins...)(h)
	return withPathBase(cfg.PathBase, h), nil
}

func newEngine(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	// Client addresses come from ForwardedHeaders.
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.ForwardedHeaders(middleware.DefaultForwardLimit))
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger, middleware.LoggerOptions{RemoteEndpoint: cfg.HTTPLogging}))
	router.Use(middleware.ErrorHandler(cfg.VerboseErrors))
	if cfg.HTTPSPort != 0 && !cfg.Development {
		router.Use(middleware.HTTPSRedirect(cfg.HTTPSPort))
		router.Use(middleware.HSTS(middleware.DefaultHSTSMaxAge))
	}

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Database, cfg.Environment)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// OpenAPI document and UI
	swagger, err := handlers.NewSwaggerHandler(NewOpenAPIDocument(cfg.Authority, cfg.PathBase), APITitle, cfg.PathBase)
	if err != nil {
		return nil, fmt.Errorf("swagger: %w", err)
	}
	docs := router.Group("/swagger")
	{
		docs.GET("/v1/swagger.json", swagger.Document)
		docs.GET("/index.html", swagger.UI)
		docs.GET("/oauth2-redirect.html", swagger.OAuth2Redirect)
		docs.GET("", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, cfg.PathBase+"/swagger/index.html")
		})
	}

	registerCatalogRoutes(router, cfg)

	return router, nil
}

func registerCatalogRoutes(router *gin.Engine, cfg RouterConfig) {
	base := handlers.NewBaseHandler()
	read := middleware.RequireAnyScope(readScopes...)
	write := middleware.RequireAnyScope(writeScopes...)

	catalogHandler := handlers.NewCatalogHandler(base, cfg.Catalog, cfg.Mapper)
	itemHandler := handlers.NewItemHandler(base, cfg.Items, cfg.Mapper)

	group := router.Group("/catalog")
	group.Use(middleware.Auth(cfg.Validator))

	items := group.Group("/items")
	{
		items.GET("", read, catalogHandler.Items)
		items.GET("/:id", read, catalogHandler.ItemByID)
		items.GET("/withname/:name", read, catalogHandler.ItemsWithName)
		items.POST("", write, itemHandler.Create)
		items.PUT("", write, itemHandler.Update)
		items.DELETE("/:id", write, itemHandler.Delete)
	}
	group.GET("/products", read, catalogHandler.Products)

	brands := group.Group("/catalogbrands")
	brands.GET("", read, catalogHandler.Brands)
	RegisterDictionaryRoutes(brands, handlers.NewBrandHandler(base, cfg.Brands, cfg.Mapper), read, write)

	types := group.Group("/catalogtypes")
	types.GET("", read, catalogHandler.Types)
	RegisterDictionaryRoutes(types, handlers.NewTypeHandler(base, cfg.Types, cfg.Mapper), read, write)
}

// withPathBase strips base from the start of the request path. Requests
// outside base are served unchanged.
func withPathBase(base string, next http.Handler) http.Handler {
	if base == "" || base == "/" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if len(p) >= len(base) && strings.EqualFold(p[:len(base)], base) &&
			(len(p) == len(base) || p[len(base)] == '/') {
			r2 := r.Clone(r.Context())
			r2.URL.Path = p[len(base):]
			if r2.URL.Path == "" {
				r2.URL.Path = "/"
			}
			r2.URL.RawPath = ""
			next.ServeHTTP(w, r2)
			return
		}
		next.ServeHTTP(w, r)
	})
}
