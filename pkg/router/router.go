package router

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	docs "github.com/amasdatadriven/backend/api"
	"github.com/amasdatadriven/backend/internal/money"
	"github.com/amasdatadriven/backend/pkg/controllers/healthz"
	"github.com/amasdatadriven/backend/pkg/controllers/root"
	v1 "github.com/amasdatadriven/backend/pkg/controllers/v1"
	versionController "github.com/amasdatadriven/backend/pkg/controllers/version"
	"github.com/amasdatadriven/backend/pkg/httperrors"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time.
var version = "0.0.0"

// defaultCurrency is used for exports when CURRENCY is not set.
const defaultCurrency = "USD"

// Config sets up the router and its middlewares. The returned function
// must be called when the router is not used anymore.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, func() {}, err
	}

	teardown := func() {
		if !unregisterPrometheusMetrics() {
			log.Error().Msg("could not unregister Prometheus metrics")
		}
	}

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httperrors.HTTPError{Error: "This HTTP method is not allowed for the endpoint you called"})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "AMAS Budget"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for AMAS strategy budgeting. Task budgets are rolled up from itemized budget lines and compared against recorded transactions."

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in
// Separating this from Config() allows us to attach it to different
// paths for different use cases, e.g. the standalone version.
func AttachRoutes(group *gin.RouterGroup) {
	root.RegisterRoutes(group)
	healthz.RegisterRoutes(group.Group("/healthz"))
	formatter := exportFormatter()
	versionController.RegisterRoutes(group.Group("/version"), versionController.Info{Version: version, Currency: formatter.Currency()})
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))
	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	// API v1 setup
	v1Group := group.Group("/v1")
	v1.RegisterRootRoutes(v1Group)
	v1.RegisterTaskRoutes(v1Group.Group("/tasks"))
	v1.RegisterTransactionRoutes(v1Group.Group("/transactions"))
	v1.RegisterPhaseRoutes(v1Group.Group("/phases"))
	v1.RegisterExportRoutes(v1Group.Group("/export"), formatter)
}

// exportFormatter returns the formatter for the currency in the CURRENCY
// environment variable.
func exportFormatter() money.Formatter {
	iso, ok := os.LookupEnv("CURRENCY")
	if !ok || iso == "" {
		iso = defaultCurrency
	}

	f, err := money.NewFormatter(iso)
	if err != nil {
		log.Error().Err(err).Str("fallback", defaultCurrency).Msg("Router")
		f, _ = money.NewFormatter(defaultCurrency)
	}

	return f
}
