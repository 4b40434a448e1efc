// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authzDomain "github.com/attractionops/platform/internal/authz/domain"
	authzHTTP "github.com/attractionops/platform/internal/authz/http"
	"github.com/attractionops/platform/internal/authz/pipeline"
	"github.com/attractionops/platform/internal/config"
	featureFlagHTTP "github.com/attractionops/platform/internal/featureflag/http"
	"github.com/attractionops/platform/internal/metrics"
)

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with every route and its authorization
// requirements. ctx bounds background work started by middleware.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	authorizer authzHTTP.Authorizer,
	organizationHandler *authzHTTP.OrganizationHandler,
	featureFlagHandler *featureFlagHTTP.FeatureFlagHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	// The logger wraps Recovery so recovered panics are logged with their 500.
	router.Use(CustomLoggerMiddleware(s.logger))
	router.Use(gin.Recovery())

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	var rateLimit, rejectionLimit gin.HandlerFunc
	if cfg.RateLimitEnabled {
		rateLimit = authzHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger)
		rejectionLimit = authzHTTP.RejectedRequestRateLimitMiddleware(
			ctx, cfg.RateLimitRejectedPerSec, cfg.RateLimitRejectedBurst, s.logger,
		)
	}

	// guard returns the authorization chain for a route. Rejections are counted per
	// client IP in front of Authorize; accepted requests are limited by principal after it.
	guard := func(reqs pipeline.Requirements, handler gin.HandlerFunc) []gin.HandlerFunc {
		var chain []gin.HandlerFunc
		if rejectionLimit != nil {
			chain = append(chain, rejectionLimit)
		}
		chain = append(chain, authzHTTP.Authorize(authorizer, reqs, s.logger))
		if rateLimit != nil {
			chain = append(chain, rateLimit)
		}
		return append(chain, handler)
	}

	permission := func(perms ...authzDomain.Permission) pipeline.Requirements {
		return pipeline.Requirements{Permissions: perms}
	}

	v1 := router.Group("/v1")

	v1.GET("/me/organizations",
		guard(pipeline.Requirements{SkipTenant: true}, organizationHandler.ListMyOrganizationsHandler)...)

	orgs := v1.Group("/organizations/:" + authzHTTP.OrgIDParam)
	{
		orgs.GET("/context",
			guard(permission("organization:read"), organizationHandler.ContextHandler)...)
		orgs.GET("/features/:key",
			guard(permission("organization:read"), organizationHandler.FeatureHandler)...)
		orgs.GET("/attractions/:attraction",
			guard(permission("attraction:read"), organizationHandler.AttractionHandler)...)
		orgs.PATCH("/members/:userId/role",
			guard(permission("member:update"), organizationHandler.UpdateMemberRoleHandler)...)
		orgs.POST("/invitations",
			guard(permission("member:create"), organizationHandler.InviteMemberHandler)...)
	}

	superAdmin := pipeline.Requirements{SkipTenant: true, RequireSuperAdmin: true}
	flags := v1.Group("/admin/feature-flags")
	{
		flags.GET("", guard(superAdmin, featureFlagHandler.ListHandler)...)
		flags.GET("/:key", guard(superAdmin, featureFlagHandler.GetHandler)...)
		flags.PUT("/:key", guard(superAdmin, featureFlagHandler.UpsertHandler)...)
		flags.POST("/cache/clear", guard(superAdmin, featureFlagHandler.ClearCacheHandler)...)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness, checking the database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if s.db == nil || s.db.PingContext(ctx) != nil {
		dbStatus = "error"
	}

	if dbStatus != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": dbStatus},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": dbStatus},
	})
}
