// Package httpapi wires the HTTP transport (Gin) to the item, language, user,
// edit and query services. It owns middleware ordering and route layout; the
// handlers themselves live in the handlers package.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/tbourn/depicts-backend/docs"
	"github.com/tbourn/depicts-backend/internal/config"
	"github.com/tbourn/depicts-backend/internal/http/handlers"
	"github.com/tbourn/depicts-backend/internal/http/middleware"
	"github.com/tbourn/depicts-backend/internal/repo"
	"github.com/tbourn/depicts-backend/internal/search"
	"github.com/tbourn/depicts-backend/internal/services"
)

// maxBodyBytes caps request bodies. Depicts entities carry the raw Wikidata
// JSON, which stays well below this.
const maxBodyBytes = 1 << 20

// RegisterRoutes attaches middleware and every endpoint to r.
//
// Middleware order:
//  1. OpenTelemetry
//  2. RequestID, then WikiUser so the access log can name the editor
//  3. Logger with redaction, then Recovery
//  4. Body limit, gzip, metrics
//  5. Rate limiter keyed by username or client IP
//  6. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, ranker search.Ranker, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.WikiUser())
	r.Use(middleware.Logger(middleware.LogOptions{
		MaskHeaders: []string{"X-API-Key"},
		MaskParams:  []string{"token", "session"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUsernameOrIP())
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(handlers.Services{
		Items:     services.NewItemService(db, ranker),
		Languages: services.NewLanguageService(db, repo.Languages{}),
		Users:     &services.UserService{DB: db},
		Edits:     &services.EditService{DB: db},
		Queries:   &services.QueryService{DB: db},
	}, cfg.LookupLimit)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Depicts items
		api.POST("/depicts", h.CreateDepicts)
		api.GET("/depicts", h.LookupDepicts)
		api.GET("/depicts/:qid", h.GetDepicts)
		api.PUT("/depicts/:qid", h.UpdateDepicts)
		api.PUT("/depicts/:qid/alt_labels", h.ReplaceAltLabels)
		api.DELETE("/depicts/:qid", h.DeleteDepicts)

		// Artworks and humans
		api.POST("/artworks", h.CreateArtwork)
		api.GET("/artworks/:qid", h.GetArtwork)
		api.DELETE("/artworks/:qid", h.DeleteArtwork)
		api.GET("/artworks/:qid/edits", h.ListArtworkEdits)
		api.POST("/humans", h.CreateHuman)
		api.GET("/humans/:qid", h.GetHuman)

		// Languages
		api.POST("/languages", h.CreateLanguage)
		api.GET("/languages", h.ListLanguages)
		api.GET("/languages/:code", h.GetLanguage)

		// Users
		api.POST("/users", h.EnsureUser)
		api.GET("/users/:username", h.GetUser)
		api.GET("/users/:username/edits", h.ListUserEdits)

		// Edits
		api.POST("/edits", h.RecordEdit)
		api.GET("/edits", h.ListEdits)

		// SPARQL query log
		api.GET("/queries", h.ListQueries)
		api.GET("/queries/:id", h.GetQuery)
	}
}

// corsMiddleware returns the CORS chain. With no allowlist every origin is
// accepted and ACAO is forced to "*", even for requests without Origin.
// Otherwise allowed origins are echoed back.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Accept-Encoding",
			"If-None-Match", middleware.WikiUserHeader,
		},
		ExposeHeaders:    []string{"X-Request-ID", "ETag", "Retry-After", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		base.AllowAllOrigins = true
		return []gin.HandlerFunc{
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = origins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// limitBody caps the request body at maxBytes via http.MaxBytesReader;
// oversized bodies make downstream reads fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
