// Package api exposes the content store over HTTP: public reads for the site
// and password protected mutations for the admin editor.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"elevate-backend/internal/content"
	appErrors "elevate-backend/internal/errors"
	"elevate-backend/internal/media"
	"elevate-backend/internal/middleware"
	"elevate-backend/internal/observability"
)

// Options tunes the router.
type Options struct {
	AllowedOrigins []string
	CORSMaxAge     int
	// MutationTimeout bounds how long an admin request waits for the remote
	// store before answering 202.
	MutationTimeout time.Duration
	MaxUploadBytes  int64
}

// Router creates and configures the HTTP router
type Router struct {
	store   *content.Store
	uploads *media.Service
	secret  *AdminSecret
	metrics *observability.Collector
	logger  *zap.Logger
	opts    Options
}

// NewRouter creates a new router instance. uploads and metrics may be nil.
func NewRouter(
	store *content.Store,
	uploads *media.Service,
	secret *AdminSecret,
	metrics *observability.Collector,
	logger *zap.Logger,
	opts Options,
) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	if secret == nil {
		secret = NewAdminSecret("")
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Router{
		store:   store,
		uploads: uploads,
		secret:  secret,
		metrics: metrics,
		logger:  logger,
		opts:    opts,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	router := chi.NewRouter()

	var recorder middleware.HTTPRecorder
	if rt.metrics != nil {
		recorder = rt.metrics
	}

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Recovery(rt.logger))
	router.Use(middleware.Logger(rt.logger, recorder))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader, middleware.AdminPasswordHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           rt.opts.CORSMaxAge,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, appErrors.NotFound(appErrors.CodeRouteNotFound, "route not found").Build())
	})

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	contentHandler := NewContentHandler(rt.store, rt.logger)
	adminHandler := NewAdminHandler(rt.store, rt.logger)
	mediaHandler := NewMediaHandler(rt.uploads, rt.opts.MaxUploadBytes, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/content", contentHandler.GetContent)
		r.Get("/products", contentHandler.ListProducts)
		r.Get("/products/{id}", contentHandler.GetProduct)
		r.Get("/blog-posts", contentHandler.ListBlogPosts)
		r.Get("/blog-posts/{slug}", contentHandler.GetBlogPost)
		r.Get("/partners", contentHandler.ListPartners)
		r.Get("/testimonials", contentHandler.ListTestimonials)
		r.Get("/industries", contentHandler.ListIndustries)
		r.Get("/team-members", contentHandler.ListTeamMembers)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(rt.secret.Get, rt.logger))
			r.Use(middleware.Timeout(rt.opts.MutationTimeout))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", adminHandler.CreateProduct)
				r.Put("/{id}", adminHandler.UpdateProduct)
				r.Delete("/{id}", adminHandler.DeleteProduct)
			})
			r.Route("/blog-posts", func(r chi.Router) {
				r.Post("/", adminHandler.CreateBlogPost)
				r.Put("/{id}", adminHandler.UpdateBlogPost)
				r.Delete("/{id}", adminHandler.DeleteBlogPost)
			})
			r.Route("/partners", func(r chi.Router) {
				r.Post("/", adminHandler.CreatePartner)
				r.Put("/{id}", adminHandler.UpdatePartner)
				r.Delete("/{id}", adminHandler.DeletePartner)
			})
			r.Route("/testimonials", func(r chi.Router) {
				r.Post("/", adminHandler.CreateTestimonial)
				r.Put("/{id}", adminHandler.UpdateTestimonial)
				r.Delete("/{id}", adminHandler.DeleteTestimonial)
			})
			r.Route("/industries", func(r chi.Router) {
				r.Post("/", adminHandler.CreateIndustry)
				r.Put("/at/{index}", adminHandler.UpdateIndustryAt)
				r.Delete("/at/{index}", adminHandler.DeleteIndustryAt)
				r.Put("/{id}", adminHandler.UpdateIndustry)
				r.Delete("/{id}", adminHandler.DeleteIndustry)
			})
			r.Route("/team-members", func(r chi.Router) {
				r.Post("/", adminHandler.CreateTeamMember)
				r.Put("/{id}", adminHandler.UpdateTeamMember)
				r.Delete("/{id}", adminHandler.DeleteTeamMember)
			})

			r.Post("/media", mediaHandler.Upload)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck answers 503 until the store finished its bootstrap load.
func (rt *Router) readinessCheck(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{
		"status":          "ready",
		"remoteAvailable": rt.store.RemoteAvailable(),
		"mediaDriver":     rt.mediaDriver(),
	}
	if !rt.store.Ready() {
		body["status"] = "bootstrapping"
		middleware.WriteJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, body)
}

func (rt *Router) mediaDriver() string {
	if rt.uploads == nil {
		return "none"
	}
	return rt.uploads.Driver()
}
