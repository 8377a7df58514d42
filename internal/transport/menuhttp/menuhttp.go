package menuhttp

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/allo/restaurant/internal/service/models/menuitem"
	"github.com/allo/restaurant/pkg/http/middleware/trace"
	"github.com/allo/restaurant/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type service interface {
	CreateMenuItem(ctx context.Context, item menuitem.MenuItem) (menuitem.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item menuitem.MenuItem) (menuitem.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
	GetMenuItemByID(ctx context.Context, id string) (menuitem.MenuItem, error)
	GetMenuItems(ctx context.Context, limit, offset int) ([]menuitem.MenuItem, int64, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/menu-items", func(r chi.Router) {
		r.Post("/", h.createMenuItem)
		r.Get("/", h.listMenuItems)
		r.Get("/{id}", h.getMenuItem)
		r.Put("/{id}", h.updateMenuItem)
		r.Delete("/{id}", h.deleteMenuItem)
	})
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware("menu-svc"))

	c := cors.New(cors.Options{
		AllowedOrigins:   viper.GetStringSlice("server.http.cors.allowed_origins"),
		AllowedMethods:   viper.GetStringSlice("server.http.cors.allowed_methods"),
		AllowedHeaders:   viper.GetStringSlice("server.http.cors.allowed_headers"),
		ExposedHeaders:   viper.GetStringSlice("server.http.cors.exposed_headers"),
		AllowCredentials: viper.GetBool("server.http.cors.allow_credentials"),
		MaxAge:           viper.GetInt("server.http.cors.max_age"),
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
