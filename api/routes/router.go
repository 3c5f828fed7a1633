package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/novinbook/bookstore-backend/api/controllers"
	"github.com/novinbook/bookstore-backend/api/middleware"
	"github.com/novinbook/bookstore-backend/internal/auth"
	"github.com/novinbook/bookstore-backend/internal/books"
	"github.com/novinbook/bookstore-backend/internal/catalog"
	"github.com/novinbook/bookstore-backend/internal/favorites"
	"github.com/novinbook/bookstore-backend/internal/users"
	"github.com/novinbook/bookstore-backend/pkg/auth/session"
	"github.com/novinbook/bookstore-backend/pkg/config"
	"github.com/novinbook/bookstore-backend/pkg/logger"
	"github.com/novinbook/bookstore-backend/pkg/metrics"
	"github.com/novinbook/bookstore-backend/pkg/storage"
)

// RouterParams groups everything the HTTP surface needs.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	Metrics         *metrics.HTTPMetrics
	Sessions        session.AccessSessionChecker
	AuthService     auth.Service
	RegisterService auth.RegisterService
	UserRepo        *users.Repository
	BookService     books.Service
	FavoriteService favorites.Service
	FilterMemory    *catalog.FilterMemory
	ObjectStore     storage.ObjectStore
	ReadinessDeps   map[string]controllers.Pinger
}

// NewRouter wires the full HTTP surface.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.ReadinessDeps))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Public surface.
	r.Post("/register", controllers.Register(p.RegisterService, logg))
	r.Post("/login", controllers.Login(p.AuthService, logg))
	r.Get("/", controllers.CatalogList(p.BookService, logg))
	r.Get("/shop", controllers.CatalogList(p.BookService, logg))

	// Authenticated surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))

		r.Post("/logout", controllers.Logout(p.AuthService, logg))
		r.Get("/profile", controllers.ProfileFetch(p.UserRepo, logg))
		r.Put("/profile", controllers.ProfileUpdate(p.UserRepo, logg))

		r.Get("/favorites", controllers.FavoritesList(p.FavoriteService, logg))
		r.Post("/favorites/toggle", controllers.FavoritesToggle(p.FavoriteService, logg))

		r.Get("/book-management", controllers.ManagementList(p.BookService, p.FilterMemory, logg))
		r.Post("/book-add", controllers.BookAdd(p.BookService, logg))
		r.Get("/book-edit/{id}", controllers.BookEditFetch(p.BookService, logg))
		r.Post("/book-edit/{id}", controllers.BookEdit(p.BookService, logg))
		r.Post("/book-delete/{id}", controllers.BookDelete(p.BookService, logg))
		r.Post("/book-delete-filtered", controllers.BookDeleteFiltered(p.BookService, logg))
		r.Post("/book-image-presign", controllers.BookImagePresign(p.ObjectStore, logg))
	})

	return r
}
