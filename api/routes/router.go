package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/threadline/storefront/api/controllers"
	"github.com/threadline/storefront/api/middleware"
	"github.com/threadline/storefront/internal/cart"
	"github.com/threadline/storefront/internal/catalog"
	"github.com/threadline/storefront/internal/orders"
	"github.com/threadline/storefront/internal/wishlist"
	"github.com/threadline/storefront/pkg/config"
	"github.com/threadline/storefront/pkg/events"
	"github.com/threadline/storefront/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	Broker       *events.Broker
	Registry     *prometheus.Registry
	Catalog      catalog.Service
	Cart         cart.Service
	Wishlist     wishlist.Service
	Orders       orders.Service
	HealthChecks []controllers.Dependency
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.HealthChecks...))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(deps.Catalog, deps.Logger))
			r.Get("/{productId}", controllers.CatalogDetail(deps.Catalog, deps.Logger))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Cart, deps.Logger))
			r.Post("/", controllers.CartAdd(deps.Cart, deps.Catalog, deps.Logger))
			r.Delete("/", controllers.CartClear(deps.Cart, deps.Logger))
			r.Get("/summary", controllers.CartSummary(deps.Cart, deps.Logger))
			r.Post("/checkout", controllers.Checkout(deps.Cart, deps.Logger))
			r.Patch("/{productId}", controllers.CartAdjustQuantity(deps.Cart, deps.Logger))
			r.Delete("/{productId}", controllers.CartRemove(deps.Cart, deps.Logger))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(deps.Wishlist, deps.Logger))
			r.Post("/toggle", controllers.WishlistToggle(deps.Wishlist, deps.Catalog, deps.Logger))
			r.Delete("/{productId}", controllers.WishlistRemove(deps.Wishlist, deps.Logger))
			r.Post("/{productId}/move-to-cart", controllers.WishlistMoveToCart(deps.Wishlist, deps.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Orders, deps.Logger))
			r.Get("/{orderId}", controllers.OrderDetail(deps.Orders, deps.Logger))
		})

		r.Get("/events", controllers.EventsStream(deps.Broker, deps.Logger))
	})

	return r
}
