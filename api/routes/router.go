package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olea-shop/olea-backend/api/controllers"
	"github.com/olea-shop/olea-backend/api/middleware"
	authsvc "github.com/olea-shop/olea-backend/internal/auth"
	cartsvc "github.com/olea-shop/olea-backend/internal/cart"
	checkoutsvc "github.com/olea-shop/olea-backend/internal/checkout"
	dashboardsvc "github.com/olea-shop/olea-backend/internal/dashboard"
	ordersvc "github.com/olea-shop/olea-backend/internal/orders"
	productsvc "github.com/olea-shop/olea-backend/internal/products"
	usersvc "github.com/olea-shop/olea-backend/internal/users"
	wishlistsvc "github.com/olea-shop/olea-backend/internal/wishlist"
	"github.com/olea-shop/olea-backend/pkg/auth/session"
	"github.com/olea-shop/olea-backend/pkg/config"
	"github.com/olea-shop/olea-backend/pkg/db"
	"github.com/olea-shop/olea-backend/pkg/logger"
	"github.com/olea-shop/olea-backend/pkg/redis"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth      authsvc.Service
	Products  productsvc.Service
	Cart      cartsvc.Service
	Wishlist  wishlistsvc.Service
	Checkout  checkoutsvc.Service
	Orders    ordersvc.Service
	Users     usersvc.Service
	Dashboard dashboardsvc.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessions session.SessionChecker,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Logging(logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.Register(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(svcs.Auth, logg))
		r.Post("/refresh", controllers.Refresh(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/password-reset", controllers.PasswordResetRequest(svcs.Auth, logg))
		r.Post("/password-reset/confirm", controllers.PasswordResetConfirm(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/logout", controllers.Logout(svcs.Auth, logg))
		})
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(svcs.Products, logg))
		r.Get("/{productID}", controllers.GetProduct(svcs.Products, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(svcs.Cart, logg))
			r.Post("/items", controllers.AddCartItem(svcs.Cart, logg))
			r.Patch("/items/{productID}", controllers.UpdateCartItem(svcs.Cart, logg))
			r.Delete("/items/{productID}", controllers.RemoveCartItem(svcs.Cart, logg))
			r.Delete("/", controllers.ClearCart(svcs.Cart, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.GetWishlist(svcs.Wishlist, logg))
			r.Post("/items", controllers.AddWishlistItem(svcs.Wishlist, logg))
			r.Delete("/items/{productID}", controllers.RemoveWishlistItem(svcs.Wishlist, logg))
		})

		r.Post("/checkout/cash", controllers.PlaceCashOrder(svcs.Checkout, logg))
		r.Route("/payments", func(r chi.Router) {
			r.Post("/initiate", controllers.InitiatePayment(svcs.Checkout, logg))
			r.Post("/verify", controllers.VerifyPayment(svcs.Checkout, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListMyOrders(svcs.Orders, logg))
			r.Get("/{orderID}", controllers.GetMyOrder(svcs.Orders, logg))
			r.Get("/ref/{reference}", controllers.GetMyOrderByReference(svcs.Orders, logg))
		})
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Get("/dashboard", controllers.AdminDashboard(svcs.Dashboard, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(svcs.Products, logg))
			r.Post("/", controllers.AdminCreateProduct(svcs.Products, logg))
			r.Get("/{productID}", controllers.AdminGetProduct(svcs.Products, logg))
			r.Patch("/{productID}", controllers.AdminUpdateProduct(svcs.Products, logg))
			r.Delete("/{productID}", controllers.AdminDeleteProduct(svcs.Products, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(svcs.Orders, logg))
			r.Patch("/{orderID}/status", controllers.AdminUpdateOrderStatus(svcs.Orders, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminListUsers(svcs.Users, logg))
			r.Get("/{userID}", controllers.AdminGetUser(svcs.Users, logg))
			r.Patch("/{userID}/active", controllers.AdminSetUserActive(svcs.Users, logg))
		})
	})

	return r
}
