package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/olea-shop/olea-backend/api/routes"
	authsvc "github.com/olea-shop/olea-backend/internal/auth"
	cartsvc "github.com/olea-shop/olea-backend/internal/cart"
	checkoutsvc "github.com/olea-shop/olea-backend/internal/checkout"
	dashboardsvc "github.com/olea-shop/olea-backend/internal/dashboard"
	ordersvc "github.com/olea-shop/olea-backend/internal/orders"
	"github.com/olea-shop/olea-backend/internal/pricing"
	productsvc "github.com/olea-shop/olea-backend/internal/products"
	usersvc "github.com/olea-shop/olea-backend/internal/users"
	wishlistsvc "github.com/olea-shop/olea-backend/internal/wishlist"
	"github.com/olea-shop/olea-backend/pkg/auth/session"
	"github.com/olea-shop/olea-backend/pkg/config"
	"github.com/olea-shop/olea-backend/pkg/db"
	"github.com/olea-shop/olea-backend/pkg/logger"
	"github.com/olea-shop/olea-backend/pkg/mailer"
	"github.com/olea-shop/olea-backend/pkg/metrics"
	"github.com/olea-shop/olea-backend/pkg/migrate"
	"github.com/olea-shop/olea-backend/pkg/razorpay"
	"github.com/olea-shop/olea-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	var mailSender mailer.Sender
	if cfg.SMTP.Host != "" {
		smtpSender, err := mailer.NewSMTPSender(cfg.SMTP, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create smtp sender", err)
			os.Exit(1)
		}
		mailSender = smtpSender
	} else {
		logg.Warn(context.Background(), "smtp host not configured, using noop mailer")
		mailSender = mailer.NewNoopSender(logg)
	}

	userRepo := usersvc.NewRepository(dbClient.DB())
	productRepo := productsvc.NewRepository(dbClient.DB())
	cartRepo := cartsvc.NewRepository(dbClient.DB())
	wishlistRepo := wishlistsvc.NewRepository(dbClient.DB())
	orderRepo := ordersvc.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(userRepo, sessionManager, mailSender, cfg.JWT, cfg.Password, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	productService, err := productsvc.NewService(productRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartRepo, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlistsvc.NewService(wishlistRepo, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(orderRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	userService, err := usersvc.NewService(userRepo, mailSender, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	shippingFee, err := cfg.Checkout.ShippingFee()
	if err != nil {
		logg.Error(context.Background(), "invalid shipping fee", err)
		os.Exit(1)
	}
	engine, err := pricing.NewEngine(shippingFee)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing engine", err)
		os.Exit(1)
	}

	gateway, err := razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, razorpay.WithBaseURL(cfg.Razorpay.BaseURL))
	if err != nil {
		logg.Error(context.Background(), "failed to create razorpay client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.Config{
		Tx:       dbClient,
		CartRepo: cartRepo,
		CartTx: func(tx *gorm.DB) checkoutsvc.CartRepo {
			return cartRepo.WithTx(tx)
		},
		Orders:  orderService,
		Engine:  engine,
		Gateway: gateway,
		Verify: func(orderID, paymentID, signature string) bool {
			return razorpay.VerifyPaymentSignature(cfg.Razorpay.KeySecret, orderID, paymentID, signature)
		},
		KeyID:    cfg.Razorpay.KeyID,
		Currency: cfg.Checkout.Currency,
		Metrics:  checkoutMetrics,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboardsvc.NewService(orderRepo, userRepo, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, registry, routes.Services{
			Auth:      authService,
			Products:  productService,
			Cart:      cartService,
			Wishlist:  wishlistService,
			Checkout:  checkoutService,
			Orders:    orderService,
			Users:     userService,
			Dashboard: dashboardService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
