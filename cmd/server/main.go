package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"shopledger/internal/cart"
	"shopledger/internal/checkout"
	"shopledger/internal/codec"
	"shopledger/internal/config"
	"shopledger/internal/dashboard"
	"shopledger/internal/events"
	"shopledger/internal/inventory"
	"shopledger/internal/kvstore"
	"shopledger/internal/logger"
	"shopledger/internal/middleware"
	"shopledger/internal/order"
	"shopledger/internal/transport"
	"shopledger/internal/user"
	"shopledger/internal/wishlist"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	store, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatal("failed to open store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer cleanup()

	c := codec.New(store)
	bus := events.NewBus()

	productRepo := inventory.NewRepository(c)
	inventorySvc := inventory.NewService(productRepo, bus)
	cartSvc := cart.NewService(cart.NewRepository(c), productRepo, bus)
	wishlistSvc := wishlist.NewService(wishlist.NewRepository(c), productRepo, bus)
	orderSvc := order.NewService(order.NewRepository(c), bus)
	userSvc := user.NewService(user.NewRepository(c), bus)

	h := &transport.Handler{
		Cfg:       cfg,
		Users:     userSvc,
		Inventory: inventorySvc,
		Carts:     cartSvc,
		Wishlists: wishlistSvc,
		Orders:    orderSvc,
		Checkout:  checkout.NewService(cartSvc, orderSvc, productRepo),
		Dashboard: dashboard.NewService(inventorySvc, orderSvc, userSvc),
	}

	var handler http.Handler = transport.NewRouter(h)
	handler = middleware.RateLimitMiddleware(handler)
	handler = middleware.AuthMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)

	log.Info("🚀 server listening",
		zap.String("port", cfg.AppPort),
		zap.String("backend", cfg.StoreBackend),
	)
	if err := http.ListenAndServe(":"+cfg.AppPort, handler); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// openStore builds the key-value backend named by STORE_BACKEND. The
// returned cleanup releases any held connection.
func openStore(cfg *config.Config) (kvstore.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case "memory":
		return kvstore.NewMemory(), noop, nil

	case "file":
		store, err := kvstore.NewFile(cfg.StorePath)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, noop, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, noop, err
		}
		return kvstore.NewPostgres(db), func() { db.Close() }, nil

	case "dynamo":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, noop, err
		}
		client := dynamodb.NewFromConfig(awsCfg)
		return kvstore.NewDynamo(client, cfg.DynamoTable), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
