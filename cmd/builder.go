package cmd

import (
	"context"
	"fmt"
	"net/http"

	"foodorder/api"
	"foodorder/api/health"
	apicart "foodorder/api/cart"
	apimenu "foodorder/api/menu"
	apiorder "foodorder/api/order"
	apiuser "foodorder/api/user"
	cartapp "foodorder/application/cart"
	menuapp "foodorder/application/menu"
	orderapp "foodorder/application/order"
	userapp "foodorder/application/user"
	"foodorder/config"
	"foodorder/infrastructure/persistence/gormdb"
	"foodorder/infrastructure/persistence/retry"
	"foodorder/pkg/auth"
	"foodorder/pkg/cache"
	"foodorder/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AppBuilder builds an App. The database and cache are opened from configuration
// unless supplied with WithDB / WithCache.
type AppBuilder struct {
	cfg   *config.Config
	db    *gorm.DB
	cache cache.Cache
}

// NewBuilder creates a new AppBuilder
func NewBuilder(cfg *config.Config) *AppBuilder {
	return &AppBuilder{cfg: cfg}
}

// WithDB uses an already opened database.
func (b *AppBuilder) WithDB(db *gorm.DB) *AppBuilder {
	b.db = db
	return b
}

// WithCache uses an already opened cache.
func (b *AppBuilder) WithCache(c cache.Cache) *AppBuilder {
	b.cache = c
	return b
}

// Build wires every layer and returns an App ready to Run.
func (b *AppBuilder) Build(ctx context.Context) (*App, error) {
	logger.Info("Starting application",
		zap.String("app", b.cfg.App.Name),
		zap.String("version", b.cfg.App.Version),
		zap.String("env", b.cfg.App.Env))

	db := b.db
	if db == nil {
		var err error
		if db, err = OpenDatabase(b.cfg); err != nil {
			return nil, err
		}
	}

	c := b.cache
	if c == nil {
		var err error
		if c, err = OpenCache(ctx, b.cfg); err != nil {
			return nil, err
		}
	}

	userRepo := gormdb.NewUserRepository(db)
	profileRepo := gormdb.NewProfileRepository(db)
	menuRepo := gormdb.NewMenuRepository(db)
	cartRepo := gormdb.NewCartRepository(db)
	orderRepo := gormdb.NewOrderRepository(db)
	uow := gormdb.NewUnitOfWork(db, retry.FromAppConfig(b.cfg))
	ttl := b.cfg.Cache.TTL

	userService := userapp.NewApplicationService(
		userRepo, profileRepo, uow,
		auth.NewBcryptHasher(b.cfg.Auth.BcryptCost),
		auth.NewJWTManager(b.cfg.Auth),
	)
	menuService := menuapp.NewApplicationService(menuRepo, cartRepo, uow, c, ttl)
	cartService := cartapp.NewApplicationService(cartRepo, menuRepo, uow, c, ttl)
	orderService := orderapp.NewApplicationService(orderRepo, cartRepo, profileRepo, uow, c, ttl)

	healthController := health.NewController(b.cfg, map[string]health.CheckFunc{
		"database": func(ctx context.Context) error { return gormdb.Ping(ctx, db) },
		"cache":    c.Ping,
	})

	router := api.NewRouter(
		b.cfg,
		userService,
		healthController,
		apiuser.NewController(userService),
		apimenu.NewController(menuService),
		apicart.NewController(cartService),
		apiorder.NewController(orderService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + b.cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  b.cfg.Server.ReadTimeout,
		WriteTimeout: b.cfg.Server.WriteTimeout,
	}

	return &App{
		config: b.cfg,
		router: router,
		server: server,
		db:     db,
		cache:  c,
	}, nil
}

// OpenDatabase connects and, when configured, migrates the schema.
func OpenDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gormdb.FromAppConfig(cfg.Database).Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Database.Type, err)
	}
	if cfg.Database.AutoMigrate {
		if err := gormdb.AutoMigrate(db); err != nil {
			_ = gormdb.Close(db)
			return nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
		logger.Info("Database schema migrated")
	}
	return db, nil
}

// OpenCache returns the configured cache backend.
func OpenCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Type {
	case "memory":
		logger.Info("Using in-process cache")
		return cache.NewMemory(), nil
	default:
		c, err := cache.NewRedisFromConfig(ctx, cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("Connected to Redis", zap.String("addr", cfg.Cache.Addr))
		return c, nil
	}
}
