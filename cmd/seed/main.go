// Command seed creates an admin account and a starter catalog.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	menuapp "foodorder/application/menu"
	userapp "foodorder/application/user"
	"foodorder/cmd"
	"foodorder/config"
	"foodorder/domain/shared"
	"foodorder/infrastructure/persistence/gormdb"
	"foodorder/infrastructure/persistence/retry"
	"foodorder/pkg/auth"
	"foodorder/pkg/logger"

	"go.uber.org/zap"
)

var starterMenus = []menuapp.CreateMenuRequest{
	{Name: "Nasi Goreng", Price: 25000, ImageURL: "https://images.example.com/nasi-goreng.jpg"},
	{Name: "Mie Ayam", Price: 20000, ImageURL: "https://images.example.com/mie-ayam.jpg"},
	{Name: "Sate Ayam", Price: 30000, ImageURL: "https://images.example.com/sate-ayam.jpg"},
	{Name: "Gado Gado", Price: 18000, ImageURL: "https://images.example.com/gado-gado.jpg"},
	{Name: "Es Teh", Price: 5000, ImageURL: "https://images.example.com/es-teh.jpg"},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		admin      userapp.RegisterRequest
		withMenus  bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&admin.Username, "admin-username", "admin", "Admin username")
	flag.StringVar(&admin.Email, "admin-email", "admin@foodorder.local", "Admin email")
	flag.StringVar(&admin.Password, "admin-password", "", "Admin password (required)")
	flag.StringVar(&admin.PhoneNumber, "admin-phone", "0000000000", "Admin phone number")
	flag.BoolVar(&withMenus, "menus", true, "Create the starter menus")
	flag.Parse()

	if admin.Password == "" {
		return errors.New("-admin-password is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := cmd.OpenDatabase(cfg)
	if err != nil {
		return err
	}
	defer gormdb.Close(db)
	c, err := cmd.OpenCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	uow := gormdb.NewUnitOfWork(db, retry.FromAppConfig(cfg))
	users := userapp.NewApplicationService(
		gormdb.NewUserRepository(db), gormdb.NewProfileRepository(db), uow,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost), auth.NewJWTManager(cfg.Auth),
	)
	resp, err := users.RegisterAdmin(ctx, admin)
	switch {
	case shared.KindOf(err) == shared.KindValidation:
		logger.Warn("Admin not created", zap.Error(err))
	case err != nil:
		return fmt.Errorf("create admin: %w", err)
	default:
		logger.Info("Admin created", zap.Uint("user_id", resp.ID), zap.String("email", resp.Email))
	}

	if !withMenus {
		return nil
	}
	menus := menuapp.NewApplicationService(gormdb.NewMenuRepository(db), gormdb.NewCartRepository(db), uow, c, cfg.Cache.TTL)
	for _, req := range starterMenus {
		m, err := menus.Create(ctx, req)
		if err != nil {
			return fmt.Errorf("create menu %s: %w", req.Name, err)
		}
		logger.Info("Menu created", zap.Uint("menu_id", m.ID), zap.String("name", m.Name))
	}
	return nil
}
