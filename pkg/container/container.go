package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"car-inventory-backend/internal/config"
	infraCache "car-inventory-backend/internal/infrastructure/cache"
	"car-inventory-backend/internal/infrastructure/database"
	"car-inventory-backend/pkg/cache"
	"car-inventory-backend/pkg/jwt"

	"car-inventory-backend/internal/domains/auth"
	catalogHandler "car-inventory-backend/internal/domains/catalog/handler"
	catalogRepo "car-inventory-backend/internal/domains/catalog/repository"
	catalogService "car-inventory-backend/internal/domains/catalog/service"
	detailHandler "car-inventory-backend/internal/domains/detail/handler"
	detailRepo "car-inventory-backend/internal/domains/detail/repository"
	detailService "car-inventory-backend/internal/domains/detail/service"
)

// Container holds the full dependency graph, built in order:
// config -> infrastructure -> repositories -> services -> handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	CatalogRepo catalogRepo.Repository
	DetailRepo  detailRepo.Repository

	// Services
	CatalogService catalogService.Service
	DetailService  detailService.Service
	AuthService    auth.Service

	// Handlers
	CatalogHandler *catalogHandler.Handler
	DetailHandler  *detailHandler.Handler
	AuthHandler    *auth.Handler
}

// NewContainer builds and initializes the whole dependency graph.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI container...")

	c := &Container{}

	// Step 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// Step 2: database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Step 3: cache
	c.Cache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(ctx); err != nil {
		// Cache is an optimization for the catalog lists, not a hard
		// dependency; the repositories fall through to Postgres.
		log.Printf("⚠️  Redis unavailable: %v", err)
	}

	// Step 4: JWT manager
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TokenExpiry)*time.Hour)

	// Step 5: repositories
	c.CatalogRepo = catalogRepo.NewPostgresRepository(c.DB.Pool, c.Cache)
	c.DetailRepo = detailRepo.NewPostgresRepository(c.DB.Pool)

	// Step 6: services
	c.CatalogService = catalogService.NewCatalogService(c.CatalogRepo)
	c.DetailService = detailService.NewDetailService(c.DetailRepo, c.CatalogRepo)

	authService, err := auth.NewAuthService(cfg.Auth.AdminPassword, c.JWTManager)
	if err != nil {
		return nil, fmt.Errorf("failed to build auth service: %w", err)
	}
	c.AuthService = authService

	// Step 7: handlers
	c.CatalogHandler = catalogHandler.NewHandler(c.CatalogService)
	c.DetailHandler = detailHandler.NewHandler(c.DetailService)
	c.AuthHandler = auth.NewHandler(c.AuthService)

	log.Println("✅ DI container ready")
	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close redis client: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
