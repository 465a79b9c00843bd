package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wholesale-catalog/internal/cache"
	"wholesale-catalog/internal/config"
	"wholesale-catalog/internal/database"
	"wholesale-catalog/internal/handlers"
	"wholesale-catalog/internal/logger"
	"wholesale-catalog/internal/middleware"
	"wholesale-catalog/internal/models"
	"wholesale-catalog/internal/repository"
	"wholesale-catalog/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to build logger: ", err)
	}
	defer zlog.Sync()

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		zlog.Fatal("mongo connection failed", zap.Error(err))
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.MongoDB)

	// One engine instance per collection, wired explicitly.
	brands := repository.New[models.Brand, *models.Brand](db.Collection("brands"), "brand", repository.Options{
		SearchFields:   []string{"name"},
		SortableFields: []string{"name", "country", "created_at", "updated_at"},
	})
	categories := repository.New[models.Category, *models.Category](db.Collection("categories"), "category", repository.Options{
		SearchFields:   []string{"name"},
		SortableFields: []string{"name", "created_at", "updated_at"},
	})
	stores := repository.New[models.Store, *models.Store](db.Collection("stores"), "store", repository.Options{
		SearchFields:   []string{"name", "address"},
		SortableFields: []string{"name", "created_at", "updated_at"},
	})
	warehouses := repository.New[models.Warehouse, *models.Warehouse](db.Collection("warehouses"), "warehouse", repository.Options{
		SearchFields:   []string{"name", "location"},
		SortableFields: []string{"name", "location", "capacity", "created_at", "updated_at"},
	})
	users := repository.New[models.User, *models.User](db.Collection("users"), "user", repository.Options{
		SearchFields:   []string{"username", "email", "full_name"},
		UniqueFields:   []string{"email"},
		SortableFields: []string{"username", "email", "created_at", "updated_at"},
		ActiveField:    "is_active",
	})
	files := repository.New[models.File, *models.File](db.Collection("files"), "file", repository.Options{
		SearchFields:   []string{"filename"},
		SortableFields: []string{"filename", "size", "created_at"},
		OmitUpdatedAt:  true,
	})
	products := repository.New[models.Product, *models.Product](db.Collection("products"), "product", repository.Options{
		SearchFields:   []string{"name", "sku"},
		UniqueFields:   []string{"sku"},
		SortableFields: []string{"name", "base_price", "stock", "created_at", "updated_at"},
		ActiveField:    "is_active",
	})

	// Write-time foreign-key existence checks.
	categories.AddRefCheck("parent_id", "category", categories.Exists)
	brands.AddRefCheck("logo_id", "file", files.Exists)
	stores.AddRefCheck("owner_id", "user", users.Exists)
	warehouses.AddRefCheck("manager_id", "user", users.Exists)
	products.AddRefCheck("brand_id", "brand", brands.Exists)
	products.AddRefCheck("category_id", "category", categories.Exists)
	products.AddRefCheck("store_id", "store", stores.Exists)
	products.AddRefCheck("warehouse_id", "warehouse", warehouses.Exists)
	products.AddRefCheck("seller_id", "user", users.Exists)

	populator := &repository.Populator{
		Stores:     stores,
		Categories: categories,
		Brands:     brands,
		Warehouses: warehouses,
		Files:      files,
	}

	var store cache.Cache
	if cfg.CacheBackend == "redis" {
		store, err = cache.NewRedis(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zlog.Fatal("redis connection failed", zap.Error(err))
		}
	} else {
		store = cache.NewMemory()
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		zlog.Fatal("failed to create upload directory", zap.Error(err))
	}

	h := &handlers.Set{
		Products:   handlers.NewProductHandler(products, populator, store, cfg.CacheTTL),
		Brands:     handlers.NewBrandHandler(brands, store),
		Categories: handlers.NewCategoryHandler(categories, store),
		Stores:     handlers.NewStoreHandler(stores, store),
		Warehouses: handlers.NewWarehouseHandler(warehouses, store),
		Users:      handlers.NewUserHandler(users),
		Files:      handlers.NewFileHandler(files, store),
		Upload:     handlers.NewUploadHandler(files, cfg.UploadDir),
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(zlog))
	router.Use(middleware.Metrics())

	rl, err := middleware.RateLimit(cfg.RateLimit)
	if err != nil {
		zlog.Fatal("invalid rate limit", zap.Error(err))
	}
	router.Use(rl)

	routes.RegisterRoutes(router, h, cfg.UploadDir)

	zlog.Info("server running", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
