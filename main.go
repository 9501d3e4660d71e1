package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mercado_api_v1/internal/config"
	"mercado_api_v1/internal/controller"
	"mercado_api_v1/internal/middleware"
	"mercado_api_v1/internal/model"
	"mercado_api_v1/internal/repository"
	"mercado_api_v1/internal/router"
	"mercado_api_v1/internal/service"
	"mercado_api_v1/pkg/database"
)

// @title Mercado API
// @version 1.0
// @description Multi-tenant marketplace backend: users own shops, shops contain categorized products.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.JWTSecret != "" {
		jwtCfg := middleware.DefaultJWTConfig()
		jwtCfg.SecretKey = cfg.JWTSecret
		middleware.SetJWTConfig(jwtCfg)
	}

	db := database.InitDB(cfg.DSN(),
		&model.User{},
		&model.Category{},
		&model.Shop{},
		&model.Product{},
	)

	storage, err := service.NewStorageProvider(&service.StorageConfig{
		Provider:  cfg.StorageProvider,
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		CDNDomain: cfg.S3CDNDomain,
		LocalDir:  cfg.StorageDir,
	})
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	shopRepo := repository.NewShopRepository(db)
	productRepo := repository.NewProductRepository(db)

	userSvc := service.NewUserService(userRepo, storage)
	shopSvc := service.NewShopService(shopRepo, storage)
	productSvc := service.NewProductService(productRepo, shopRepo, categoryRepo, storage)
	categorySvc := service.NewCategoryService(categoryRepo)

	authCtl := controller.NewAuthController(userSvc)
	shopCtl := controller.NewShopController(shopSvc)
	productCtl := controller.NewProductController(productSvc)
	categoryCtl := controller.NewCategoryController(categorySvc)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	router.InitRoutes(r, authCtl, shopCtl, productCtl, categoryCtl)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
