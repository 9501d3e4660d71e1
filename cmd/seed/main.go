package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"mercado_api_v1/internal/config"
	"mercado_api_v1/internal/model"
	"mercado_api_v1/internal/repository"
	"mercado_api_v1/internal/service"
	"mercado_api_v1/pkg/database"
)

// Seeds the fixed category set. Safe to run repeatedly.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db := database.InitDB(cfg.DSN(), &model.Category{})

	categorySvc := service.NewCategoryService(repository.NewCategoryRepository(db))

	created, err := categorySvc.SeedDefaults(context.Background())
	if err != nil {
		log.Fatalf("seed categories: %v", err)
	}

	log.Printf("categories seeded: %d created, %d already present",
		created, len(service.DefaultCategories)-created)
}
