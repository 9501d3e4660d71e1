package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mercado_api_v1/internal/model"
	"mercado_api_v1/internal/repository"
)

// DefaultCategories the fixed set inserted by the seed command.
var DefaultCategories = []string{
	"Electrónica",
	"Ropa y Moda",
	"Hogar y Jardín",
	"Deportes",
	"Juguetes y Juegos",
	"Salud y Belleza",
	"Automóviles",
	"Libros y Papelería",
	"Alimentos y Bebidas",
	"Mascotas",
}

// ==================== CategoryService ====================

type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates the category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories publicly readable, no filtering
func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// DeleteCategory removes a category; dependent products keep existing
// with a null category reference.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}

// SeedDefaults inserts the default categories idempotently. Returns the
// number of rows actually created.
func (s *CategoryService) SeedDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, name := range DefaultCategories {
		_, isNew, err := s.categoryRepo.FirstOrCreateByName(ctx, name)
		if err != nil {
			return created, err
		}
		if isNew {
			created++
		}
	}
	return created, nil
}
