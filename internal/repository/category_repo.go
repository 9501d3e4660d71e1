package repository

import (
	"context"

	"gorm.io/gorm"

	"mercado_api_v1/internal/model"
)

// CategoryRepository category persistence interface
type CategoryRepository interface {
	FirstOrCreateByName(ctx context.Context, name string) (*model.Category, bool, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository creates the category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// FirstOrCreateByName returns the category with the given name, creating
// it if absent. The second return reports whether a row was created.
func (r *categoryRepo) FirstOrCreateByName(ctx context.Context, name string) (*model.Category, bool, error) {
	var category model.Category
	result := r.db.WithContext(ctx).
		Where(model.Category{Name: name}).
		FirstOrCreate(&category)
	if result.Error != nil {
		return nil, false, result.Error
	}
	return &category, result.RowsAffected > 0, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

// Delete nullifies the category reference on dependent products before
// removing the category row, in one transaction. Products survive.
func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
}
