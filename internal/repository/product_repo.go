package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"mercado_api_v1/internal/model"
)

// ==================== Interfaces ====================

// ProductRepository product persistence interface
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
}

// ==================== Filters ====================

// ProductFilter narrows the product listing.
//
// A ShopID pins the listing to one shop and skips the active-shop
// restriction, so an owner can browse their own draft shop's products
// directly by id. Without a ShopID the listing is global and products of
// non-active shops are excluded via an explicit join on shops.status.
// A negative ShopID is the no-match sentinel for unparseable input.
type ProductFilter struct {
	ShopID int64
	Search string
}

// ==================== Implementation ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository creates the product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID loads the product with its parent shop, which the ownership
// authorizer needs, and its category for serialization.
func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Shop").
		Preload("Category").
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields).Error
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var products []model.Product

	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.ShopID != 0 {
		query = query.Where("products.shop_id = ?", filter.ShopID)
	} else {
		// Unscoped search must never surface products of non-active shops.
		query = query.
			Joins("JOIN shops ON shops.id = products.shop_id").
			Where("shops.status = ?", model.ShopStatusActive)
	}

	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", term, term)
	}

	err := query.
		Preload("Category").
		Order("products.id ASC").
		Find(&products).Error
	return products, err
}
