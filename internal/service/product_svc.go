package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mercado_api_v1/internal/api/dto"
	"mercado_api_v1/internal/model"
	"mercado_api_v1/internal/repository"
)

// ==================== ProductService ====================

type ProductService struct {
	productRepo  repository.ProductRepository
	shopRepo     repository.ShopRepository
	categoryRepo repository.CategoryRepository
	storage      StorageProvider
}

// NewProductService creates the product service
func NewProductService(
	productRepo repository.ProductRepository,
	shopRepo repository.ShopRepository,
	categoryRepo repository.CategoryRepository,
	storage StorageProvider,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		shopRepo:     shopRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
	}
}

// ==================== Read path ====================

// ListProducts applies the product visibility filter: shop-scoped
// listings skip the active-shop restriction, unscoped ones enforce it.
func (s *ProductService) ListProducts(ctx context.Context, req dto.ProductListReq) (*dto.ProductListResp, error) {
	filter := repository.ProductFilter{
		ShopID: parseIDParam(req.ShopID),
		Search: req.Search,
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProductListResp{
		Count:    len(products),
		Products: make([]dto.ProductResp, 0, len(products)),
	}
	for i := range products {
		resp.Products = append(resp.Products, toProductResp(&products[i]))
	}
	return resp, nil
}

// GetProduct fetches one product. Products of non-active shops are only
// visible to the shop owner; everyone else gets the indistinguishable
// ErrNotFound.
func (s *ProductService) GetProduct(ctx context.Context, viewerID, id int64) (*dto.ProductResp, error) {
	product, err := s.getWithShop(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.Shop.Status != model.ShopStatusActive && product.Shop.OwnerID != viewerID {
		return nil, ErrNotFound
	}

	resp := toProductResp(product)
	return &resp, nil
}

// ==================== Write path ====================

// CreateProduct gates on the owner of the shop referenced by the
// payload. A payload pointing at a missing shop is a validation error,
// not a 404.
func (s *ProductService) CreateProduct(ctx context.Context, callerID int64, req *dto.ProductCreateReq) (*dto.ProductResp, error) {
	if callerID == 0 {
		return nil, ErrUnauthorized
	}

	shop, err := s.shopRepo.GetByID(ctx, req.Shop)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}

	product := &model.Product{
		ShopID:      shop.ID,
		Shop:        shop,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := AuthorizeMutation(callerID, product); err != nil {
		return nil, err
	}

	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if req.Category != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.Category); err != nil {
			return nil, ErrCategoryMissing
		}
		product.CategoryID = req.Category
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsInfiniteStock != nil {
		product.IsInfiniteStock = *req.IsInfiniteStock
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, callerID, product.ID)
}

// UpdateProduct owner-gated partial update; the parent shop is
// immutable and absent from the field map.
func (s *ProductService) UpdateProduct(ctx context.Context, callerID, id int64, req *dto.ProductUpdateReq) (*dto.ProductResp, error) {
	product, err := s.getForMutation(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Category != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.Category); err != nil {
			return nil, ErrCategoryMissing
		}
		fields["category_id"] = *req.Category
	}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, ErrNegativePrice
		}
		fields["price"] = *req.Price
	}
	if req.Stock != nil {
		fields["stock"] = *req.Stock
	}
	if req.IsInfiniteStock != nil {
		fields["is_infinite_stock"] = *req.IsInfiniteStock
	}

	if len(fields) > 0 {
		if err := s.productRepo.UpdateFields(ctx, product.ID, fields); err != nil {
			return nil, err
		}
	}

	return s.GetProduct(ctx, callerID, id)
}

// DeleteProduct owner-gated delete
func (s *ProductService) DeleteProduct(ctx context.Context, callerID, id int64) error {
	product, err := s.getForMutation(ctx, callerID, id)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, product.ID)
}

// UploadImage stores the blob before touching the product row.
func (s *ProductService) UploadImage(ctx context.Context, callerID, id int64, data []byte, filename, contentType string) (*dto.ProductResp, error) {
	product, err := s.getForMutation(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	key := ProductImageKey(product.Shop.Name, product.Name, filename)
	url, err := s.storage.Upload(ctx, data, key, contentType)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.UpdateFields(ctx, product.ID, map[string]interface{}{"image": url}); err != nil {
		return nil, err
	}

	return s.GetProduct(ctx, callerID, id)
}

// ==================== Internal ====================

func (s *ProductService) getWithShop(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) getForMutation(ctx context.Context, callerID, id int64) (*model.Product, error) {
	product, err := s.getWithShop(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeMutation(callerID, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ==================== Converters ====================

func toProductResp(product *model.Product) dto.ProductResp {
	resp := dto.ProductResp{
		ID:              product.ID,
		Shop:            product.ShopID,
		Category:        product.CategoryID,
		Name:            product.Name,
		Description:     product.Description,
		Image:           product.Image,
		Price:           product.Price,
		Stock:           product.Stock,
		IsInfiniteStock: product.IsInfiniteStock,
		CreatedAt:       product.CreatedAt,
	}
	if product.Category != nil {
		resp.CategoryName = product.Category.Name
	}
	return resp
}
