package service

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"mercado_api_v1/internal/api/dto"
	"mercado_api_v1/internal/model"
	"mercado_api_v1/internal/repository"
)

// ==================== ShopService ====================

type ShopService struct {
	shopRepo repository.ShopRepository
	storage  StorageProvider
}

// NewShopService creates the shop service
func NewShopService(shopRepo repository.ShopRepository, storage StorageProvider) *ShopService {
	return &ShopService{shopRepo: shopRepo, storage: storage}
}

// ==================== Read path ====================

// ListShops applies the visibility filter for the given viewer.
// viewerID 0 means anonymous.
func (s *ShopService) ListShops(ctx context.Context, viewerID int64, req dto.ShopListReq) (*dto.ShopListResp, error) {
	filter := repository.ShopFilter{
		ViewerID: viewerID,
		OwnerID:  parseIDParam(req.Owner),
		Status:   req.Status,
		Search:   req.Search,
	}

	shops, err := s.shopRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ShopListResp{
		Count: len(shops),
		Shops: make([]dto.ShopResp, 0, len(shops)),
	}
	for i := range shops {
		resp.Shops = append(resp.Shops, toShopResp(&shops[i]))
	}
	return resp, nil
}

// GetShop fetches one shop if the viewer may see it. A shop outside the
// viewer's visibility yields the same ErrNotFound as a missing id.
func (s *ShopService) GetShop(ctx context.Context, viewerID, id int64) (*dto.ShopResp, error) {
	shop, err := s.shopRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if shop.Status != model.ShopStatusActive && shop.OwnerID != viewerID {
		return nil, ErrNotFound
	}

	resp := toShopResp(shop)
	return &resp, nil
}

// ==================== Write path ====================

// CreateShop creates a shop owned by the caller. Any owner value in the
// payload was already discarded at the DTO boundary; the column is
// forced here.
func (s *ShopService) CreateShop(ctx context.Context, callerID int64, req *dto.ShopCreateReq) (*dto.ShopResp, error) {
	if callerID == 0 {
		return nil, ErrUnauthorized
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, ErrUnpairedCoords
	}

	shop := &model.Shop{
		OwnerID:     callerID,
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsPhysical:  true,
		Status:      model.ShopStatusActive,
	}
	if req.IsPhysical != nil {
		shop.IsPhysical = *req.IsPhysical
	}
	if req.Status != "" {
		shop.Status = req.Status
	}

	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}

	return s.GetShop(ctx, callerID, shop.ID)
}

// UpdateShop owner-gated partial update. Owner and created_at never
// appear in the field map.
func (s *ShopService) UpdateShop(ctx context.Context, callerID, id int64, req *dto.ShopUpdateReq) (*dto.ShopResp, error) {
	shop, err := s.getForMutation(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, ErrUnpairedCoords
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
		fields["longitude"] = *req.Longitude
	}
	if req.IsPhysical != nil {
		fields["is_physical"] = *req.IsPhysical
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if len(fields) > 0 {
		if err := s.shopRepo.UpdateFields(ctx, shop.ID, fields); err != nil {
			return nil, err
		}
	}

	return s.GetShop(ctx, callerID, id)
}

// DeleteShop owner-gated cascade delete
func (s *ShopService) DeleteShop(ctx context.Context, callerID, id int64) error {
	shop, err := s.getForMutation(ctx, callerID, id)
	if err != nil {
		return err
	}
	return s.shopRepo.Delete(ctx, shop.ID)
}

// ResetShop owner-gated: atomically destroys the shop's products and
// reverts the shop to the blank draft template.
func (s *ShopService) ResetShop(ctx context.Context, callerID, id int64) (*dto.ShopResp, error) {
	shop, err := s.getForMutation(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if err := s.shopRepo.Reset(ctx, shop.ID); err != nil {
		return nil, err
	}

	return s.GetShop(ctx, callerID, id)
}

// UploadImage stores the blob first; the shop row is only updated after
// the upload succeeded, so a storage failure leaves the record intact.
func (s *ShopService) UploadImage(ctx context.Context, callerID, id int64, data []byte, filename, contentType string) (*dto.ShopResp, error) {
	shop, err := s.getForMutation(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.Upload(ctx, data, ShopImageKey(shop.Name, filename), contentType)
	if err != nil {
		return nil, err
	}

	if err := s.shopRepo.UpdateFields(ctx, shop.ID, map[string]interface{}{"image": url}); err != nil {
		return nil, err
	}

	return s.GetShop(ctx, callerID, id)
}

// getForMutation loads the target and runs the ownership gate. Missing
// rows map to ErrNotFound before any permission check.
func (s *ShopService) getForMutation(ctx context.Context, callerID, id int64) (*model.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := AuthorizeMutation(callerID, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// ==================== Converters ====================

func toShopResp(shop *model.Shop) dto.ShopResp {
	resp := dto.ShopResp{
		ID:          shop.ID,
		Owner:       shop.OwnerID,
		Name:        shop.Name,
		Location:    shop.Location,
		Description: shop.Description,
		Image:       shop.Image,
		Latitude:    shop.Latitude,
		Longitude:   shop.Longitude,
		IsPhysical:  shop.IsPhysical,
		Status:      shop.Status,
		Products:    make([]dto.ProductResp, 0, len(shop.Products)),
		CreatedAt:   shop.CreatedAt,
	}
	if shop.Owner != nil {
		resp.OwnerUsername = shop.Owner.Username
	}
	for i := range shop.Products {
		resp.Products = append(resp.Products, toProductResp(&shop.Products[i]))
	}
	return resp
}

// parseIDParam maps "" to 0 (absent) and anything unparseable to -1, a
// value that matches no row: malformed ids yield empty sets, not errors.
func parseIDParam(raw string) int64 {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return -1
	}
	return id
}
