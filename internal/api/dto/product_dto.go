package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductListReq query parameters of the product listing. ShopID stays a
// raw string so unparseable values yield an empty set instead of a 400.
type ProductListReq struct {
	ShopID string `form:"shop_id"`
	Search string `form:"search"`
}

// ProductCreateReq product creation payload. The referenced shop's owner
// must be the authenticated caller.
type ProductCreateReq struct {
	Shop            int64           `json:"shop" binding:"required"`
	Category        *int64          `json:"category"`
	Name            string          `json:"name" binding:"required,max=255"`
	Description     string          `json:"description" binding:"omitempty,max=1000"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	Stock           *int            `json:"stock" binding:"omitempty,gte=0"`
	IsInfiniteStock *bool           `json:"is_infinite_stock"`
}

// ProductUpdateReq partial update payload; the parent shop is immutable
// and cannot appear here.
type ProductUpdateReq struct {
	Category        *int64           `json:"category"`
	Name            *string          `json:"name" binding:"omitempty,max=255"`
	Description     *string          `json:"description" binding:"omitempty,max=1000"`
	Price           *decimal.Decimal `json:"price"`
	Stock           *int             `json:"stock" binding:"omitempty,gte=0"`
	IsInfiniteStock *bool            `json:"is_infinite_stock"`
}

// ProductResp serialized product
type ProductResp struct {
	ID              int64           `json:"id"`
	Shop            int64           `json:"shop"`
	Category        *int64          `json:"category"`
	CategoryName    string          `json:"category_name,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Image           string          `json:"image,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	IsInfiniteStock bool            `json:"is_infinite_stock"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ProductListResp product listing envelope
type ProductListResp struct {
	Count    int           `json:"count"`
	Products []ProductResp `json:"products"`
}
