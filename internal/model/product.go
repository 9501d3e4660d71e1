package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel

	// Parent shop, immutable after creation.
	ShopID int64 `gorm:"index;not null" json:"shop"`
	Shop   *Shop `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE" json:"-"`

	// Optional grouping; nullified when the category is deleted.
	CategoryID *int64    `gorm:"index" json:"category"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`

	Name        string `gorm:"size:255;index;not null" json:"name"`
	Description string `gorm:"size:1000" json:"description"`
	Image       string `gorm:"size:255" json:"image,omitempty"`

	// Exact two-decimal money value, no binary float at the boundary.
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	Stock           int  `gorm:"default:0" json:"stock"`
	IsInfiniteStock bool `gorm:"default:false" json:"is_infinite_stock"`
}

func (Product) TableName() string {
	return "products"
}

// ResolveOwnerID resolves through the parent shop; the Shop association
// must be loaded. Repositories that hand products to the authorizer
// preload it.
func (p *Product) ResolveOwnerID() int64 {
	if p.Shop == nil {
		return 0
	}
	return p.Shop.OwnerID
}
