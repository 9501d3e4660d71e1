package dto

import "time"

// ShopListReq query parameters of the shop listing.
//
// Owner is bound as a raw string: a value that does not parse to an id
// must produce an empty result set, not a 400. Status passes through
// unchecked for the same reason.
type ShopListReq struct {
	Owner  string `form:"owner"`
	Status string `form:"status"`
	Search string `form:"search"`
}

// ShopCreateReq shop creation payload. The owner is never read from the
// payload; it is forced to the authenticated caller server-side.
type ShopCreateReq struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Location    string   `json:"location" binding:"omitempty,max=255"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	IsPhysical  *bool    `json:"is_physical"`
	Status      string   `json:"status" binding:"omitempty,oneof=draft active"`
}

// ShopUpdateReq partial update payload; nil fields are left unchanged.
// Owner and created_at are immutable and have no counterpart here.
type ShopUpdateReq struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Location    *string  `json:"location" binding:"omitempty,max=255"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	IsPhysical  *bool    `json:"is_physical"`
	Status      *string  `json:"status" binding:"omitempty,oneof=draft active"`
}

// ShopResp serialized shop, products embedded
type ShopResp struct {
	ID            int64         `json:"id"`
	Owner         int64         `json:"owner"`
	OwnerUsername string        `json:"owner_username,omitempty"`
	Name          string        `json:"name"`
	Location      string        `json:"location"`
	Description   string        `json:"description"`
	Image         string        `json:"image,omitempty"`
	Latitude      *float64      `json:"latitude,omitempty"`
	Longitude     *float64      `json:"longitude,omitempty"`
	IsPhysical    bool          `json:"is_physical"`
	Status        string        `json:"status"`
	Products      []ProductResp `json:"products"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ShopListResp shop listing envelope
type ShopListResp struct {
	Count int        `json:"count"`
	Shops []ShopResp `json:"shops"`
}
