package model

// Shop status values
const (
	ShopStatusDraft  = "draft"  // only visible to the owner
	ShopStatusActive = "active" // publicly listed
)

// ResetLocation the location a shop reverts to after a reset.
const ResetLocation = "Tienda en línea"

type Shop struct {
	BaseModel

	// Owner is set exactly once at creation, from the authenticated
	// caller. Never taken from a request payload.
	OwnerID int64 `gorm:"index;not null" json:"owner"`
	Owner   *User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	Name        string `gorm:"size:255;index;not null" json:"name"`
	Location    string `gorm:"size:255" json:"location"`
	Description string `gorm:"size:2000" json:"description"`
	Image       string `gorm:"size:255" json:"image,omitempty"`

	// Paired coordinates, both set or both null.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	IsPhysical bool   `gorm:"default:true" json:"is_physical"`
	Status     string `gorm:"size:10;index;default:'active'" json:"status"`

	// Deleting a shop deletes its products.
	Products []Product `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

func (Shop) TableName() string {
	return "shops"
}

func (s *Shop) ResolveOwnerID() int64 {
	return s.OwnerID
}
