package model

// User marketplace account. A user owns zero or more shops.
type User struct {
	BaseModel
	Username string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash
	Email    string `gorm:"size:100" json:"email,omitempty"`
	Bio      string `gorm:"size:500" json:"bio,omitempty"`
	Avatar   string `gorm:"size:255" json:"avatar,omitempty"`

	// Deleting a user removes their shops (and transitively their products).
	Shops []Shop `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}
