package model

// Category product grouping. Created by the seed command or an
// administrator; deleting one nullifies the reference on its products,
// it never cascades.
type Category struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
