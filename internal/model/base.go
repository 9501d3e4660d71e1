package model

import (
	"time"
)

// BaseModel common columns for every table.
// CreatedAt is set once at insert and never rewritten by update paths:
// all updates go through field maps that exclude it.
type BaseModel struct {
	ID        int64     `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ownable is implemented by every entity that can be the target of a
// write operation. Ownership is resolved explicitly instead of probing
// for an owner field at runtime: a Shop carries its owner directly, a
// Product resolves through its parent Shop.
type Ownable interface {
	ResolveOwnerID() int64
}
