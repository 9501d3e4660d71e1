package service

import "errors"

// Service-level errors. Controllers map these onto HTTP statuses; a
// record excluded by visibility surfaces the same ErrNotFound as a
// record that does not exist, so a 404 leaks nothing about drafts.
var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("you do not have permission to perform this action")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUsernameExists     = errors.New("username already taken")

	ErrShopNotFound    = errors.New("referenced shop does not exist")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrUnpairedCoords  = errors.New("latitude and longitude must be supplied together")
	ErrCategoryMissing = errors.New("referenced category does not exist")
)
