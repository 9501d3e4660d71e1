package service

import (
	"mercado_api_v1/internal/model"
)

// AuthorizeMutation is the single write-path gate. Reads never pass
// through here; the visibility filter has already decided what a caller
// may see.
//
// callerID 0 means anonymous. The target resolves its own owner: a shop
// directly, a product through its parent shop.
func AuthorizeMutation(callerID int64, target model.Ownable) error {
	if callerID == 0 {
		return ErrUnauthorized
	}
	if target.ResolveOwnerID() != callerID {
		return ErrForbidden
	}
	return nil
}
