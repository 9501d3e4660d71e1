package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mercado_api_v1/internal/model"
)

// ==================== Helpers ====================

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Category{}, &model.Shop{}, &model.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Password: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedShop(t *testing.T, db *gorm.DB, ownerID int64, name, status string) *model.Shop {
	t.Helper()
	shop := &model.Shop{OwnerID: ownerID, Name: name, Location: "Madrid", Status: status}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("seed shop %s: %v", name, err)
	}
	return shop
}

func seedProduct(t *testing.T, db *gorm.DB, shopID int64, name string) *model.Product {
	t.Helper()
	product := &model.Product{
		ShopID: shopID,
		Name:   name,
		Price:  decimal.NewFromFloat(9.99),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return product
}

func shopNames(shops []model.Shop) []string {
	names := make([]string, 0, len(shops))
	for _, s := range shops {
		names = append(names, s.Name)
	}
	return names
}

// ==================== Visibility ====================

func TestShopList_AnonymousExcludesDrafts(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	owner := seedUser(t, db, "ana")

	seedShop(t, db, owner.ID, "Visible", model.ShopStatusActive)
	seedShop(t, db, owner.ID, "Hidden", model.ShopStatusDraft)

	shops, err := repo.List(context.Background(), ShopFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(shops) != 1 || shops[0].Name != "Visible" {
		t.Errorf("anonymous listing = %v, want [Visible]", shopNames(shops))
	}
}

func TestShopList_OwnerSeesOwnDrafts(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	ana := seedUser(t, db, "ana")
	beto := seedUser(t, db, "beto")

	seedShop(t, db, ana.ID, "AnaDraft", model.ShopStatusDraft)
	seedShop(t, db, beto.ID, "BetoDraft", model.ShopStatusDraft)
	seedShop(t, db, beto.ID, "BetoActive", model.ShopStatusActive)

	shops, err := repo.List(context.Background(), ShopFilter{ViewerID: ana.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	// Ana sees her own draft plus Beto's active shop, never Beto's draft.
	if len(shops) != 2 {
		t.Fatalf("listing = %v, want 2 shops", shopNames(shops))
	}
	if shops[0].Name != "AnaDraft" || shops[1].Name != "BetoActive" {
		t.Errorf("listing = %v, want [AnaDraft BetoActive]", shopNames(shops))
	}
}

func TestShopList_OwnerParamNarrows(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	ana := seedUser(t, db, "ana")
	beto := seedUser(t, db, "beto")

	seedShop(t, db, ana.ID, "AnaShop", model.ShopStatusActive)
	seedShop(t, db, beto.ID, "BetoShop", model.ShopStatusActive)

	shops, err := repo.List(context.Background(), ShopFilter{OwnerID: beto.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(shops) != 1 || shops[0].Name != "BetoShop" {
		t.Errorf("listing = %v, want [BetoShop]", shopNames(shops))
	}
}

// The explicit status parameter supersedes the base visibility set, so a
// caller combining status=draft with an owner filter can enumerate
// another user's drafts. Upstream behaves this way; the test pins it so
// any change is a conscious one.
func TestShopList_DraftVisibleViaOwnerStatusFilter(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	ana := seedUser(t, db, "ana")
	beto := seedUser(t, db, "beto")

	seedShop(t, db, beto.ID, "BetoDraft", model.ShopStatusDraft)

	shops, err := repo.List(context.Background(), ShopFilter{
		ViewerID: ana.ID,
		OwnerID:  beto.ID,
		Status:   model.ShopStatusDraft,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(shops) != 1 || shops[0].Name != "BetoDraft" {
		t.Errorf("listing = %v, want [BetoDraft]", shopNames(shops))
	}
}

func TestShopList_OwnerRequestsOwnDrafts(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	ana := seedUser(t, db, "ana")

	seedShop(t, db, ana.ID, "Draft", model.ShopStatusDraft)
	seedShop(t, db, ana.ID, "Active", model.ShopStatusActive)

	shops, err := repo.List(context.Background(), ShopFilter{
		ViewerID: ana.ID,
		OwnerID:  ana.ID,
		Status:   model.ShopStatusDraft,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(shops) != 1 || shops[0].Name != "Draft" {
		t.Errorf("listing = %v, want [Draft]", shopNames(shops))
	}
}

func TestShopList_SearchCaseInsensitive(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	ana := seedUser(t, db, "ana")

	seedShop(t, db, ana.ID, "Panadería Central", model.ShopStatusActive)
	other := seedShop(t, db, ana.ID, "Ferretería", model.ShopStatusActive)
	db.Model(other).Update("description", "vendemos PAN artesanal")
	seedShop(t, db, ana.ID, "Florería", model.ShopStatusActive)

	shops, err := repo.List(context.Background(), ShopFilter{Search: "pan"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	// Matches name on one shop and description on the other.
	if len(shops) != 2 {
		t.Errorf("search listing = %v, want 2 matches", shopNames(shops))
	}
}

func TestShopList_UnknownOwnerYieldsEmptySet(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	ana := seedUser(t, db, "ana")

	seedShop(t, db, ana.ID, "Shop", model.ShopStatusActive)

	// -1 is the sentinel the service maps unparseable owner params to.
	shops, err := repo.List(context.Background(), ShopFilter{OwnerID: -1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(shops) != 0 {
		t.Errorf("listing = %v, want empty", shopNames(shops))
	}
}

func TestShopList_OrderedByID(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	ana := seedUser(t, db, "ana")

	seedShop(t, db, ana.ID, "First", model.ShopStatusActive)
	seedShop(t, db, ana.ID, "Second", model.ShopStatusActive)
	seedShop(t, db, ana.ID, "Third", model.ShopStatusActive)

	for i := 0; i < 3; i++ {
		shops, err := repo.List(context.Background(), ShopFilter{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for j := 1; j < len(shops); j++ {
			if shops[j-1].ID >= shops[j].ID {
				t.Fatalf("listing not in id order: %v", shopNames(shops))
			}
		}
	}
}

// ==================== Cascade & reset ====================

func TestShopDelete_CascadesToProducts(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	ana := seedUser(t, db, "ana")
	shop := seedShop(t, db, ana.ID, "Shop", model.ShopStatusActive)
	keep := seedShop(t, db, ana.ID, "Keep", model.ShopStatusActive)

	seedProduct(t, db, shop.ID, "P1")
	seedProduct(t, db, shop.ID, "P2")
	survivor := seedProduct(t, db, keep.ID, "P3")

	if err := repo.Delete(context.Background(), shop.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	db.Model(&model.Product{}).Where("shop_id = ?", shop.ID).Count(&count)
	if count != 0 {
		t.Errorf("products of deleted shop = %d, want 0", count)
	}

	var still model.Product
	if err := db.First(&still, survivor.ID).Error; err != nil {
		t.Errorf("product of untouched shop should survive: %v", err)
	}
}

func TestShopReset_AppliesTemplate(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewShopRepository(db)
	ana := seedUser(t, db, "ana")

	lat, lng := 40.4168, -3.7038
	shop := &model.Shop{
		OwnerID:     ana.ID,
		Name:        "Mi Tienda",
		Location:    "Madrid",
		Description: "una tienda física",
		Image:       "shops/mi-tienda_abc12345.jpg",
		Latitude:    &lat,
		Longitude:   &lng,
		IsPhysical:  true,
		Status:      model.ShopStatusActive,
	}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("seed shop: %v", err)
	}
	createdAt := shop.CreatedAt
	seedProduct(t, db, shop.ID, "P1")
	seedProduct(t, db, shop.ID, "P2")

	if err := repo.Reset(context.Background(), shop.ID); err != nil {
		t.Fatalf("reset: %v", err)
	}

	var count int64
	db.Model(&model.Product{}).Where("shop_id = ?", shop.ID).Count(&count)
	if count != 0 {
		t.Errorf("products after reset = %d, want 0", count)
	}

	var got model.Shop
	if err := db.First(&got, shop.ID).Error; err != nil {
		t.Fatalf("reload shop: %v", err)
	}
	if got.Status != model.ShopStatusDraft {
		t.Errorf("status = %s, want draft", got.Status)
	}
	if got.Location != model.ResetLocation {
		t.Errorf("location = %q, want %q", got.Location, model.ResetLocation)
	}
	if got.Description != "" || got.Image != "" {
		t.Errorf("description/image not blanked: %q %q", got.Description, got.Image)
	}
	if got.Latitude != nil || got.Longitude != nil {
		t.Errorf("coordinates not nulled")
	}
	if got.IsPhysical {
		t.Errorf("is_physical = true, want false")
	}
	if got.Name != "Mi Tienda" || got.OwnerID != ana.ID {
		t.Errorf("name/owner must be untouched, got %q owner %d", got.Name, got.OwnerID)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Errorf("created_at changed by reset")
	}
}
