package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"mercado_api_v1/internal/model"
)

func TestProductList_UnscopedExcludesInactiveShops(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewProductRepository(db)
	ana := seedUser(t, db, "ana")

	active := seedShop(t, db, ana.ID, "Active", model.ShopStatusActive)
	draft := seedShop(t, db, ana.ID, "Draft", model.ShopStatusDraft)
	seedProduct(t, db, active.ID, "Visible")
	seedProduct(t, db, draft.ID, "Hidden")

	products, err := repo.List(context.Background(), ProductFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(products) != 1 || products[0].Name != "Visible" {
		t.Errorf("unscoped listing has %d products, want only Visible", len(products))
	}
}

func TestProductList_ShopScopedIncludesInactive(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewProductRepository(db)
	ana := seedUser(t, db, "ana")

	draft := seedShop(t, db, ana.ID, "Draft", model.ShopStatusDraft)
	seedProduct(t, db, draft.ID, "DraftProduct")

	products, err := repo.List(context.Background(), ProductFilter{ShopID: draft.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	// Pinning a shop skips the shop-status restriction entirely.
	if len(products) != 1 || products[0].Name != "DraftProduct" {
		t.Errorf("scoped listing = %d products, want [DraftProduct]", len(products))
	}
}

func TestProductList_SearchMatchesNameAndDescription(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewProductRepository(db)
	ana := seedUser(t, db, "ana")
	shop := seedShop(t, db, ana.ID, "Shop", model.ShopStatusActive)

	byName := seedProduct(t, db, shop.ID, "Café molido")
	byDesc := seedProduct(t, db, shop.ID, "Taza")
	db.Model(byDesc).Update("description", "IDEAL para tu café caliente")
	seedProduct(t, db, shop.ID, "Plato")

	products, err := repo.List(context.Background(), ProductFilter{Search: "café"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("search returned %d products, want 2", len(products))
	}
	if products[0].ID != byName.ID || products[1].ID != byDesc.ID {
		t.Errorf("search returned wrong products")
	}
}

func TestProductGetByID_PreloadsShopAndCategory(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewProductRepository(db)
	ana := seedUser(t, db, "ana")
	shop := seedShop(t, db, ana.ID, "Shop", model.ShopStatusActive)

	category := &model.Category{Name: "Electrónica"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	product := &model.Product{
		ShopID:     shop.ID,
		CategoryID: &category.ID,
		Name:       "Radio",
		Price:      decimal.NewFromFloat(25.50),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	got, err := repo.GetByID(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("product not found")
	}
	if got.Shop == nil || got.Shop.OwnerID != ana.ID {
		t.Errorf("shop not preloaded")
	}
	if got.Category == nil || got.Category.Name != "Electrónica" {
		t.Errorf("category not preloaded")
	}
	if !got.Price.Equal(decimal.NewFromFloat(25.50)) {
		t.Errorf("price = %s, want 25.5", got.Price)
	}
}

func TestCategoryDelete_NullifiesProducts(t *testing.T) {
	db := setupRepoTestDB(t)
	catRepo := NewCategoryRepository(db)
	ana := seedUser(t, db, "ana")
	shop := seedShop(t, db, ana.ID, "Shop", model.ShopStatusActive)

	category := &model.Category{Name: "Juguetes"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	product := &model.Product{ShopID: shop.ID, CategoryID: &category.ID, Name: "Pelota", Price: decimal.NewFromInt(5)}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	if err := catRepo.Delete(context.Background(), category.ID); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	var got model.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("product must survive category deletion: %v", err)
	}
	if got.CategoryID != nil {
		t.Errorf("category_id = %d, want NULL", *got.CategoryID)
	}
}

func TestCategoryFirstOrCreate_Idempotent(t *testing.T) {
	db := setupRepoTestDB(t)
	catRepo := NewCategoryRepository(db)

	first, created, err := catRepo.FirstOrCreateByName(context.Background(), "Deportes")
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if !created {
		t.Error("first call should create")
	}

	second, created, err := catRepo.FirstOrCreateByName(context.Background(), "Deportes")
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if created {
		t.Error("second call should not create")
	}
	if first.ID != second.ID {
		t.Errorf("ids differ: %d vs %d", first.ID, second.ID)
	}
}
