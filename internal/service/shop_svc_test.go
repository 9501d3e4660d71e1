package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mercado_api_v1/internal/api/dto"
	"mercado_api_v1/internal/model"
	"mercado_api_v1/internal/repository"
)

// ==================== Helpers ====================

// stubStorage records uploads; set fail to simulate the backend being down.
type stubStorage struct {
	fail    bool
	uploads []string
	deletes []string
}

func (s *stubStorage) Upload(_ context.Context, _ []byte, key string, _ string) (string, error) {
	if s.fail {
		return "", errors.New("storage unavailable")
	}
	s.uploads = append(s.uploads, key)
	return "https://cdn.example.com/" + key, nil
}

func (s *stubStorage) Delete(_ context.Context, url string) error {
	s.deletes = append(s.deletes, url)
	return nil
}

type testEnv struct {
	db         *gorm.DB
	storage    *stubStorage
	users      *UserService
	shops      *ShopService
	products   *ProductService
	categories *CategoryService
}

func setupServiceTest(t *testing.T) *testEnv {
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

	storage := &stubStorage{}
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	return &testEnv{
		db:         db,
		storage:    storage,
		users:      NewUserService(userRepo, storage),
		shops:      NewShopService(shopRepo, storage),
		products:   NewProductService(productRepo, shopRepo, categoryRepo, storage),
		categories: NewCategoryService(categoryRepo),
	}
}

func (e *testEnv) registerUser(t *testing.T, username string) int64 {
	t.Helper()
	info, err := e.users.Register(context.Background(), &dto.RegisterRequest{
		Username: username,
		Password: "contraseña123",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return info.ID
}

func (e *testEnv) createShop(t *testing.T, ownerID int64, name, status string) *dto.ShopResp {
	t.Helper()
	resp, err := e.shops.CreateShop(context.Background(), ownerID, &dto.ShopCreateReq{
		Name:     name,
		Location: "Madrid",
		Status:   status,
	})
	if err != nil {
		t.Fatalf("create shop %s: %v", name, err)
	}
	return resp
}

// ==================== Creation ====================

func TestCreateShop_AnonymousRejected(t *testing.T) {
	env := setupServiceTest(t)

	_, err := env.shops.CreateShop(context.Background(), 0, &dto.ShopCreateReq{Name: "Tienda"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestCreateShop_Defaults(t *testing.T) {
	env := setupServiceTest(t)
	ana := env.registerUser(t, "ana")

	resp := env.createShop(t, ana, "Tienda", "")
	if resp.Status != model.ShopStatusActive {
		t.Errorf("status = %s, want active", resp.Status)
	}
	if !resp.IsPhysical {
		t.Errorf("is_physical = false, want default true")
	}
	if resp.Owner != ana {
		t.Errorf("owner = %d, want %d", resp.Owner, ana)
	}
}

func TestCreateShop_UnpairedCoordinatesRejected(t *testing.T) {
	env := setupServiceTest(t)
	ana := env.registerUser(t, "ana")

	lat := 40.4168
	_, err := env.shops.CreateShop(context.Background(), ana, &dto.ShopCreateReq{
		Name:     "Tienda",
		Latitude: &lat,
	})
	if !errors.Is(err, ErrUnpairedCoords) {
		t.Errorf("err = %v, want ErrUnpairedCoords", err)
	}
}

// ==================== Visibility ====================

func TestGetShop_DraftHiddenFromOthers(t *testing.T) {
	env := setupServiceTest(t)
	ana := env.registerUser(t, "ana")
	beto := env.registerUser(t, "beto")
	draft := env.createShop(t, ana, "Borrador", model.ShopStatusDraft)

	if _, err := env.shops.GetShop(context.Background(), ana, draft.ID); err != nil {
		t.Errorf("owner fetch: %v, want nil", err)
	}
	if _, err := env.shops.GetShop(context.Background(), beto, draft.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("other user fetch err = %v, want ErrNotFound", err)
	}
	if _, err := env.shops.GetShop(context.Background(), 0, draft.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("anonymous fetch err = %v, want ErrNotFound", err)
	}
}

// Walks a shop through active and draft and checks what a second user's
// listing shows at each step.
func TestListShops_StatusTransitionScenario(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()
	ana := env.registerUser(t, "ana")
	beto := env.registerUser(t, "beto")
	shop := env.createShop(t, ana, "Tienda", model.ShopStatusActive)

	listFor := func(viewer int64) int {
		resp, err := env.shops.ListShops(ctx, viewer, dto.ShopListReq{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		return resp.Count
	}

	if n := listFor(beto); n != 1 {
		t.Fatalf("active shop invisible to beto, count = %d", n)
	}

	draft := model.ShopStatusDraft
	if _, err := env.shops.UpdateShop(ctx, ana, shop.ID, &dto.ShopUpdateReq{Status: &draft}); err != nil {
		t.Fatalf("demote to draft: %v", err)
	}

	if n := listFor(beto); n != 0 {
		t.Errorf("draft visible to beto, count = %d", n)
	}
	if n := listFor(ana); n != 1 {
		t.Errorf("draft invisible to its owner, count = %d", n)
	}
	if n := listFor(0); n != 0 {
		t.Errorf("draft visible anonymously, count = %d", n)
	}
}

func TestListShops_MalformedOwnerParamYieldsEmpty(t *testing.T) {
	env := setupServiceTest(t)
	ana := env.registerUser(t, "ana")
	env.createShop(t, ana, "Tienda", model.ShopStatusActive)

	resp, err := env.shops.ListShops(context.Background(), 0, dto.ShopListReq{Owner: "abc"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("count = %d, want 0 for unparseable owner", resp.Count)
	}
}

// ==================== Mutation authorization ====================

func TestUpdateShop_NonOwnerForbidden(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()
	ana := env.registerUser(t, "ana")
	beto := env.registerUser(t, "beto")
	shop := env.createShop(t, ana, "Tienda", model.ShopStatusActive)

	name := "Robada"
	_, err := env.shops.UpdateShop(ctx, beto, shop.ID, &dto.ShopUpdateReq{Name: &name})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	got, err := env.shops.GetShop(ctx, ana, shop.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Name != "Tienda" {
		t.Errorf("name mutated to %q by forbidden update", got.Name)
	}
}

func TestDeleteShop_AnonymousUnauthorized(t *testing.T) {
	env := setupServiceTest(t)
	ana := env.registerUser(t, "ana")
	shop := env.createShop(t, ana, "Tienda", model.ShopStatusActive)

	if err := env.shops.DeleteShop(context.Background(), 0, shop.ID); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestDeleteShop_MissingShop(t *testing.T) {
	env := setupServiceTest(t)
	ana := env.registerUser(t, "ana")

	if err := env.shops.DeleteShop(context.Background(), ana, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// ==================== Reset ====================

func TestResetShop_OwnerOnly(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()
	ana := env.registerUser(t, "ana")
	beto := env.registerUser(t, "beto")
	shop := env.createShop(t, ana, "Tienda", model.ShopStatusActive)

	if _, err := env.shops.ResetShop(ctx, beto, shop.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-owner reset err = %v, want ErrForbidden", err)
	}

	got, err := env.shops.GetShop(ctx, ana, shop.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != model.ShopStatusActive || got.Location != "Madrid" {
		t.Errorf("forbidden reset mutated the shop: %+v", got)
	}
}

func TestResetShop_Template(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()
	ana := env.registerUser(t, "ana")
	shop := env.createShop(t, ana, "Tienda", model.ShopStatusActive)

	resp, err := env.shops.ResetShop(ctx, ana, shop.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if resp.Status != model.ShopStatusDraft {
		t.Errorf("status = %s, want draft", resp.Status)
	}
	if resp.Location != model.ResetLocation {
		t.Errorf("location = %q, want %q", resp.Location, model.ResetLocation)
	}
	if resp.IsPhysical {
		t.Errorf("is_physical should be false after reset")
	}
	if resp.Name != "Tienda" {
		t.Errorf("name = %q, reset must not rename", resp.Name)
	}
}

// ==================== Image upload ====================

func TestUploadShopImage_StoresKeyOnShop(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()
	ana := env.registerUser(t, "ana")
	shop := env.createShop(t, ana, "Mi Tienda", model.ShopStatusActive)

	resp, err := env.shops.UploadImage(ctx, ana, shop.ID, []byte("png"), "logo.png", "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.Image == "" {
		t.Fatal("image not recorded")
	}
	if len(env.storage.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(env.storage.uploads))
	}
}

func TestUploadShopImage_StorageFailureLeavesRecord(t *testing.T) {
	env := setupServiceTest(t)
	ctx := context.Background()
	ana := env.registerUser(t, "ana")
	shop := env.createShop(t, ana, "Tienda", model.ShopStatusActive)

	env.storage.fail = true
	if _, err := env.shops.UploadImage(ctx, ana, shop.ID, []byte("x"), "a.png", "image/png"); err == nil {
		t.Fatal("expected upload error")
	}

	got, err := env.shops.GetShop(ctx, ana, shop.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Image != "" {
		t.Errorf("image = %q after failed upload, want empty", got.Image)
	}
}

func TestParseIDParam(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{"", 0},
		{"7", 7},
		{"abc", -1},
		{"1.5", -1},
		{"-3", -1},
	}
	for _, c := range cases {
		if got := parseIDParam(c.raw); got != c.want {
			t.Errorf("parseIDParam(%q) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestListShops_CountMatchesLen(t *testing.T) {
	env := setupServiceTest(t)
	ana := env.registerUser(t, "ana")
	for i := 0; i < 3; i++ {
		env.createShop(t, ana, fmt.Sprintf("Tienda %d", i), model.ShopStatusActive)
	}

	resp, err := env.shops.ListShops(context.Background(), 0, dto.ShopListReq{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Count != len(resp.Shops) || resp.Count != 3 {
		t.Errorf("count = %d, shops = %d, want 3", resp.Count, len(resp.Shops))
	}
}
