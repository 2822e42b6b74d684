package models_test

import (
	"context"
	"testing"

	"github.com/ozkkadir/depo-yonetim-sistemi/models"
	"github.com/shopspring/decimal"
)

// Regression: one dealer's listing must never leak another dealer's
// stock rows, even when both stock the same shared product.
func TestListProducts_VariantsAreTenantScoped(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(t)

	admin := mustCreateUser(t, s, "admin", models.RoleAdmin)
	bayi1 := mustCreateUser(t, s, "bayi1", models.RoleDealer)
	bayi2 := mustCreateUser(t, s, "bayi2", models.RoleDealer)

	beyaz, err := s.refs.FindOrCreateColor(ctx, "Beyaz")
	if err != nil {
		t.Fatalf("FindOrCreateColor: %v", err)
	}
	antrasit, err := s.refs.FindOrCreateColor(ctx, "Antrasit")
	if err != nil {
		t.Fatalf("FindOrCreateColor: %v", err)
	}

	shared, err := s.registry.CreateProduct(ctx, admin, &models.NewProduct{Code: "SHARED", Name: "Shared Profile"})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	for _, dealer := range []*models.User{bayi1, bayi2} {
		if err := s.entitlements.Grant(ctx, dealer.ID, shared.ID); err != nil {
			t.Fatalf("Grant: %v", err)
		}
	}

	seed := []models.InventoryRecord{
		{UserId: bayi1.ID, ProductId: shared.ID, ColorId: beyaz, Quantity: decimal.NewFromInt(100), Unit: models.DefaultUnit},
		{UserId: bayi1.ID, ProductId: shared.ID, ColorId: antrasit, Quantity: decimal.NewFromInt(30), Unit: models.DefaultUnit},
		{UserId: bayi2.ID, ProductId: shared.ID, ColorId: beyaz, Quantity: decimal.NewFromInt(999), Unit: models.DefaultUnit},
	}
	for i := range seed {
		if err := s.db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed inventory: %v", err)
		}
	}

	views, err := s.catalog.ListProducts(ctx, bayi1.ID)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("bayi1 catalog size = %d, want 1", len(views))
	}
	if len(views[0].Variants) != 2 {
		t.Fatalf("bayi1 variants = %d, want 2", len(views[0].Variants))
	}
	for _, variant := range views[0].Variants {
		if variant.Quantity.Equal(decimal.NewFromInt(999)) {
			t.Fatalf("bayi1 catalog contains bayi2's stock row")
		}
	}
}

// Dealers see entitled products plus their own creations; nothing else.
// Admins see the whole catalog.
func TestListProducts_VisibilityRule(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(t)

	admin := mustCreateUser(t, s, "admin", models.RoleAdmin)
	bayi1 := mustCreateUser(t, s, "bayi1", models.RoleDealer)
	bayi2 := mustCreateUser(t, s, "bayi2", models.RoleDealer)

	master, err := s.registry.CreateProduct(ctx, admin, &models.NewProduct{Code: "MASTER", Name: "Master Profile"})
	if err != nil {
		t.Fatalf("CreateProduct master: %v", err)
	}
	own, err := s.registry.CreateProduct(ctx, bayi1, &models.NewProduct{Code: "OWN", Name: "Dealer Own"})
	if err != nil {
		t.Fatalf("CreateProduct own: %v", err)
	}
	if err := s.entitlements.Grant(ctx, bayi1.ID, master.ID); err != nil {
		t.Fatalf("Grant: %v", err)
	}

	views, err := s.catalog.ListProducts(ctx, bayi1.ID)
	if err != nil {
		t.Fatalf("ListProducts bayi1: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("bayi1 catalog size = %d, want 2", len(views))
	}
	// newest first
	if views[0].ID != own.ID || views[1].ID != master.ID {
		t.Fatalf("bayi1 catalog order = [%d %d], want [%d %d]", views[0].ID, views[1].ID, own.ID, master.ID)
	}

	views, err = s.catalog.ListProducts(ctx, bayi2.ID)
	if err != nil {
		t.Fatalf("ListProducts bayi2: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("bayi2 catalog size = %d, want 0", len(views))
	}

	views, err = s.catalog.ListProducts(ctx, admin.ID)
	if err != nil {
		t.Fatalf("ListProducts admin: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("admin catalog size = %d, want 2", len(views))
	}
}

// Regression: products with no series or stock must come back with
// empty slices, never nulls, and with their brand/category names and
// series resolved when present.
func TestListProducts_ShapeAndEmptyGroups(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(t)

	admin := mustCreateUser(t, s, "admin", models.RoleAdmin)

	firatpen, err := s.refs.FindOrCreateBrand(ctx, "Fıratpen")
	if err != nil {
		t.Fatalf("FindOrCreateBrand: %v", err)
	}
	profil, err := s.refs.FindOrCreateCategory(ctx, "Profil")
	if err != nil {
		t.Fatalf("FindOrCreateCategory: %v", err)
	}
	selenit, err := s.refs.FindOrCreateSeries(ctx, firatpen, "Selenit 75")
	if err != nil {
		t.Fatalf("FindOrCreateSeries: %v", err)
	}

	_, err = s.registry.CreateProduct(ctx, admin, &models.NewProduct{
		Code: "FULL", Name: "Full Profile",
		BrandId: firatpen, CategoryId: profil, SeriesIds: []int{selenit},
	})
	if err != nil {
		t.Fatalf("CreateProduct full: %v", err)
	}
	_, err = s.registry.CreateProduct(ctx, admin, &models.NewProduct{Code: "BARE", Name: "Bare Profile"})
	if err != nil {
		t.Fatalf("CreateProduct bare: %v", err)
	}

	views, err := s.catalog.ListProducts(ctx, admin.ID)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("catalog size = %d, want 2", len(views))
	}
	byCode := map[string]*models.ProductView{}
	for _, view := range views {
		byCode[view.Code] = view
	}

	full := byCode["FULL"]
	if full.BrandName != "Fıratpen" || full.CategoryName != "Profil" {
		t.Fatalf("full names = (%q, %q), want (Fıratpen, Profil)", full.BrandName, full.CategoryName)
	}
	if len(full.Series) != 1 || full.Series[0] != "Selenit 75" {
		t.Fatalf("full series = %v, want [Selenit 75]", full.Series)
	}

	bare := byCode["BARE"]
	if bare.Series == nil || bare.Variants == nil {
		t.Fatalf("bare product has nil groups; want empty slices")
	}
	if len(bare.Series) != 0 || len(bare.Variants) != 0 {
		t.Fatalf("bare groups = (%d, %d), want (0, 0)", len(bare.Series), len(bare.Variants))
	}
}

// An id that resolves to no user yields an empty catalog, not an error.
func TestListProducts_UnknownRequester(t *testing.T) {
	s := newTestStores(t)
	views, err := s.catalog.ListProducts(context.Background(), 424242)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Fatalf("unknown requester catalog = %v, want empty slice", views)
	}
}
