package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ozkkadir/depo-yonetim-sistemi/models"
	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
	"github.com/shopspring/decimal"
)

func TestCreateProduct_DefaultsAndOwnership(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(t)

	admin := mustCreateUser(t, s, "admin", models.RoleAdmin)
	dealer := mustCreateUser(t, s, "bayi1", models.RoleDealer)
	beyaz, err := s.refs.FindOrCreateColor(ctx, "Beyaz")
	if err != nil {
		t.Fatalf("FindOrCreateColor: %v", err)
	}

	product, err := s.registry.CreateProduct(ctx, admin, &models.NewProduct{
		Code: "716CF00501", Name: "S75 SELENİT KASA PROFİLİ",
		Variants: []models.NewVariant{
			{ColorId: beyaz, Quantity: decimal.NewFromInt(845), CostPrice: decimal.RequireFromString("110.50")},
		},
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.PackageQuantity != 1 {
		t.Fatalf("package quantity = %d, want default 1", product.PackageQuantity)
	}
	if !product.UnitLength.Equal(decimal.RequireFromString("6.00")) {
		t.Fatalf("unit length = %s, want default 6.00", product.UnitLength)
	}
	if product.ProfileType != models.DefaultProfileType {
		t.Fatalf("profile type = %q, want %q", product.ProfileType, models.DefaultProfileType)
	}
	if product.IsMaster == nil || !*product.IsMaster {
		t.Fatalf("admin-created product is not a master row")
	}

	// owner gets an entitlement in the same transaction
	visible, err := s.entitlements.IsVisible(ctx, admin.ID, product.ID)
	if err != nil {
		t.Fatalf("IsVisible: %v", err)
	}
	if !visible {
		t.Fatalf("creator has no entitlement on own product")
	}

	var record models.InventoryRecord
	if err := s.db.Where("user_id = ? AND product_id = ?", admin.ID, product.ID).First(&record).Error; err != nil {
		t.Fatalf("fetch opening variant: %v", err)
	}
	if record.Unit != models.DefaultUnit {
		t.Fatalf("variant unit = %q, want default %q", record.Unit, models.DefaultUnit)
	}
	if !record.ListPrice.Equal(record.CostPrice) {
		t.Fatalf("variant list price %s != cost %s; want list to default to cost", record.ListPrice, record.CostPrice)
	}

	dealerOwned, err := s.registry.CreateProduct(ctx, dealer, &models.NewProduct{Code: "D-1", Name: "Dealer Product"})
	if err != nil {
		t.Fatalf("CreateProduct dealer: %v", err)
	}
	if dealerOwned.IsMaster == nil || *dealerOwned.IsMaster {
		t.Fatalf("dealer-created product must not be a master row")
	}
}

func TestCreateProduct_DuplicateCode(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(t)
	admin := mustCreateUser(t, s, "admin", models.RoleAdmin)

	if _, err := s.registry.CreateProduct(ctx, admin, &models.NewProduct{Code: "DUP", Name: "First"}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	_, err := s.registry.CreateProduct(ctx, admin, &models.NewProduct{Code: "DUP", Name: "Second"})
	if !errors.Is(err, utils.ErrorDuplicateRecord) {
		t.Fatalf("duplicate code: got %v, want duplicate record", err)
	}
}

// An unknown series id fails the whole create; no half-linked product
// may remain.
func TestCreateProduct_UnknownSeriesRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(t)
	admin := mustCreateUser(t, s, "admin", models.RoleAdmin)

	_, err := s.registry.CreateProduct(ctx, admin, &models.NewProduct{
		Code: "BAD-SERIES", Name: "Bad Series", SeriesIds: []int{777},
	})
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("unknown series: got %v, want record not found", err)
	}
	if c := countRows(t, s.db, &models.Product{}); c != 0 {
		t.Fatalf("products after rollback = %d, want 0", c)
	}
	if c := countRows(t, s.db, &models.DealerProduct{}); c != 0 {
		t.Fatalf("entitlements after rollback = %d, want 0", c)
	}
}

func TestCreateProduct_InvalidVariants(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(t)
	admin := mustCreateUser(t, s, "admin", models.RoleAdmin)

	cases := []models.NewProduct{
		{Code: "V-1", Name: "No Color", Variants: []models.NewVariant{{ColorId: 0}}},
		{Code: "V-2", Name: "Negative", Variants: []models.NewVariant{{ColorId: 1, Quantity: decimal.NewFromInt(-1)}}},
		{Code: "V-3", Name: "Dup Color", Variants: []models.NewVariant{{ColorId: 1}, {ColorId: 1}}},
	}
	for _, input := range cases {
		input := input
		if _, err := s.registry.CreateProduct(ctx, admin, &input); !errors.Is(err, utils.ErrorInvalidInput) {
			t.Fatalf("%s: got %v, want invalid input", input.Code, err)
		}
	}
}

// Regression: deleting a product must take its series links,
// entitlements and every dealer's stock rows with it, and leave other
// products untouched.
func TestDeleteProduct_Cascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(t)

	admin := mustCreateUser(t, s, "admin", models.RoleAdmin)
	dealer := mustCreateUser(t, s, "bayi1", models.RoleDealer)
	firatpen, err := s.refs.FindOrCreateBrand(ctx, "Fıratpen")
	if err != nil {
		t.Fatalf("FindOrCreateBrand: %v", err)
	}
	selenit, err := s.refs.FindOrCreateSeries(ctx, firatpen, "Selenit 75")
	if err != nil {
		t.Fatalf("FindOrCreateSeries: %v", err)
	}
	beyaz, err := s.refs.FindOrCreateColor(ctx, "Beyaz")
	if err != nil {
		t.Fatalf("FindOrCreateColor: %v", err)
	}

	doomed, err := s.registry.CreateProduct(ctx, admin, &models.NewProduct{
		Code: "DOOMED", Name: "Doomed", BrandId: firatpen, SeriesIds: []int{selenit},
	})
	if err != nil {
		t.Fatalf("CreateProduct doomed: %v", err)
	}
	survivor, err := s.registry.CreateProduct(ctx, admin, &models.NewProduct{
		Code: "SURVIVOR", Name: "Survivor", SeriesIds: []int{selenit},
		Variants: []models.NewVariant{{ColorId: beyaz, Quantity: decimal.NewFromInt(3)}},
	})
	if err != nil {
		t.Fatalf("CreateProduct survivor: %v", err)
	}
	if err := s.entitlements.Grant(ctx, dealer.ID, doomed.ID); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	stock := models.InventoryRecord{UserId: dealer.ID, ProductId: doomed.ID, ColorId: beyaz, Quantity: decimal.NewFromInt(7), Unit: models.DefaultUnit}
	if err := s.db.Create(&stock).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	if err := s.registry.DeleteProduct(ctx, doomed.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	if _, err := s.registry.GetProduct(ctx, doomed.ID); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("deleted product still resolves: %v", err)
	}
	var count int64
	if err := s.db.Model(&models.ProductSeriesMap{}).Where("product_id = ?", doomed.ID).Count(&count).Error; err != nil || count != 0 {
		t.Fatalf("series links left behind: count=%d err=%v", count, err)
	}
	if err := s.db.Model(&models.DealerProduct{}).Where("product_id = ?", doomed.ID).Count(&count).Error; err != nil || count != 0 {
		t.Fatalf("entitlements left behind: count=%d err=%v", count, err)
	}
	if err := s.db.Model(&models.InventoryRecord{}).Where("product_id = ?", doomed.ID).Count(&count).Error; err != nil || count != 0 {
		t.Fatalf("inventory left behind: count=%d err=%v", count, err)
	}

	// survivor untouched
	if _, err := s.registry.GetProduct(ctx, survivor.ID); err != nil {
		t.Fatalf("survivor gone after sibling delete: %v", err)
	}
	if err := s.db.Model(&models.InventoryRecord{}).Where("product_id = ?", survivor.ID).Count(&count).Error; err != nil || count != 1 {
		t.Fatalf("survivor inventory = %d, want 1 (err=%v)", count, err)
	}

	if err := s.registry.DeleteProduct(ctx, doomed.ID); !errors.Is(err, utils.ErrorRecordNotFound) {
		t.Fatalf("double delete: got %v, want record not found", err)
	}
}
