// seed-dev provisions a development database: the admin console user,
// a demo dealer, the stock reference data (brands, categories, colors,
// series) and a handful of master profile products with the demo
// dealer's entitlements and opening stock.
//
// Usage (from backend directory):
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-dev
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ozkkadir/depo-yonetim-sistemi/config"
	"github.com/ozkkadir/depo-yonetim-sistemi/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	ctx := context.Background()

	db, err := config.ConnectDatabase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect database: %v. Set DB_* env vars.\n", err)
		os.Exit(1)
	}
	if err := models.MigrateTable(db); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate: %v\n", err)
		os.Exit(1)
	}

	admin := seedUser(ctx, db, "admin", models.RoleAdmin, "Sistem Yöneticisi")
	dealer := seedUser(ctx, db, "bayi1", models.RoleDealer, "Fıratpen Yetkili Bayi")

	cache := config.NewCache(nil)
	refs := models.NewReferenceStore(db, cache)
	registry := models.NewProductRegistry(db)
	entitlements := models.NewEntitlementIndex(db)

	for _, name := range []string{"Fıratpen", "Albert Genau", "Winsa", "Asaş"} {
		_, err := refs.FindOrCreateBrand(ctx, name)
		exitOn(err)
	}
	for _, name := range []string{models.DefaultCategoryName, "Aksesuar", "Destek Sacı", "Conta"} {
		_, err := refs.FindOrCreateCategory(ctx, name)
		exitOn(err)
	}
	seedColor(ctx, db, models.DefaultColorName, "#FFFFFF")
	seedColor(ctx, db, "Altınmeşe", "#D2691E")
	seedColor(ctx, db, "Antrasit", "#333333")
	seedColor(ctx, db, "Maun", "#8B4513")

	firatpen, err := refs.FindOrCreateBrand(ctx, "Fıratpen")
	exitOn(err)
	albert, err := refs.FindOrCreateBrand(ctx, "Albert Genau")
	exitOn(err)
	profil, err := refs.FindOrCreateCategory(ctx, models.DefaultCategoryName)
	exitOn(err)
	beyaz, err := refs.FindOrCreateColor(ctx, models.DefaultColorName)
	exitOn(err)

	selenit, err := refs.FindOrCreateSeries(ctx, firatpen, "Selenit 75")
	exitOn(err)
	_, err = refs.FindOrCreateSeries(ctx, firatpen, "Zenia Slide")
	exitOn(err)
	_, err = refs.FindOrCreateSeries(ctx, firatpen, "Garnet 70")
	exitOn(err)
	_, err = refs.FindOrCreateSeries(ctx, albert, "Statü")
	exitOn(err)

	samples := []models.NewProduct{
		{
			Code: "716CF00501", Name: "S75 SELENİT KASA PROFİLİ",
			CategoryId: profil, BrandId: firatpen, ProfileType: "Kasa",
			PackageQuantity: 4, Weight: decimal.RequireFromString("1.450"),
			SeriesIds: []int{selenit},
		},
		{
			Code: "7193F00102L", Name: "S75 SELENİT DÜZ KANAT",
			CategoryId: profil, BrandId: firatpen, ProfileType: "Kanat",
			PackageQuantity: 5, Weight: decimal.RequireFromString("1.600"),
			SeriesIds: []int{selenit},
		},
		{
			Code: "716CF00504", Name: "S75 SELENİT ORTA KAYIT",
			CategoryId: profil, BrandId: firatpen, ProfileType: "Dikey",
			PackageQuantity: 4, Weight: decimal.RequireFromString("1.550"),
			SeriesIds: []int{selenit},
		},
	}
	stocks := []models.NewVariant{
		{ColorId: beyaz, Quantity: decimal.NewFromInt(845), Unit: models.DefaultUnit, CostPrice: decimal.RequireFromString("110.50"), ListPrice: decimal.RequireFromString("173.56")},
		{ColorId: beyaz, Quantity: decimal.NewFromInt(650), Unit: models.DefaultUnit, CostPrice: decimal.RequireFromString("130.00"), ListPrice: decimal.RequireFromString("215.46")},
		{},
	}

	for i, sample := range samples {
		var existing models.Product
		err := db.WithContext(ctx).Where("code = ?", sample.Code).First(&existing).Error
		if err == nil {
			continue // already seeded
		}
		if err != gorm.ErrRecordNotFound {
			exitOn(err)
		}
		product, err := registry.CreateProduct(ctx, admin, &sample)
		exitOn(err)
		exitOn(entitlements.Grant(ctx, dealer.ID, product.ID))

		stock := stocks[i]
		if stock.ColorId == 0 {
			continue
		}
		record := models.InventoryRecord{
			UserId:    dealer.ID,
			ProductId: product.ID,
			ColorId:   stock.ColorId,
			Quantity:  stock.Quantity,
			Unit:      stock.Unit,
			CostPrice: stock.CostPrice,
			ListPrice: stock.ListPrice,
		}
		exitOn(db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error)
	}

	fmt.Println("seed-dev: done")
}

func seedUser(ctx context.Context, db *gorm.DB, username, role, company string) *models.User {
	var user models.User
	err := db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err == nil {
		return &user
	}
	if err != gorm.ErrRecordNotFound {
		exitOn(err)
	}
	user = models.User{Username: username, Role: role, CompanyName: company}
	exitOn(db.WithContext(ctx).Create(&user).Error)
	return &user
}

func seedColor(ctx context.Context, db *gorm.DB, name, hexCode string) {
	color := models.Color{Name: name, HexCode: hexCode}
	exitOn(db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&color).Error)
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed-dev: %v\n", err)
		os.Exit(1)
	}
}
