package models

import (
	"context"
	"time"

	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultProfileType  = "Standart"
	DefaultCategoryName = "Profil"
)

// Product is the catalog's central entity, shared across dealers.
// Code is the natural key the reconciler dedupes on; the schema
// enforces its uniqueness so resolve-by-code can be a single atomic
// upsert instead of a check-then-act pair.
type Product struct {
	ID                  int             `gorm:"primary_key" json:"id"`
	Code                string          `gorm:"uniqueIndex;size:50;not null" json:"code" binding:"required"`
	Name                string          `gorm:"size:150;not null" json:"name" binding:"required"`
	CategoryId          int             `gorm:"index;not null;default:0" json:"category_id"`
	BrandId             int             `gorm:"index;not null;default:0" json:"brand_id"`
	ImageUrl            string          `gorm:"type:text" json:"image_url"`
	TechnicalDrawingUrl string          `gorm:"type:text" json:"technical_drawing_url"`
	PackageQuantity     int             `gorm:"not null;default:1" json:"package_quantity"`
	UnitLength          decimal.Decimal `gorm:"type:decimal(5,2);default:6.00" json:"unit_length"`
	Weight              decimal.Decimal `gorm:"type:decimal(10,3);default:0" json:"weight"`
	ProfileType         string          `gorm:"size:20;not null;default:Standart" json:"profile_type"`
	IsMaster            *bool           `gorm:"not null;default:false" json:"is_master"`
	CreatedBy           int             `gorm:"index;not null" json:"created_by"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// ProductSeriesMap links a product to the series it belongs to.
type ProductSeriesMap struct {
	ID        int `gorm:"primary_key" json:"id"`
	ProductId int `gorm:"uniqueIndex:idx_product_series;not null" json:"product_id"`
	SeriesId  int `gorm:"uniqueIndex:idx_product_series;not null" json:"series_id"`
}

type NewProduct struct {
	Code                string             `json:"code" binding:"required"`
	Name                string             `json:"name" binding:"required"`
	CategoryId          int                `json:"category_id"`
	BrandId             int                `json:"brand_id"`
	ImageUrl            string             `json:"image_url"`
	TechnicalDrawingUrl string             `json:"technical_drawing_url"`
	PackageQuantity     int                `json:"package_quantity"`
	UnitLength          decimal.Decimal    `json:"unit_length"`
	Weight              decimal.Decimal    `json:"weight"`
	ProfileType         string             `json:"profile_type"`
	SeriesIds           []int              `json:"series_ids"`
	Variants            []NewVariant       `json:"variants"`
}

type NewVariant struct {
	ColorId   int             `json:"color_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	CostPrice decimal.Decimal `json:"cost_price"`
	ListPrice decimal.Decimal `json:"list_price"`
}

func (input *NewProduct) validate() error {
	if input.Code == "" || input.Name == "" {
		return utils.ErrorInvalidInput
	}
	if input.PackageQuantity < 0 || input.UnitLength.IsNegative() || input.Weight.IsNegative() {
		return utils.ErrorInvalidInput
	}
	seen := make(map[int]struct{}, len(input.Variants))
	for _, variant := range input.Variants {
		if variant.ColorId <= 0 {
			return utils.ErrorInvalidInput
		}
		if variant.Quantity.IsNegative() || variant.CostPrice.IsNegative() || variant.ListPrice.IsNegative() {
			return utils.ErrorInvalidInput
		}
		if _, ok := seen[variant.ColorId]; ok {
			return utils.ErrorInvalidInput
		}
		seen[variant.ColorId] = struct{}{}
	}
	return nil
}

type ProductRegistry struct {
	db *gorm.DB
}

func NewProductRegistry(db *gorm.DB) *ProductRegistry {
	return &ProductRegistry{db: db}
}

func (s *ProductRegistry) GetProduct(ctx context.Context, id int) (*Product, error) {
	var product Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, utils.TranslateStoreError(err)
	}
	return &product, nil
}

// CreateProduct stores the product together with its series links, the
// owner's entitlement and its opening variants in one transaction: a
// product is never left without its linkage.
func (s *ProductRegistry) CreateProduct(ctx context.Context, owner *User, input *NewProduct) (*Product, error) {
	if owner == nil || owner.ID <= 0 {
		return nil, utils.ErrorInvalidInput
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	// admin-curated products are master rows; dealer-authored ones are not
	isMaster := owner.IsAdmin()

	product := Product{
		Code:                input.Code,
		Name:                input.Name,
		CategoryId:          input.CategoryId,
		BrandId:             input.BrandId,
		ImageUrl:            input.ImageUrl,
		TechnicalDrawingUrl: input.TechnicalDrawingUrl,
		PackageQuantity:     input.PackageQuantity,
		UnitLength:          input.UnitLength,
		Weight:              input.Weight,
		ProfileType:         input.ProfileType,
		IsMaster:            &isMaster,
		CreatedBy:           owner.ID,
	}
	if product.PackageQuantity == 0 {
		product.PackageQuantity = 1
	}
	if product.UnitLength.IsZero() {
		product.UnitLength = decimal.NewFromFloat(6.00)
	}
	if product.ProfileType == "" {
		product.ProfileType = DefaultProfileType
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, utils.ErrorStoreUnavailable
	}

	if err := tx.Create(&product).Error; err != nil {
		tx.Rollback()
		return nil, utils.TranslateStoreError(err)
	}

	for _, seriesId := range utils.UniqueSlice(input.SeriesIds) {
		var count int64
		if err := tx.Model(&Series{}).Where("id = ?", seriesId).Count(&count).Error; err != nil {
			tx.Rollback()
			return nil, utils.TranslateStoreError(err)
		}
		if count == 0 {
			tx.Rollback()
			return nil, utils.ErrorRecordNotFound
		}
		if err := tx.Create(&ProductSeriesMap{ProductId: product.ID, SeriesId: seriesId}).Error; err != nil {
			tx.Rollback()
			return nil, utils.TranslateStoreError(err)
		}
	}

	link := DealerProduct{UserId: owner.ID, ProductId: product.ID}
	if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}}, DoNothing: true}).
		Create(&link).Error; err != nil {
		tx.Rollback()
		return nil, utils.TranslateStoreError(err)
	}

	for _, variant := range input.Variants {
		record := InventoryRecord{
			UserId:           owner.ID,
			ProductId:        product.ID,
			ColorId:          variant.ColorId,
			Quantity:         variant.Quantity,
			Unit:             variant.Unit,
			CostPrice:        variant.CostPrice,
			ListPrice:        variant.ListPrice,
			LastShipmentDate: time.Now(),
		}
		if record.Unit == "" {
			record.Unit = DefaultUnit
		}
		if record.ListPrice.IsZero() {
			record.ListPrice = record.CostPrice
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, utils.TranslateStoreError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, utils.TranslateStoreError(err)
	}
	return &product, nil
}

// DeleteProduct removes the product and everything it owns: series
// links, entitlements and inventory rows, all in one transaction.
func (s *ProductRegistry) DeleteProduct(ctx context.Context, id int) error {
	var product Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return utils.TranslateStoreError(err)
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return utils.ErrorStoreUnavailable
	}
	if err := tx.Where("product_id = ?", id).Delete(&ProductSeriesMap{}).Error; err != nil {
		tx.Rollback()
		return utils.TranslateStoreError(err)
	}
	if err := tx.Where("product_id = ?", id).Delete(&DealerProduct{}).Error; err != nil {
		tx.Rollback()
		return utils.TranslateStoreError(err)
	}
	if err := tx.Where("product_id = ?", id).Delete(&InventoryRecord{}).Error; err != nil {
		tx.Rollback()
		return utils.TranslateStoreError(err)
	}
	if err := tx.Delete(&Product{}, id).Error; err != nil {
		tx.Rollback()
		return utils.TranslateStoreError(err)
	}
	return utils.TranslateStoreError(tx.Commit().Error)
}

// upsertByCodeTx resolves a product by code in one atomic statement:
// an existing row gets its name (and brand/category when supplied)
// refreshed without touching is_master or created_by; a missing row is
// inserted owned by createdBy. Returns the product id either way.
func (s *ProductRegistry) upsertByCodeTx(ctx context.Context, tx *gorm.DB, code, name string, brandId, categoryId, createdBy int) (int, error) {
	assignments := map[string]interface{}{
		"name":       name,
		"updated_at": time.Now(),
	}
	if brandId > 0 {
		assignments["brand_id"] = brandId
	}
	if categoryId > 0 {
		assignments["category_id"] = categoryId
	}

	product := Product{
		Code:       code,
		Name:       name,
		BrandId:    brandId,
		CategoryId: categoryId,
		IsMaster:   utils.NewFalse(),
		CreatedBy:  createdBy,
	}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoUpdates: clause.Assignments(assignments)}).
		Create(&product).Error
	if err != nil {
		return 0, utils.TranslateStoreError(err)
	}

	// the returned id is driver-dependent for conflict-updates;
	// the row is guaranteed to exist now, so read it back by code
	var id int
	err = tx.WithContext(ctx).Model(&Product{}).Where("code = ?", code).Select("id").Scan(&id).Error
	if err != nil {
		return 0, utils.TranslateStoreError(err)
	}
	if id == 0 {
		return 0, utils.ErrorRecordNotFound
	}
	return id, nil
}
