package models

import (
	"context"
	"fmt"
	"time"

	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultColorName is the color an import row lands on when it does not
// name one. The original convention conflated "unspecified" with this
// color; it is kept, but resolved by name through the reference store
// so rows may also carry an explicit color.
const DefaultColorName = "Beyaz"

// ImportRow is one externally sourced product row (typically a
// spreadsheet line already parsed by the caller). Only code and name
// are required; everything else has a stated default.
type ImportRow struct {
	Code      string          `json:"code" binding:"required"`
	Name      string          `json:"name" binding:"required"`
	Brand     string          `json:"brand"`
	Category  string          `json:"category"`
	Color     string          `json:"color"`
	Stock     decimal.Decimal `json:"stock"`
	Unit      string          `json:"unit"`
	Cost      decimal.Decimal `json:"cost"`
	ListPrice decimal.Decimal `json:"list_price"`
}

func (row *ImportRow) validate() error {
	if row.Code == "" || row.Name == "" {
		return utils.ErrorInvalidInput
	}
	if row.Stock.IsNegative() || row.Cost.IsNegative() || row.ListPrice.IsNegative() {
		return utils.ErrorInvalidInput
	}
	return nil
}

// BatchReconciler merges externally supplied rows into the catalog and
// inventory stores. The whole batch is one transaction: a malformed row
// must not leave some dealers' stock half-updated, so any row error
// rolls everything back and the caller resubmits the corrected batch.
type BatchReconciler struct {
	db           *gorm.DB
	users        *UserStore
	refs         *ReferenceStore
	registry     *ProductRegistry
	entitlements *EntitlementIndex
	ledger       *InventoryLedger
}

func NewBatchReconciler(db *gorm.DB, users *UserStore, refs *ReferenceStore, registry *ProductRegistry, entitlements *EntitlementIndex, ledger *InventoryLedger) *BatchReconciler {
	return &BatchReconciler{
		db:           db,
		users:        users,
		refs:         refs,
		registry:     registry,
		entitlements: entitlements,
		ledger:       ledger,
	}
}

// Import applies rows strictly in input order. Per row: resolve the
// brand, upsert the product by code, grant the importing dealer's
// entitlement (so they always see what they imported, even when the
// product pre-existed under another owner), then write the inventory
// record for the row's color. Returns the number of rows applied.
func (s *BatchReconciler) Import(ctx context.Context, dealerId int, rows []ImportRow) (int, error) {
	if len(rows) == 0 {
		return 0, utils.ErrorInvalidInput
	}
	if _, err := s.users.FindById(ctx, dealerId); err != nil {
		return 0, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, utils.ErrorStoreUnavailable
	}

	for i, row := range rows {
		if err := s.applyRow(ctx, tx, dealerId, &row); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return 0, utils.TranslateStoreError(err)
	}
	return len(rows), nil
}

func (s *BatchReconciler) applyRow(ctx context.Context, tx *gorm.DB, dealerId int, row *ImportRow) error {
	if err := row.validate(); err != nil {
		return err
	}

	var brandId int
	if row.Brand != "" {
		id, err := s.refs.findOrCreateBrandTx(ctx, tx, row.Brand)
		if err != nil {
			return err
		}
		brandId = id
	}

	categoryName := row.Category
	if categoryName == "" {
		categoryName = DefaultCategoryName
	}
	categoryId, err := s.refs.findOrCreateCategoryTx(ctx, tx, categoryName)
	if err != nil {
		return err
	}

	productId, err := s.registry.upsertByCodeTx(ctx, tx, row.Code, row.Name, brandId, categoryId, dealerId)
	if err != nil {
		return err
	}

	if err := s.entitlements.grantTx(ctx, tx, dealerId, productId); err != nil {
		return err
	}

	colorName := row.Color
	if colorName == "" {
		colorName = DefaultColorName
	}
	colorId, err := s.refs.findOrCreateColorTx(ctx, tx, colorName)
	if err != nil {
		return err
	}

	unit := row.Unit
	if unit == "" {
		unit = DefaultUnit
	}
	listPrice := row.ListPrice
	if listPrice.IsZero() {
		listPrice = row.Cost
	}

	record := InventoryRecord{
		UserId:           dealerId,
		ProductId:        productId,
		ColorId:          colorId,
		Quantity:         row.Stock,
		Unit:             unit,
		CostPrice:        row.Cost,
		ListPrice:        listPrice,
		LastShipmentDate: time.Now(),
	}
	return s.ledger.upsertTx(ctx, tx, &record)
}
