package models

import (
	"context"
	"time"

	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultUnit is the per-length unit dealers stock profiles in.
const DefaultUnit = "Boy"

// InventoryRecord is one dealer's stock of one color of one product.
// The (user_id, product_id, color_id) triple is unique: the row is
// created the first time that combination is stocked and only mutated
// in place afterwards. No other tenant may read or write it.
type InventoryRecord struct {
	ID               int             `gorm:"primary_key" json:"id"`
	UserId           int             `gorm:"uniqueIndex:idx_inventory_owner_product_color;not null" json:"user_id"`
	ProductId        int             `gorm:"uniqueIndex:idx_inventory_owner_product_color;not null" json:"product_id"`
	ColorId          int             `gorm:"uniqueIndex:idx_inventory_owner_product_color;not null" json:"color_id"`
	Quantity         decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"quantity"`
	Unit             string          `gorm:"size:20;not null;default:Adet" json:"unit"`
	CostPrice        decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"cost_price"`
	ListPrice        decimal.Decimal `gorm:"type:decimal(10,2);default:0" json:"list_price"`
	LastShipmentDate time.Time       `json:"last_shipment_date"`
}

type InventoryLedger struct {
	db *gorm.DB
}

func NewInventoryLedger(db *gorm.DB) *InventoryLedger {
	return &InventoryLedger{db: db}
}

// upsertTx writes the record for its (dealer, product, color) triple:
// straight replace of quantity/unit/prices when the row exists, insert
// otherwise. One atomic statement on the unique index.
func (s *InventoryLedger) upsertTx(ctx context.Context, tx *gorm.DB, record *InventoryRecord) error {
	if record.UserId <= 0 || record.ProductId <= 0 || record.ColorId <= 0 {
		return utils.ErrorInvalidInput
	}
	if record.Quantity.IsNegative() || record.CostPrice.IsNegative() || record.ListPrice.IsNegative() {
		return utils.ErrorInvalidInput
	}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}, {Name: "color_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":           record.Quantity,
				"unit":               record.Unit,
				"cost_price":         record.CostPrice,
				"list_price":         record.ListPrice,
				"last_shipment_date": record.LastShipmentDate,
			}),
		}).
		Create(record).Error
	return utils.TranslateStoreError(err)
}

// AdjustQuantity overwrites the stock count of one record. The update
// is scoped to the owning dealer at the query layer: another tenant's
// record id simply does not resolve.
func (s *InventoryLedger) AdjustQuantity(ctx context.Context, dealerId, recordId int, quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return utils.ErrorInvalidInput
	}
	result := s.db.WithContext(ctx).Model(&InventoryRecord{}).
		Where("id = ? AND user_id = ?", recordId, dealerId).
		Updates(map[string]interface{}{"quantity": quantity})
	if result.Error != nil {
		return utils.TranslateStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

// ReceiveStock books a stock receipt against an existing record using
// weighted-average costing:
//
//	newQty = qty + recvQty
//	newAvg = qty == 0 ? recvCost : (qty*avg + recvQty*recvCost) / newQty
//
// The blend is evaluated by the store inside a single UPDATE. Every
// assignment reads the pre-update row, so two overlapping receipts on
// the same record serialize on the row write; a Go-side read-then-write
// would let the second receipt blend from a stale quantity.
//
// A receipt against an unknown (dealer, product, color) fails with
// Not-Found; it never creates the row.
func (s *InventoryLedger) ReceiveStock(ctx context.Context, dealerId, productId, colorId int, receivedQty, receivedUnitCost decimal.Decimal) (*InventoryRecord, error) {
	if !receivedQty.IsPositive() || receivedUnitCost.IsNegative() {
		return nil, utils.ErrorInvalidInput
	}

	receivedValue := receivedQty.Mul(receivedUnitCost)
	result := s.db.WithContext(ctx).Model(&InventoryRecord{}).
		Where("user_id = ? AND product_id = ? AND color_id = ?", dealerId, productId, colorId).
		Updates(map[string]interface{}{
			"cost_price": gorm.Expr(
				// * 1.0 forces numeric division (sqlite would truncate int/int)
				"CASE WHEN quantity = 0 THEN ? ELSE ROUND((quantity * cost_price + ?) * 1.0 / (quantity + ?), 4) END",
				receivedUnitCost, receivedValue, receivedQty),
			"quantity":           gorm.Expr("quantity + ?", receivedQty),
			"last_shipment_date": time.Now(),
		})
	if result.Error != nil {
		return nil, utils.TranslateStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, utils.ErrorRecordNotFound
	}

	var record InventoryRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND color_id = ?", dealerId, productId, colorId).
		First(&record).Error
	if err != nil {
		return nil, utils.TranslateStoreError(err)
	}
	return &record, nil
}
