package models

import (
	"context"

	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DealerProduct links a dealer to a product they may see and sell.
// The pair is unique; visibility is independent of ownership.
type DealerProduct struct {
	ID        int `gorm:"primary_key" json:"id"`
	UserId    int `gorm:"uniqueIndex:idx_dealer_product;not null" json:"user_id"`
	ProductId int `gorm:"uniqueIndex:idx_dealer_product;not null" json:"product_id"`
}

type EntitlementIndex struct {
	db *gorm.DB
}

func NewEntitlementIndex(db *gorm.DB) *EntitlementIndex {
	return &EntitlementIndex{db: db}
}

// Grant is idempotent: granting an existing pair is a no-op.
func (s *EntitlementIndex) Grant(ctx context.Context, dealerId, productId int) error {
	return s.grantTx(ctx, s.db, dealerId, productId)
}

func (s *EntitlementIndex) grantTx(ctx context.Context, tx *gorm.DB, dealerId, productId int) error {
	if dealerId <= 0 || productId <= 0 {
		return utils.ErrorInvalidInput
	}
	link := DealerProduct{UserId: dealerId, ProductId: productId}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}}, DoNothing: true}).
		Create(&link).Error
	return utils.TranslateStoreError(err)
}

// IsVisible reports whether the dealer holds a grant for the product or
// created it themselves. Admin visibility is decided by the caller.
func (s *EntitlementIndex) IsVisible(ctx context.Context, dealerId, productId int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&DealerProduct{}).
		Where("user_id = ? AND product_id = ?", dealerId, productId).
		Count(&count).Error
	if err != nil {
		return false, utils.TranslateStoreError(err)
	}
	if count > 0 {
		return true, nil
	}
	err = s.db.WithContext(ctx).Model(&Product{}).
		Where("id = ? AND created_by = ?", productId, dealerId).
		Count(&count).Error
	if err != nil {
		return false, utils.TranslateStoreError(err)
	}
	return count > 0, nil
}

// Revoke removes only the link, never the product.
func (s *EntitlementIndex) Revoke(ctx context.Context, dealerId, productId int) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", dealerId, productId).
		Delete(&DealerProduct{}).Error
	return utils.TranslateStoreError(err)
}
