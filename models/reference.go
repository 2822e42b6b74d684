package models

import (
	"context"

	"github.com/ozkkadir/depo-yonetim-sistemi/config"
	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reference data is globally shared across dealers and created lazily
// by name. Names are matched exactly (case-sensitive); near-duplicate
// names are a known limitation and are never merged.

type Brand struct {
	ID   int    `gorm:"primary_key" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name" binding:"required"`
}

type Category struct {
	ID   int    `gorm:"primary_key" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name" binding:"required"`
}

type Color struct {
	ID      int    `gorm:"primary_key" json:"id"`
	Name    string `gorm:"uniqueIndex;size:50;not null" json:"name" binding:"required"`
	HexCode string `gorm:"size:7" json:"hex_code"`
}

type Series struct {
	ID      int    `gorm:"primary_key" json:"id"`
	Name    string `gorm:"uniqueIndex:idx_series_brand_name;size:100;not null" json:"name" binding:"required"`
	BrandId int    `gorm:"uniqueIndex:idx_series_brand_name;not null" json:"brand_id"`
}

const (
	cacheKeyBrands     = "ref:brands"
	cacheKeyCategories = "ref:categories"
	cacheKeyColors     = "ref:colors"
	cacheKeySeries     = "ref:series"
)

type ReferenceStore struct {
	db    *gorm.DB
	cache *config.Cache
}

func NewReferenceStore(db *gorm.DB, cache *config.Cache) *ReferenceStore {
	return &ReferenceStore{db: db, cache: cache}
}

// FindOrCreateBrand resolves a brand name to its id, inserting the row
// when the name is unseen. The insert is a single conditional upsert on
// the unique name index, so two concurrent first-time imports of the
// same brand cannot race into duplicates.
func (s *ReferenceStore) FindOrCreateBrand(ctx context.Context, name string) (int, error) {
	return s.findOrCreateBrandTx(ctx, s.db, name)
}

func (s *ReferenceStore) findOrCreateBrandTx(ctx context.Context, tx *gorm.DB, name string) (int, error) {
	if name == "" {
		return 0, utils.ErrorInvalidInput
	}
	brand := Brand{Name: name}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&brand).Error
	if err != nil {
		return 0, utils.TranslateStoreError(err)
	}
	if brand.ID == 0 {
		// conflicted with an existing row; fetch its id
		if err := tx.WithContext(ctx).Where("name = ?", name).First(&brand).Error; err != nil {
			return 0, utils.TranslateStoreError(err)
		}
	} else {
		s.cache.Remove(ctx, cacheKeyBrands)
	}
	return brand.ID, nil
}

func (s *ReferenceStore) FindOrCreateCategory(ctx context.Context, name string) (int, error) {
	return s.findOrCreateCategoryTx(ctx, s.db, name)
}

func (s *ReferenceStore) findOrCreateCategoryTx(ctx context.Context, tx *gorm.DB, name string) (int, error) {
	if name == "" {
		return 0, utils.ErrorInvalidInput
	}
	category := Category{Name: name}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&category).Error
	if err != nil {
		return 0, utils.TranslateStoreError(err)
	}
	if category.ID == 0 {
		if err := tx.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
			return 0, utils.TranslateStoreError(err)
		}
	} else {
		s.cache.Remove(ctx, cacheKeyCategories)
	}
	return category.ID, nil
}

func (s *ReferenceStore) FindOrCreateColor(ctx context.Context, name string) (int, error) {
	return s.findOrCreateColorTx(ctx, s.db, name)
}

func (s *ReferenceStore) findOrCreateColorTx(ctx context.Context, tx *gorm.DB, name string) (int, error) {
	if name == "" {
		return 0, utils.ErrorInvalidInput
	}
	color := Color{Name: name}
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&color).Error
	if err != nil {
		return 0, utils.TranslateStoreError(err)
	}
	if color.ID == 0 {
		if err := tx.WithContext(ctx).Where("name = ?", name).First(&color).Error; err != nil {
			return 0, utils.TranslateStoreError(err)
		}
	} else {
		s.cache.Remove(ctx, cacheKeyColors)
	}
	return color.ID, nil
}

// FindOrCreateSeries scopes the name match to the parent brand.
func (s *ReferenceStore) FindOrCreateSeries(ctx context.Context, brandId int, name string) (int, error) {
	if name == "" || brandId <= 0 {
		return 0, utils.ErrorInvalidInput
	}
	series := Series{Name: name, BrandId: brandId}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "brand_id"}, {Name: "name"}}, DoNothing: true}).
		Create(&series).Error
	if err != nil {
		return 0, utils.TranslateStoreError(err)
	}
	if series.ID == 0 {
		if err := s.db.WithContext(ctx).Where("brand_id = ? AND name = ?", brandId, name).First(&series).Error; err != nil {
			return 0, utils.TranslateStoreError(err)
		}
	} else {
		s.cache.Remove(ctx, cacheKeySeries)
	}
	return series.ID, nil
}

/* pass-through listing for the reference-data collaborator */

func (s *ReferenceStore) Brands(ctx context.Context) ([]*Brand, error) {
	return listCached[Brand](ctx, s, cacheKeyBrands)
}

func (s *ReferenceStore) Categories(ctx context.Context) ([]*Category, error) {
	return listCached[Category](ctx, s, cacheKeyCategories)
}

func (s *ReferenceStore) Colors(ctx context.Context) ([]*Color, error) {
	return listCached[Color](ctx, s, cacheKeyColors)
}

func (s *ReferenceStore) AllSeries(ctx context.Context) ([]*Series, error) {
	return listCached[Series](ctx, s, cacheKeySeries)
}

// read list from redis or db, cache result
func listCached[T any](ctx context.Context, s *ReferenceStore, key string) ([]*T, error) {
	var results []*T
	exists, err := s.cache.GetObject(ctx, key, &results)
	if err == nil && exists {
		return results, nil
	}
	if err := s.db.WithContext(ctx).Order("name").Find(&results).Error; err != nil {
		return nil, utils.TranslateStoreError(err)
	}
	s.cache.SetObject(ctx, key, results, config.CacheLifespan())
	return results, nil
}
