package models

import (
	"context"
	"errors"
	"time"

	"github.com/ozkkadir/depo-yonetim-sistemi/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductView is one catalog row for one requester: the product with
// its brand/category names, the series it belongs to, and the
// requester's own stock variants. Other dealers' variants never appear.
type ProductView struct {
	Product
	BrandName    string        `json:"brand_name"`
	CategoryName string        `json:"category_name"`
	Series       []string      `json:"series"`
	Variants     []VariantView `json:"variants"`
}

type VariantView struct {
	InventoryId      int             `json:"inv_id"`
	Color            string          `json:"color"`
	Quantity         decimal.Decimal `json:"stock"`
	Unit             string          `json:"unit"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	ListPrice        decimal.Decimal `json:"list_price"`
	LastShipmentDate time.Time       `json:"last_shipment_date"`
}

// CatalogAggregator is the pure read path. It joins across the five
// stores in Go (join-then-group) instead of leaning on a query engine's
// JSON aggregation, so an empty group is an empty list, never a null
// placeholder row.
type CatalogAggregator struct {
	db    *gorm.DB
	users *UserStore
}

func NewCatalogAggregator(db *gorm.DB, users *UserStore) *CatalogAggregator {
	return &CatalogAggregator{db: db, users: users}
}

// ListProducts returns one view per product visible to the requester,
// newest first. An unresolved requester gets an empty catalog, not an
// error.
func (s *CatalogAggregator) ListProducts(ctx context.Context, requesterId int) ([]*ProductView, error) {
	requester, err := s.users.FindById(ctx, requesterId)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return []*ProductView{}, nil
		}
		return nil, err
	}

	products, err := s.candidateProducts(ctx, requester)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []*ProductView{}, nil
	}

	productIds := make([]int, 0, len(products))
	for _, p := range products {
		productIds = append(productIds, p.ID)
	}

	brandNames, err := s.brandNames(ctx, products)
	if err != nil {
		return nil, err
	}
	categoryNames, err := s.categoryNames(ctx, products)
	if err != nil {
		return nil, err
	}
	seriesByProduct, err := s.seriesNamesByProduct(ctx, productIds)
	if err != nil {
		return nil, err
	}
	variantsByProduct, err := s.variantsByProduct(ctx, requester.ID, productIds)
	if err != nil {
		return nil, err
	}

	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		view := &ProductView{
			Product:      *p,
			BrandName:    brandNames[p.BrandId],
			CategoryName: categoryNames[p.CategoryId],
			Series:       seriesByProduct[p.ID],
			Variants:     variantsByProduct[p.ID],
		}
		if view.Series == nil {
			view.Series = []string{}
		}
		if view.Variants == nil {
			view.Variants = []VariantView{}
		}
		views = append(views, view)
	}
	return views, nil
}

// candidateProducts applies the visibility rule: admins see the whole
// catalog, dealers see entitled or self-created products only.
func (s *CatalogAggregator) candidateProducts(ctx context.Context, requester *User) ([]*Product, error) {
	var products []*Product
	dbCtx := s.db.WithContext(ctx).Model(&Product{})
	if !requester.IsAdmin() {
		entitled := s.db.Model(&DealerProduct{}).Select("product_id").Where("user_id = ?", requester.ID)
		dbCtx = dbCtx.Where("id IN (?) OR created_by = ?", entitled, requester.ID)
	}
	err := dbCtx.Order("created_at DESC, id DESC").Find(&products).Error
	if err != nil {
		return nil, utils.TranslateStoreError(err)
	}
	return products, nil
}

func (s *CatalogAggregator) brandNames(ctx context.Context, products []*Product) (map[int]string, error) {
	ids := make([]int, 0, len(products))
	for _, p := range products {
		if p.BrandId > 0 {
			ids = append(ids, p.BrandId)
		}
	}
	return s.namesById(ctx, &Brand{}, ids)
}

func (s *CatalogAggregator) categoryNames(ctx context.Context, products []*Product) (map[int]string, error) {
	ids := make([]int, 0, len(products))
	for _, p := range products {
		if p.CategoryId > 0 {
			ids = append(ids, p.CategoryId)
		}
	}
	return s.namesById(ctx, &Category{}, ids)
}

func (s *CatalogAggregator) namesById(ctx context.Context, model interface{}, ids []int) (map[int]string, error) {
	names := make(map[int]string)
	if len(ids) == 0 {
		return names, nil
	}
	type idName struct {
		ID   int
		Name string
	}
	var rows []idName
	err := s.db.WithContext(ctx).Model(model).
		Where("id IN ?", utils.UniqueSlice(ids)).
		Select("id, name").Scan(&rows).Error
	if err != nil {
		return nil, utils.TranslateStoreError(err)
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

func (s *CatalogAggregator) seriesNamesByProduct(ctx context.Context, productIds []int) (map[int][]string, error) {
	type seriesRow struct {
		ProductId int
		Name      string
	}
	var rows []seriesRow
	err := s.db.WithContext(ctx).Model(&ProductSeriesMap{}).
		Select("product_series_maps.product_id, series.name").
		Joins("JOIN series ON series.id = product_series_maps.series_id").
		Where("product_series_maps.product_id IN ?", productIds).
		Scan(&rows).Error
	if err != nil {
		return nil, utils.TranslateStoreError(err)
	}

	grouped := make(map[int][]string)
	seen := make(map[int]map[string]struct{})
	for _, row := range rows {
		if seen[row.ProductId] == nil {
			seen[row.ProductId] = make(map[string]struct{})
		}
		if _, ok := seen[row.ProductId][row.Name]; ok {
			continue
		}
		seen[row.ProductId][row.Name] = struct{}{}
		grouped[row.ProductId] = append(grouped[row.ProductId], row.Name)
	}
	return grouped, nil
}

// variantsByProduct loads ONLY the requester's inventory rows; the
// per-tenant scoping lives in the query, not in post-filtering.
func (s *CatalogAggregator) variantsByProduct(ctx context.Context, requesterId int, productIds []int) (map[int][]VariantView, error) {
	type variantRow struct {
		ID               int
		ProductId        int
		Quantity         decimal.Decimal
		Unit             string
		CostPrice        decimal.Decimal
		ListPrice        decimal.Decimal
		LastShipmentDate time.Time
		ColorName        string
	}
	var rows []variantRow
	err := s.db.WithContext(ctx).Model(&InventoryRecord{}).
		Select("inventory_records.id, inventory_records.product_id, inventory_records.quantity, inventory_records.unit, inventory_records.cost_price, inventory_records.list_price, inventory_records.last_shipment_date, colors.name AS color_name").
		Joins("LEFT JOIN colors ON colors.id = inventory_records.color_id").
		Where("inventory_records.user_id = ? AND inventory_records.product_id IN ?", requesterId, productIds).
		Order("inventory_records.id").
		Scan(&rows).Error
	if err != nil {
		return nil, utils.TranslateStoreError(err)
	}

	grouped := make(map[int][]VariantView)
	for _, row := range rows {
		grouped[row.ProductId] = append(grouped[row.ProductId], VariantView{
			InventoryId:      row.ID,
			Color:            row.ColorName,
			Quantity:         row.Quantity,
			Unit:             row.Unit,
			CostPrice:        row.CostPrice,
			ListPrice:        row.ListPrice,
			LastShipmentDate: row.LastShipmentDate,
		})
	}
	return grouped, nil
}
