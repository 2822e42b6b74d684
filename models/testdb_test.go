package models_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ozkkadir/depo-yonetim-sistemi/config"
	"github.com/ozkkadir/depo-yonetim-sistemi/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a private in-memory database for one test.
// cache=shared keeps the schema alive across the connections the pool
// hands out; the name keeps parallel tests apart.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.MigrateTable(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testStores struct {
	db           *gorm.DB
	users        *models.UserStore
	refs         *models.ReferenceStore
	registry     *models.ProductRegistry
	entitlements *models.EntitlementIndex
	ledger       *models.InventoryLedger
	catalog      *models.CatalogAggregator
	reconciler   *models.BatchReconciler
}

func newTestStores(t *testing.T) *testStores {
	t.Helper()
	db := openTestDB(t)
	users := models.NewUserStore(db)
	refs := models.NewReferenceStore(db, config.NewCache(nil))
	registry := models.NewProductRegistry(db)
	entitlements := models.NewEntitlementIndex(db)
	ledger := models.NewInventoryLedger(db)
	return &testStores{
		db:           db,
		users:        users,
		refs:         refs,
		registry:     registry,
		entitlements: entitlements,
		ledger:       ledger,
		catalog:      models.NewCatalogAggregator(db, users),
		reconciler:   models.NewBatchReconciler(db, users, refs, registry, entitlements, ledger),
	}
}

func mustCreateUser(t *testing.T, s *testStores, username, role string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Role: role, CompanyName: username + " Ltd"}
	if err := s.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}
