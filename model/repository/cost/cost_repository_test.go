package cost

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	costEntity "shipshare.GO/model/entity/cost"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&costEntity.ShippingCost{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func costRecord(date, orderNumber, merchants string) *costEntity.ShippingCost {
	return &costEntity.ShippingCost{
		Date:             date,
		OrderNumber:      orderNumber,
		TrackingNumber:   "T-" + orderNumber,
		FreightUnitPrice: 12.5,
		Merchants:        datatypes.JSON([]byte(merchants)),
	}
}

func TestCostRepository_SaveAssignsUUID(t *testing.T) {
	db := testDB(t)
	repo := NewCostRepository(db)

	id, err := repo.Save(costRecord("2025-05-01", "C001", `[{"merchant_name":"acme","weight":3}]`))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("id = %q, want a 36-char UUID", id)
	}

	var saved costEntity.ShippingCost
	if err := db.Where("id = ?", id).First(&saved).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if saved.SettlementStatus != costEntity.SettlementPending {
		t.Errorf("SettlementStatus = %q, want pending", saved.SettlementStatus)
	}
}

func TestCostRepository_UpsertByOrderNumber(t *testing.T) {
	db := testDB(t)
	repo := NewCostRepository(db)

	first, err := repo.Save(costRecord("2025-05-01", "C002", `[]`))
	if err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second, err := repo.Save(costRecord("2025-05-02", "C002", `[{"merchant_name":"x"}]`))
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if second != first {
		t.Errorf("upsert created new id %q, want %q", second, first)
	}

	var count int64
	db.Model(&costEntity.ShippingCost{}).Where("order_number = ?", "C002").Count(&count)
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}

	var saved costEntity.ShippingCost
	db.Where("id = ?", first).First(&saved)
	if saved.Date != "2025-05-02" {
		t.Errorf("Date = %q, want updated 2025-05-02", saved.Date)
	}
}

func TestCostRepository_ListFilters(t *testing.T) {
	db := testDB(t)
	repo := NewCostRepository(db)

	if _, err := repo.Save(costRecord("2025-05-01", "C003", `[{"merchant_name":"acme"}]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := repo.Save(costRecord("2025-05-03", "C004", `[{"merchant_name":"globex"}]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rows, err := repo.List(ListFilters{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 || rows[0].OrderNumber != "C004" {
		t.Errorf("rows = %+v, want C004 first (newest date)", rows)
	}

	rows, _ = repo.List(ListFilters{MerchantName: "acme"})
	if len(rows) != 1 || rows[0].OrderNumber != "C003" {
		t.Errorf("merchant filter = %+v, want just C003", rows)
	}

	rows, _ = repo.List(ListFilters{TrackingNumbers: []string{"T-C004"}})
	if len(rows) != 1 || rows[0].OrderNumber != "C004" {
		t.Errorf("tracking filter = %+v, want just C004", rows)
	}

	rows, _ = repo.List(ListFilters{StartDate: "2025-05-02"})
	if len(rows) != 1 || rows[0].OrderNumber != "C004" {
		t.Errorf("date filter = %+v, want just C004", rows)
	}
}

func TestCostRepository_UpdateSettlementStatus(t *testing.T) {
	db := testDB(t)
	repo := NewCostRepository(db)

	id, err := repo.Save(costRecord("2025-05-01", "C005", `[]`))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	ok, err := repo.UpdateSettlementStatus(id, costEntity.SettlementSettled)
	if err != nil {
		t.Fatalf("UpdateSettlementStatus: %v", err)
	}
	if !ok {
		t.Error("matched = false for existing record")
	}

	var saved costEntity.ShippingCost
	db.Where("id = ?", id).First(&saved)
	if saved.SettlementStatus != costEntity.SettlementSettled {
		t.Errorf("SettlementStatus = %q, want settled", saved.SettlementStatus)
	}

	ok, err = repo.UpdateSettlementStatus("no-such-id", costEntity.SettlementSettled)
	if err != nil {
		t.Fatalf("UpdateSettlementStatus (missing): %v", err)
	}
	if ok {
		t.Error("matched = true for unknown id")
	}
}
