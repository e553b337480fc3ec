package jobs

import (
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"shipshare.GO/core/cache"
	allocationEntity "shipshare.GO/model/entity/allocation"
	allocationService "shipshare.GO/service/allocation"
)

func TestStatsWarmJob(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&allocationEntity.AllocationMain{},
		&allocationEntity.AllocationDetail{},
		&allocationEntity.AllocationHistory{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	price := 10.0
	if _, err := allocationService.Submit(db, allocationService.SubmitRequest{
		Date:             "2025-06-01",
		OrderNumber:      "WARM1",
		FreightUnitPrice: &price,
		Merchants: []allocationService.MerchantInput{
			{MerchantName: "a", ActualWeight: 5},
		},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	SetDBProvider(func() (*gorm.DB, error) { return db, nil })
	defer SetDBProvider(nil)

	StatsWarmJob()

	v, ok := cache.GetInstance().Get("stats:overview||")
	if !ok {
		t.Fatal("overview not cached")
	}
	var decoded struct {
		Success bool `json:"success"`
		Data    struct {
			TotalRecords int64 `json:"total_records"`
		} `json:"data"`
	}
	if err := json.Unmarshal(v.([]byte), &decoded); err != nil {
		t.Fatalf("decode cached payload: %v", err)
	}
	if !decoded.Success || decoded.Data.TotalRecords != 1 {
		t.Errorf("cached payload = %+v, want success with 1 record", decoded)
	}
}

func TestStatsWarmJob_NoProviderIsNoop(t *testing.T) {
	SetDBProvider(nil)
	cache.GetInstance().DeleteByTag(allocationService.StatsCacheTag)

	StatsWarmJob()

	if _, ok := cache.GetInstance().Get("stats:overview||"); ok {
		t.Error("job cached data without a db provider")
	}
}
