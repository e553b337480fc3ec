package allocation

import (
	"strings"
	"testing"

	allocationEntity "shipshare.GO/model/entity/allocation"
	allocationRepo "shipshare.GO/model/repository/allocation"
)

const importCSV = `date,order_number,tracking_number,freight_unit_price,total_settle_weight,actual_weight_with_box,merchant_name,pieces,weight
2025-06-01,IMP001,TRK1,60,38,35,A,1,10
2025-06-01,IMP001,TRK1,60,38,35,B,2,20
2025-06-02,IMP002,TRK2,45,10,9.5,C,1,8
`

func TestImportAllocations(t *testing.T) {
	db := testDB(t)

	res, err := ImportAllocations(db, strings.NewReader(importCSV), ImportOptions{Operator: "importer"})
	if err != nil {
		t.Fatalf("ImportAllocations: %v", err)
	}
	if res.Rows != 3 {
		t.Errorf("Rows = %d, want 3", res.Rows)
	}
	if res.Imported != 2 {
		t.Errorf("Imported = %d, want 2", res.Imported)
	}
	if res.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0 (warnings: %v)", res.Skipped, res.Warnings)
	}

	repo := allocationRepo.NewAllocationRepository(db)
	row, err := repo.GetByOrderNumber("IMP001")
	if err != nil || row == nil {
		t.Fatalf("IMP001 not imported: %v", err)
	}
	if len(row.Merchants) != 2 {
		t.Errorf("IMP001 details = %d, want 2", len(row.Merchants))
	}
	if row.TotalBoxWeight != 5 || row.TotalThrowWeight != 3 {
		t.Errorf("IMP001 derived weights = %v/%v, want 5/3", row.TotalBoxWeight, row.TotalThrowWeight)
	}

	history, _ := repo.History(row.ID)
	if len(history) != 1 || history[0].Operator != "importer" {
		t.Errorf("IMP001 history = %+v, want one CREATE row by importer", history)
	}
}

func TestImportAllocations_BadGroupSkipped(t *testing.T) {
	db := testDB(t)

	// IMP004's only merchant has zero weight: the group is skipped with a
	// warning, the good group still imports.
	csv := `date,order_number,freight_unit_price,merchant_name,weight
2025-06-01,IMP003,10,A,5
2025-06-01,IMP004,10,B,0
`
	res, err := ImportAllocations(db, strings.NewReader(csv), ImportOptions{})
	if err != nil {
		t.Fatalf("ImportAllocations: %v", err)
	}
	if res.Imported != 1 || res.Skipped != 1 {
		t.Errorf("Imported/Skipped = %d/%d, want 1/1", res.Imported, res.Skipped)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "IMP004") {
		t.Errorf("Warnings = %v, want one naming IMP004", res.Warnings)
	}

	var count int64
	db.Model(&allocationEntity.AllocationMain{}).Where("order_number = ?", "IMP003").Count(&count)
	if count != 1 {
		t.Errorf("IMP003 rows = %d, want 1", count)
	}
}

func TestImportAllocations_MissingColumn(t *testing.T) {
	db := testDB(t)
	if _, err := ImportAllocations(db, strings.NewReader("date,order_number\n"), ImportOptions{}); err == nil {
		t.Error("expected error for missing required columns")
	}
}
