package allocation

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	allocationEntity "shipshare.GO/model/entity/allocation"
)

// AllocationRepository owns all reads and writes of the allocation tables.
// Every logical operation runs in exactly one transaction; nothing is ever
// partially applied.
type AllocationRepository struct {
	db *gorm.DB
}

func NewAllocationRepository(db *gorm.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// Save upserts an allocation by its business key (order_number): if an active
// main row exists it is updated in place and its detail rows are fully
// replaced (delete then reinsert); otherwise a new main + details are
// inserted. A CREATE/UPDATE history row is appended in the same transaction.
// Returns the main row id.
func (r *AllocationRepository) Save(main *allocationEntity.AllocationMain, details []allocationEntity.AllocationDetail, snapshot datatypes.JSON, operator string) (uint, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing allocationEntity.AllocationMain
		res := tx.Select("id").
			Where("order_number = ? AND status = ?", main.OrderNumber, allocationEntity.StatusActive).
			Limit(1).Find(&existing)
		if res.Error != nil {
			return res.Error
		}

		op := allocationEntity.OpCreate
		if existing.ID != 0 {
			op = allocationEntity.OpUpdate
			main.ID = existing.ID
			updates := map[string]interface{}{
				"date":                   main.Date,
				"tracking_number":        main.TrackingNumber,
				"shipment_id":            main.ShipmentID,
				"freight_unit_price":     main.FreightUnitPrice,
				"box_count":              main.BoxCount,
				"total_settle_weight":    main.TotalSettleWeight,
				"actual_weight_with_box": main.ActualWeightWithBox,
				"total_actual_weight":    main.TotalActualWeight,
				"total_box_weight":       main.TotalBoxWeight,
				"total_throw_weight":     main.TotalThrowWeight,
				"total_amount":           main.TotalAmount,
				"merchant_count":         main.MerchantCount,
				"updated_by":             operator,
			}
			if err := tx.Model(&allocationEntity.AllocationMain{}).Where("id = ?", main.ID).Updates(updates).Error; err != nil {
				return err
			}
			// Full detail replacement: old rows go away entirely so the
			// detail set always matches the latest submission.
			if err := tx.Where("main_id = ?", main.ID).Delete(&allocationEntity.AllocationDetail{}).Error; err != nil {
				return err
			}
		} else {
			main.Status = allocationEntity.StatusActive
			main.CreatedBy = operator
			if err := tx.Create(main).Error; err != nil {
				return err
			}
		}

		for i := range details {
			details[i].ID = 0
			details[i].MainID = main.ID
			details[i].SequenceNumber = i + 1
			details[i].Status = allocationEntity.StatusActive
			if details[i].LogisticsStatus == "" {
				details[i].LogisticsStatus = allocationEntity.LogisticsInTransit
			}
		}
		if len(details) > 0 {
			if err := tx.Create(&details).Error; err != nil {
				return err
			}
		}

		return appendHistory(tx, main.ID, op, snapshot, operator)
	})
	if err != nil {
		return 0, err
	}
	return main.ID, nil
}

// SoftDelete flips status to 0 on the main row and its details and appends a
// DELETE history row, all in one transaction. Returns false when no active
// main row matched; nothing is written in that case.
func (r *AllocationRepository) SoftDelete(mainID uint, operator string) (bool, error) {
	matched := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&allocationEntity.AllocationMain{}).
			Where("id = ? AND status = ?", mainID, allocationEntity.StatusActive).
			Update("status", allocationEntity.StatusDeleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		matched = true

		if err := tx.Model(&allocationEntity.AllocationDetail{}).
			Where("main_id = ?", mainID).
			Update("status", allocationEntity.StatusDeleted).Error; err != nil {
			return err
		}

		snapshot := datatypes.JSON([]byte(`{"deleted_at":"` + time.Now().Format(time.RFC3339) + `"}`))
		return appendHistory(tx, mainID, allocationEntity.OpDelete, snapshot, operator)
	})
	return matched, err
}

// MainFieldsUpdate carries a partial main-row update. Nil fields are left
// untouched.
type MainFieldsUpdate struct {
	Date                *string
	TrackingNumber      *string
	ShipmentID          *string
	FreightUnitPrice    *float64
	BoxCount            *int
	TotalSettleWeight   *float64
	ActualWeightWithBox *float64
}

// UpdateMainFields updates main-level fields by business key, leaving detail
// rows untouched, and appends an UPDATE history row. Returns 0 when no active
// row matched.
func (r *AllocationRepository) UpdateMainFields(orderNumber string, f MainFieldsUpdate, snapshot datatypes.JSON, operator string) (uint, error) {
	var mainID uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing allocationEntity.AllocationMain
		res := tx.Select("id").
			Where("order_number = ? AND status = ?", orderNumber, allocationEntity.StatusActive).
			Limit(1).Find(&existing)
		if res.Error != nil {
			return res.Error
		}
		if existing.ID == 0 {
			return nil
		}
		mainID = existing.ID

		updates := map[string]interface{}{"updated_by": operator}
		if f.Date != nil {
			updates["date"] = *f.Date
		}
		if f.TrackingNumber != nil {
			updates["tracking_number"] = *f.TrackingNumber
		}
		if f.ShipmentID != nil {
			updates["shipment_id"] = *f.ShipmentID
		}
		if f.FreightUnitPrice != nil {
			updates["freight_unit_price"] = *f.FreightUnitPrice
		}
		if f.BoxCount != nil {
			updates["box_count"] = *f.BoxCount
		}
		if f.TotalSettleWeight != nil {
			updates["total_settle_weight"] = *f.TotalSettleWeight
		}
		if f.ActualWeightWithBox != nil {
			updates["actual_weight_with_box"] = *f.ActualWeightWithBox
		}
		if err := tx.Model(&allocationEntity.AllocationMain{}).Where("id = ?", mainID).Updates(updates).Error; err != nil {
			return err
		}

		return appendHistory(tx, mainID, allocationEntity.OpUpdate, snapshot, operator)
	})
	return mainID, err
}

// LogisticsUpdate is one batch-update entry keyed by tracking number.
type LogisticsUpdate struct {
	TrackingNumber      string `json:"tracking_number"`
	LogisticsStatus     string `json:"logistics_status"`
	ActualReceivedCount int    `json:"actual_received_count"`
}

// BatchUpdateLogistics updates logistics status and received count on all
// active detail rows whose active parent main row carries each tracking
// number. Returns the count of tracking numbers that matched at least one
// row; a non-matching tracking number is skipped, not an error.
func (r *AllocationRepository) BatchUpdateLogistics(entries []LogisticsUpdate, operator string) (int, error) {
	matched := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			if e.TrackingNumber == "" {
				continue
			}

			var mainIDs []uint
			if err := tx.Model(&allocationEntity.AllocationMain{}).
				Where("tracking_number = ? AND status = ?", e.TrackingNumber, allocationEntity.StatusActive).
				Pluck("id", &mainIDs).Error; err != nil {
				return err
			}
			if len(mainIDs) == 0 {
				continue
			}

			res := tx.Model(&allocationEntity.AllocationDetail{}).
				Where("main_id IN ? AND status = ?", mainIDs, allocationEntity.StatusActive).
				Updates(map[string]interface{}{
					"logistics_status":      e.LogisticsStatus,
					"actual_received_count": e.ActualReceivedCount,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}
			matched++

			snapshot, err := logisticsSnapshot(e)
			if err != nil {
				return err
			}
			for _, id := range mainIDs {
				if err := appendHistory(tx, id, allocationEntity.OpUpdate, snapshot, operator); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return matched, nil
}

func logisticsSnapshot(e LogisticsUpdate) (datatypes.JSON, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func appendHistory(tx *gorm.DB, mainID uint, op string, snapshot datatypes.JSON, operator string) error {
	if operator == "" {
		operator = "system"
	}
	return tx.Create(&allocationEntity.AllocationHistory{
		MainID:        mainID,
		OperationType: op,
		NewData:       snapshot,
		Operator:      operator,
	}).Error
}
