package allocation

import (
	"time"

	"gorm.io/gorm"

	allocationEntity "shipshare.GO/model/entity/allocation"
	allocationRepo "shipshare.GO/model/repository/allocation"
	"shipshare.GO/core/cache"
)

// UpdateFieldsRequest is a partial main-row update. Nil fields are left
// untouched; detail rows are never changed by this operation.
type UpdateFieldsRequest struct {
	Date                *string  `json:"date"`
	TrackingNumber      *string  `json:"tracking_number"`
	ShipmentID          *string  `json:"shipment_id"`
	FreightUnitPrice    *float64 `json:"freight_unit_price"`
	BoxCount            *int     `json:"box_count"`
	TotalSettleWeight   *float64 `json:"total_settle_weight"`
	ActualWeightWithBox *float64 `json:"actual_weight_with_box"`
	Operator            string   `json:"-"`
}

func (r *UpdateFieldsRequest) validate() error {
	if r.Date != nil {
		if _, err := time.Parse("2006-01-02", *r.Date); err != nil {
			return validationErrorf("date", "must be YYYY-MM-DD")
		}
	}
	if r.FreightUnitPrice != nil && *r.FreightUnitPrice < 0 {
		return validationErrorf("freight_unit_price", "must not be negative")
	}
	if r.TotalSettleWeight != nil && *r.TotalSettleWeight < 0 {
		return validationErrorf("total_settle_weight", "must not be negative")
	}
	if r.ActualWeightWithBox != nil && *r.ActualWeightWithBox < 0 {
		return validationErrorf("actual_weight_with_box", "must not be negative")
	}
	if r.BoxCount != nil && *r.BoxCount < 0 {
		return validationErrorf("box_count", "must not be negative")
	}
	return nil
}

// UpdateMainFields updates main-level fields by order number. Returns
// ErrNotFound when no active row matches.
func UpdateMainFields(db *gorm.DB, orderNumber string, req UpdateFieldsRequest) (uint, error) {
	if orderNumber == "" {
		return 0, validationErrorf("order_number", "required")
	}
	if err := req.validate(); err != nil {
		return 0, err
	}

	snapshot, err := requestSnapshot(req)
	if err != nil {
		return 0, err
	}

	repo := allocationRepo.NewAllocationRepository(db)
	mainID, err := repo.UpdateMainFields(orderNumber, allocationRepo.MainFieldsUpdate{
		Date:                req.Date,
		TrackingNumber:      req.TrackingNumber,
		ShipmentID:          req.ShipmentID,
		FreightUnitPrice:    req.FreightUnitPrice,
		BoxCount:            req.BoxCount,
		TotalSettleWeight:   req.TotalSettleWeight,
		ActualWeightWithBox: req.ActualWeightWithBox,
	}, snapshot, req.Operator)
	if err != nil {
		return 0, err
	}
	if mainID == 0 {
		return 0, ErrNotFound
	}

	cache.GetInstance().DeleteByTag(StatsCacheTag)
	return mainID, nil
}

// Delete soft-deletes an allocation and its details. Returns ErrNotFound when
// no active main row matches.
func Delete(db *gorm.DB, mainID uint, operator string) error {
	repo := allocationRepo.NewAllocationRepository(db)
	matched, err := repo.SoftDelete(mainID, operator)
	if err != nil {
		return err
	}
	if !matched {
		return ErrNotFound
	}
	cache.GetInstance().DeleteByTag(StatsCacheTag)
	return nil
}

// BatchUpdateLogistics validates and applies a batch of logistics updates.
// Returns the count of tracking numbers that matched at least one row.
func BatchUpdateLogistics(db *gorm.DB, entries []allocationRepo.LogisticsUpdate, operator string) (int, error) {
	if len(entries) == 0 {
		return 0, validationErrorf("details", "nothing to update")
	}
	for i, e := range entries {
		if e.TrackingNumber == "" {
			continue
		}
		if !allocationEntity.ValidLogisticsStatus(e.LogisticsStatus) {
			return 0, validationErrorf("details", "entry %d: unknown logistics_status %q", i+1, e.LogisticsStatus)
		}
		if e.ActualReceivedCount < 0 {
			return 0, validationErrorf("details", "entry %d: actual_received_count must not be negative", i+1)
		}
	}

	repo := allocationRepo.NewAllocationRepository(db)
	matched, err := repo.BatchUpdateLogistics(entries, operator)
	if err != nil {
		return 0, err
	}
	if matched > 0 {
		cache.GetInstance().DeleteByTag(StatsCacheTag)
	}
	return matched, nil
}
