package allocation

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	allocationEntity "shipshare.GO/model/entity/allocation"
	allocationRepo "shipshare.GO/model/repository/allocation"
	"shipshare.GO/core/cache"
)

// StatsCacheTag groups cached statistics responses so every allocation write
// can drop them in one call.
const StatsCacheTag = "allocation_stats"

// SubmitRequest is the validated submission payload. Required: Date,
// OrderNumber, FreightUnitPrice, at least one named merchant. Everything else
// is optional.
type SubmitRequest struct {
	Date                string          `json:"date"`
	OrderNumber         string          `json:"order_number"`
	TrackingNumber      string          `json:"tracking_number"`
	ShipmentID          string          `json:"shipment_id"`
	FreightUnitPrice    *float64        `json:"freight_unit_price"`
	BoxCount            int             `json:"box_count"`
	TotalSettleWeight   float64         `json:"total_settle_weight"`
	ActualWeightWithBox float64         `json:"actual_weight_with_box"`
	Merchants           []MerchantInput `json:"merchants"`
	Operator            string          `json:"-"`
}

func (r *SubmitRequest) validate() error {
	if r.Date == "" {
		return validationErrorf("date", "required")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return validationErrorf("date", "must be YYYY-MM-DD")
	}
	if r.OrderNumber == "" {
		return validationErrorf("order_number", "required")
	}
	if r.FreightUnitPrice == nil {
		return validationErrorf("freight_unit_price", "required")
	}
	if r.BoxCount < 0 {
		return validationErrorf("box_count", "must not be negative")
	}
	return nil
}

// Submit validates a submission, runs the allocation calculation and upserts
// the result by order number. Nothing is written when validation or
// calculation fails. Returns the main row id.
func Submit(db *gorm.DB, req SubmitRequest) (uint, error) {
	if err := req.validate(); err != nil {
		return 0, err
	}

	result, err := Calculate(ShipmentInput{
		FreightUnitPrice:    *req.FreightUnitPrice,
		TotalSettleWeight:   req.TotalSettleWeight,
		ActualWeightWithBox: req.ActualWeightWithBox,
		Merchants:           req.Merchants,
	})
	if err != nil {
		return 0, err
	}

	main := allocationEntity.AllocationMain{
		Date:                req.Date,
		OrderNumber:         req.OrderNumber,
		TrackingNumber:      req.TrackingNumber,
		ShipmentID:          req.ShipmentID,
		FreightUnitPrice:    *req.FreightUnitPrice,
		BoxCount:            req.BoxCount,
		TotalSettleWeight:   req.TotalSettleWeight,
		ActualWeightWithBox: req.ActualWeightWithBox,
		TotalActualWeight:   result.TotalActualWeight,
		TotalBoxWeight:      result.TotalBoxWeight,
		TotalThrowWeight:    result.TotalThrowWeight,
		TotalAmount:         result.TotalAmount,
		MerchantCount:       result.MerchantCount,
	}

	details := make([]allocationEntity.AllocationDetail, 0, len(result.Shares))
	for _, s := range result.Shares {
		details = append(details, allocationEntity.AllocationDetail{
			MerchantName:    s.MerchantName,
			Pieces:          s.Pieces,
			ActualWeight:    s.ActualWeight,
			WeightRatio:     s.WeightRatio,
			BoxWeight:       s.BoxWeight,
			ThrowWeight:     s.ThrowWeight,
			SettleWeight:    s.SettleWeight,
			Amount:          s.Amount,
			LogisticsStatus: allocationEntity.LogisticsInTransit,
		})
	}

	snapshot, err := requestSnapshot(req)
	if err != nil {
		return 0, err
	}

	repo := allocationRepo.NewAllocationRepository(db)
	mainID, err := repo.Save(&main, details, snapshot, req.Operator)
	if err != nil {
		return 0, err
	}

	cache.GetInstance().DeleteByTag(StatsCacheTag)
	return mainID, nil
}

func requestSnapshot(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
