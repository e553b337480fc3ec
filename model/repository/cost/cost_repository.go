package cost

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	costEntity "shipshare.GO/model/entity/cost"
)

// CostRepository persists the legacy flat shipping_costs table.
type CostRepository struct {
	db *gorm.DB
}

func NewCostRepository(db *gorm.DB) *CostRepository {
	return &CostRepository{db: db}
}

// ListFilters narrows List results. Zero values mean "no filter".
type ListFilters struct {
	StartDate       string
	EndDate         string
	TrackingNumbers []string
	MerchantName    string
}

// List returns cost records newest date first. MerchantName matches inside
// the JSON merchants column.
func (r *CostRepository) List(f ListFilters) ([]costEntity.ShippingCost, error) {
	q := r.db.Model(&costEntity.ShippingCost{})
	if f.StartDate != "" {
		q = q.Where("date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("date <= ?", f.EndDate)
	}
	if len(f.TrackingNumbers) > 0 {
		q = q.Where("tracking_number IN ?", f.TrackingNumbers)
	}
	if f.MerchantName != "" {
		q = q.Where("merchants LIKE ?", "%"+f.MerchantName+"%")
	}

	var rows []costEntity.ShippingCost
	err := q.Order("date DESC").Find(&rows).Error
	return rows, err
}

// Save upserts a cost record by order_number. New records get a UUID id.
// Returns the record id.
func (r *CostRepository) Save(rec *costEntity.ShippingCost) (string, error) {
	var existing costEntity.ShippingCost
	res := r.db.Select("id").Where("order_number = ?", rec.OrderNumber).Limit(1).Find(&existing)
	if res.Error != nil {
		return "", res.Error
	}

	if existing.ID != "" {
		rec.ID = existing.ID
		err := r.db.Model(&costEntity.ShippingCost{}).Where("id = ?", rec.ID).Updates(map[string]interface{}{
			"date":                   rec.Date,
			"freight_unit_price":     rec.FreightUnitPrice,
			"total_settle_weight":    rec.TotalSettleWeight,
			"actual_weight_with_box": rec.ActualWeightWithBox,
			"tracking_number":        rec.TrackingNumber,
			"shipment_id":            rec.ShipmentID,
			"merchants":              rec.Merchants,
		}).Error
		return rec.ID, err
	}

	rec.ID = uuid.NewString()
	if rec.SettlementStatus == "" {
		rec.SettlementStatus = costEntity.SettlementPending
	}
	return rec.ID, r.db.Create(rec).Error
}

// UpdateSettlementStatus flips the settlement status of one record. Returns
// false when no record matched.
func (r *CostRepository) UpdateSettlementStatus(id, status string) (bool, error) {
	res := r.db.Model(&costEntity.ShippingCost{}).Where("id = ?", id).Update("settlement_status", status)
	return res.RowsAffected > 0, res.Error
}
