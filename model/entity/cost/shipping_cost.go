package cost

import (
	"time"

	"gorm.io/datatypes"
)

// Settlement status values.
const (
	SettlementPending = "pending"
	SettlementSettled = "settled"
)

// ShippingCost represents the legacy shipping_costs table: the flat
// predecessor of the allocation tables. Merchant shares live in a JSON column
// instead of detail rows; kept for - and still written by - older tooling.
type ShippingCost struct {
	ID                  string         `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Date                string         `gorm:"column:date;type:varchar(10);not null;index" json:"date"`
	OrderNumber         string         `gorm:"column:order_number;type:varchar(64);not null;index" json:"order_number"`
	TrackingNumber      string         `gorm:"column:tracking_number;type:varchar(64);index" json:"tracking_number"`
	ShipmentID          string         `gorm:"column:shipment_id;type:varchar(64)" json:"shipment_id"`
	FreightUnitPrice    float64        `gorm:"column:freight_unit_price;type:decimal(12,4);not null;default:0" json:"freight_unit_price"`
	TotalSettleWeight   float64        `gorm:"column:total_settle_weight;type:decimal(12,3);not null;default:0" json:"total_settle_weight"`
	ActualWeightWithBox float64        `gorm:"column:actual_weight_with_box;type:decimal(12,3);not null;default:0" json:"actual_weight_with_box"`
	SettlementStatus    string         `gorm:"column:settlement_status;type:varchar(16);not null;default:pending" json:"settlement_status"`
	Merchants           datatypes.JSON `gorm:"column:merchants" json:"merchants"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ShippingCost) TableName() string {
	return "shipping_costs"
}
