package allocation

import "time"

// Row status values shared by main and detail tables.
const (
	StatusActive  int16 = 1
	StatusDeleted int16 = 0
)

// AllocationMain represents shipping_allocation_main table.
// order_number is the business key: unique among active rows, used for
// idempotent upsert.
type AllocationMain struct {
	ID                  uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	// Stored as varchar so the driver returns the YYYY-MM-DD string as
	// written; a DATE column comes back re-formatted as RFC3339.
	Date                string    `gorm:"column:date;type:varchar(10);not null;index" json:"date"`
	OrderNumber         string    `gorm:"column:order_number;type:varchar(64);not null;index" json:"order_number"`
	TrackingNumber      string    `gorm:"column:tracking_number;type:varchar(64);index" json:"tracking_number"`
	ShipmentID          string    `gorm:"column:shipment_id;type:varchar(64)" json:"shipment_id"`
	FreightUnitPrice    float64   `gorm:"column:freight_unit_price;type:decimal(12,4);not null;default:0" json:"freight_unit_price"`
	BoxCount            int       `gorm:"column:box_count;not null;default:0" json:"box_count"`
	TotalSettleWeight   float64   `gorm:"column:total_settle_weight;type:decimal(12,3);not null;default:0" json:"total_settle_weight"`
	ActualWeightWithBox float64   `gorm:"column:actual_weight_with_box;type:decimal(12,3);not null;default:0" json:"actual_weight_with_box"`
	TotalActualWeight   float64   `gorm:"column:total_actual_weight;type:decimal(12,3);not null;default:0" json:"total_actual_weight"`
	TotalBoxWeight      float64   `gorm:"column:total_box_weight;type:decimal(12,3);not null;default:0" json:"total_box_weight"`
	TotalThrowWeight    float64   `gorm:"column:total_throw_weight;type:decimal(12,3);not null;default:0" json:"total_throw_weight"`
	TotalAmount         float64   `gorm:"column:total_amount;type:decimal(14,2);not null;default:0" json:"total_amount"`
	MerchantCount       int       `gorm:"column:merchant_count;not null;default:0" json:"merchant_count"`
	Status              int16     `gorm:"column:status;type:smallint;not null;default:1" json:"status"`
	CreatedBy           string    `gorm:"column:created_by;type:varchar(64)" json:"created_by,omitempty"`
	UpdatedBy           string    `gorm:"column:updated_by;type:varchar(64)" json:"updated_by,omitempty"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Populated by list/lookup queries, not a GORM association.
	Merchants []AllocationDetail `gorm:"-" json:"merchants,omitempty"`
}

func (AllocationMain) TableName() string {
	return "shipping_allocation_main"
}
