package allocation

import "time"

// Logistics status values for a detail row. Transitions happen only through
// the batch logistics update: in_transit -> received or in_transit -> exception.
const (
	LogisticsInTransit = "in_transit"
	LogisticsReceived  = "received"
	LogisticsException = "exception"
)

// ValidLogisticsStatus reports whether s is a known logistics status.
func ValidLogisticsStatus(s string) bool {
	switch s {
	case LogisticsInTransit, LogisticsReceived, LogisticsException:
		return true
	}
	return false
}

// AllocationDetail represents shipping_allocation_details table. Each row is
// one merchant's share of a shipment; sequence_number is dense 1..N in
// submission order and is rebuilt on every full detail replacement.
type AllocationDetail struct {
	ID                  uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	MainID              uint      `gorm:"column:main_id;not null;index" json:"main_id"`
	SequenceNumber      int       `gorm:"column:sequence_number;not null" json:"sequence_number"`
	MerchantName        string    `gorm:"column:merchant_name;type:varchar(128);not null;index" json:"merchant_name"`
	Pieces              int       `gorm:"column:pieces;not null;default:0" json:"pieces"`
	ActualWeight        float64   `gorm:"column:actual_weight;type:decimal(12,3);not null;default:0" json:"actual_weight"`
	WeightRatio         float64   `gorm:"column:weight_ratio;type:decimal(10,6);not null;default:0" json:"weight_ratio"`
	BoxWeight           float64   `gorm:"column:box_weight;type:decimal(12,3);not null;default:0" json:"box_weight"`
	ThrowWeight         float64   `gorm:"column:throw_weight;type:decimal(12,3);not null;default:0" json:"throw_weight"`
	SettleWeight        float64   `gorm:"column:settle_weight;type:decimal(12,3);not null;default:0" json:"settle_weight"`
	Amount              float64   `gorm:"column:amount;type:decimal(14,2);not null;default:0" json:"amount"`
	LogisticsStatus     string    `gorm:"column:logistics_status;type:varchar(16);not null;default:in_transit" json:"logistics_status"`
	ActualReceivedCount int       `gorm:"column:actual_received_count;not null;default:0" json:"actual_received_count"`
	Status              int16     `gorm:"column:status;type:smallint;not null;default:1" json:"status"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at,omitempty"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (AllocationDetail) TableName() string {
	return "shipping_allocation_details"
}
