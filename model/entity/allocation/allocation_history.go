package allocation

import (
	"time"

	"gorm.io/datatypes"
)

// History operation types.
const (
	OpCreate = "CREATE"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// AllocationHistory represents shipping_allocation_history table. Rows are
// append-only: every main/detail mutation writes exactly one row inside the
// same transaction, and no code path updates or deletes existing rows.
type AllocationHistory struct {
	ID            uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MainID        uint           `gorm:"column:main_id;not null;index" json:"main_id"`
	OperationType string         `gorm:"column:operation_type;type:varchar(16);not null" json:"operation_type"`
	NewData       datatypes.JSON `gorm:"column:new_data" json:"new_data"`
	Operator      string         `gorm:"column:operator;type:varchar(64);not null;default:system" json:"operator"`
	IPAddress     string         `gorm:"column:ip_address;type:varchar(45)" json:"ip_address,omitempty"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AllocationHistory) TableName() string {
	return "shipping_allocation_history"
}
