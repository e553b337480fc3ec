package allocation

import (
	allocationEntity "shipshare.GO/model/entity/allocation"
)

// ListFilters narrows List results. Zero values mean "no filter".
type ListFilters struct {
	StartDate         string
	EndDate           string
	OrderNumbers      []string
	OrderNumberPrefix string
	TrackingNumbers   []string
}

// List returns active allocations newest date first (then newest created),
// each with its active detail rows attached. Details for all matched mains
// are fetched in one batched query, not per row.
func (r *AllocationRepository) List(f ListFilters) ([]allocationEntity.AllocationMain, error) {
	q := r.db.Where("status = ?", allocationEntity.StatusActive)
	if f.StartDate != "" {
		q = q.Where("date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("date <= ?", f.EndDate)
	}
	if len(f.OrderNumbers) > 0 {
		q = q.Where("order_number IN ?", f.OrderNumbers)
	}
	if f.OrderNumberPrefix != "" {
		q = q.Where("order_number LIKE ?", f.OrderNumberPrefix+"%")
	}
	if len(f.TrackingNumbers) > 0 {
		q = q.Where("tracking_number IN ?", f.TrackingNumbers)
	}

	var mains []allocationEntity.AllocationMain
	if err := q.Order("date DESC, created_at DESC").Find(&mains).Error; err != nil {
		return nil, err
	}
	if len(mains) == 0 {
		return mains, nil
	}

	ids := make([]uint, 0, len(mains))
	for _, m := range mains {
		ids = append(ids, m.ID)
	}

	var details []allocationEntity.AllocationDetail
	if err := r.db.
		Where("main_id IN ? AND status = ?", ids, allocationEntity.StatusActive).
		Order("main_id, sequence_number").
		Find(&details).Error; err != nil {
		return nil, err
	}

	byMain := make(map[uint][]allocationEntity.AllocationDetail, len(mains))
	for _, d := range details {
		byMain[d.MainID] = append(byMain[d.MainID], d)
	}
	for i := range mains {
		mains[i].Merchants = byMain[mains[i].ID]
	}
	return mains, nil
}

// GetByOrderNumber returns the allocation for an order number with details
// ordered by sequence_number. Soft-deleted rows stay retrievable here (marked
// inactive via Status); an active row wins when both exist. Returns
// (nil, nil) when nothing matches.
func (r *AllocationRepository) GetByOrderNumber(orderNumber string) (*allocationEntity.AllocationMain, error) {
	var main allocationEntity.AllocationMain
	res := r.db.Where("order_number = ?", orderNumber).
		// Resubmitting after a soft delete creates a fresh row, so the
		// active row (status 1) must outrank any deleted one regardless of age.
		Order("status DESC, created_at DESC").
		Limit(1).Find(&main)
	if res.Error != nil {
		return nil, res.Error
	}
	if main.ID == 0 {
		return nil, nil
	}

	if err := r.db.Where("main_id = ?", main.ID).
		Order("sequence_number").
		Find(&main.Merchants).Error; err != nil {
		return nil, err
	}
	return &main, nil
}

// History returns the append-only history rows for a main id, oldest first.
func (r *AllocationRepository) History(mainID uint) ([]allocationEntity.AllocationHistory, error) {
	var rows []allocationEntity.AllocationHistory
	err := r.db.Where("main_id = ?", mainID).Order("id").Find(&rows).Error
	return rows, err
}

// MerchantSummaryRow is one merchant's rollup across shipments.
type MerchantSummaryRow struct {
	MerchantName      string  `gorm:"column:merchant_name" json:"merchant_name"`
	AllocationCount   int64   `gorm:"column:allocation_count" json:"allocation_count"`
	TotalPieces       int64   `gorm:"column:total_pieces" json:"total_pieces"`
	TotalActualWeight float64 `gorm:"column:total_actual_weight" json:"total_actual_weight"`
	TotalSettleWeight float64 `gorm:"column:total_settle_weight" json:"total_settle_weight"`
	TotalAmount       float64 `gorm:"column:total_amount" json:"total_amount"`
	AvgAmount         float64 `gorm:"column:avg_amount" json:"avg_amount"`
	FirstDate         string  `gorm:"column:first_date" json:"first_date"`
	LastDate          string  `gorm:"column:last_date" json:"last_date"`
}

// MerchantSummary rolls up active detail rows per merchant in a single
// grouped query. Empty arguments mean "no filter".
func (r *AllocationRepository) MerchantSummary(merchantName, startDate, endDate string) ([]MerchantSummaryRow, error) {
	sql := `
		SELECT
			sad.merchant_name AS merchant_name,
			COUNT(DISTINCT sam.id) AS allocation_count,
			COALESCE(SUM(sad.pieces), 0) AS total_pieces,
			COALESCE(SUM(sad.actual_weight), 0) AS total_actual_weight,
			COALESCE(SUM(sad.settle_weight), 0) AS total_settle_weight,
			COALESCE(SUM(sad.amount), 0) AS total_amount,
			COALESCE(AVG(sad.amount), 0) AS avg_amount,
			MIN(sam.date) AS first_date,
			MAX(sam.date) AS last_date
		FROM shipping_allocation_details sad
		JOIN shipping_allocation_main sam ON sad.main_id = sam.id
		WHERE sam.status = 1 AND sad.status = 1`
	args := []interface{}{}
	if merchantName != "" {
		sql += " AND sad.merchant_name = ?"
		args = append(args, merchantName)
	}
	if startDate != "" {
		sql += " AND sam.date >= ?"
		args = append(args, startDate)
	}
	if endDate != "" {
		sql += " AND sam.date <= ?"
		args = append(args, endDate)
	}
	sql += " GROUP BY sad.merchant_name ORDER BY total_amount DESC"

	var rows []MerchantSummaryRow
	err := r.db.Raw(sql, args...).Scan(&rows).Error
	return rows, err
}

// StatisticsRow is the overall rollup across active allocations.
type StatisticsRow struct {
	TotalRecords   int64   `gorm:"column:total_records" json:"total_records"`
	TotalWeight    float64 `gorm:"column:total_weight" json:"total_weight"`
	TotalAmount    float64 `gorm:"column:total_amount" json:"total_amount"`
	AvgAmount      float64 `gorm:"column:avg_amount" json:"avg_amount"`
	TotalMerchants int64   `gorm:"column:total_merchants" json:"total_merchants"`
	AvgMerchants   float64 `gorm:"column:avg_merchants" json:"avg_merchants"`
}

// Statistics computes the overall rollup in a single aggregate query.
func (r *AllocationRepository) Statistics(startDate, endDate string) (*StatisticsRow, error) {
	sql := `
		SELECT
			COUNT(*) AS total_records,
			COALESCE(SUM(total_actual_weight), 0) AS total_weight,
			COALESCE(SUM(total_amount), 0) AS total_amount,
			COALESCE(AVG(total_amount), 0) AS avg_amount,
			COALESCE(SUM(merchant_count), 0) AS total_merchants,
			COALESCE(AVG(merchant_count), 0) AS avg_merchants
		FROM shipping_allocation_main
		WHERE status = 1`
	args := []interface{}{}
	if startDate != "" {
		sql += " AND date >= ?"
		args = append(args, startDate)
	}
	if endDate != "" {
		sql += " AND date <= ?"
		args = append(args, endDate)
	}

	var row StatisticsRow
	err := r.db.Raw(sql, args...).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
